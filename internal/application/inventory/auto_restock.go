package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

// AutoRestockUseCase crea órdenes de compra para los productos en o bajo su umbral de reorden
// y devuelve el aviso de reposición con los datos de contacto del proveedor.
// No es idempotente: cada corrida vuelve a pedir todo lo que califique.
type AutoRestockUseCase struct {
	txRunner  TxRunner
	locker    RestockLocker
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewAutoRestockUseCase construye el caso de uso de reposición automática.
func NewAutoRestockUseCase(txRunner TxRunner, locker RestockLocker, publisher EventPublisher, log *logger.Logger) *AutoRestockUseCase {
	return &AutoRestockUseCase{
		txRunner:  txRunner,
		locker:    locker,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// RestockResult resultado de una corrida.
type RestockResult struct {
	RunID     string
	OrderDate time.Time
	Advice    []entity.ReorderAdvice
}

// Run ejecuta una corrida completa de reposición en una sola transacción.
func (uc *AutoRestockUseCase) Run(ctx context.Context) (*RestockResult, error) {
	release, err := uc.locker.Acquire(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRestockInProgress) {
			return nil, err
		}
		return nil, fmt.Errorf("restock lock: %w", err)
	}
	defer release()

	now := uc.now()
	result := &RestockResult{RunID: uuid.New().String(), OrderDate: entity.Day(now)}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.BatchRepository,
	) error {
		result.Advice = nil

		// 1. Conjunto de trabajo en memoria, solo para esta corrida
		products, err := productRepo.ListRestockCandidatesForUpdate(ctx)
		if err != nil {
			return err
		}
		candidates := inventory.BuildRestockCandidates(products, now)
		if len(candidates) == 0 {
			return nil
		}

		// 2. Una orden sin recibir por candidato
		orders := inventory.PurchaseOrders(candidates)
		if err := orderRepo.CreateBatch(ctx, orders); err != nil {
			return err
		}

		// 3. Cantidad pedida
		ids := make([]int64, 0, len(candidates))
		for _, c := range candidates {
			if err := productRepo.AdjustStock(ctx, c.ProductID, 0, c.Quantity); err != nil {
				return err
			}
			ids = append(ids, c.ProductID)
		}

		// 4. Aviso: LEFT JOIN con proveedor
		contacts, err := productRepo.ListSupplierContacts(ctx, ids)
		if err != nil {
			return err
		}
		result.Advice = buildAdvice(candidates, orders, products, contacts)
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("run_id", result.RunID).Msg("reposición automática revertida")
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	uc.log.Info().
		Str("run_id", result.RunID).
		Int("orders", len(result.Advice)).
		Msg("reposición automática completada")

	if len(result.Advice) > 0 {
		events := make([]ReorderPlaced, 0, len(result.Advice))
		for _, a := range result.Advice {
			events = append(events, ReorderPlaced{
				EventID:         uuid.New().String(),
				Type:            EventReorderPlaced,
				RunID:           result.RunID,
				PurchaseOrderID: a.PurchaseOrderID,
				ProductID:       a.ProductID,
				ProductName:     a.ProductName,
				Quantity:        a.Quantity,
				SupplierCompany: a.SupplierCompany,
				OccurredAt:      now,
			})
		}
		if err := uc.publisher.PublishReorders(ctx, events); err != nil {
			uc.log.Warn().Err(err).Str("run_id", result.RunID).Msg("no se pudieron publicar las órdenes")
		}
	}
	return result, nil
}

// buildAdvice une candidatos, órdenes creadas y contactos. Un producto sin fila de contacto
// conserva el nombre y deja el proveedor en nil.
func buildAdvice(
	candidates []inventory.RestockCandidate,
	orders []*entity.PurchaseOrder,
	products []*entity.Product,
	contacts []entity.ProductSupplier,
) []entity.ReorderAdvice {
	contactByID := make(map[int64]entity.ProductSupplier, len(contacts))
	for _, c := range contacts {
		contactByID[c.ProductID] = c
	}
	nameByID := make(map[int64]string, len(products))
	for _, p := range products {
		nameByID[p.ID] = p.Name
	}

	advice := make([]entity.ReorderAdvice, 0, len(candidates))
	for i, c := range candidates {
		ps, ok := contactByID[c.ProductID]
		if !ok {
			ps = entity.ProductSupplier{ProductID: c.ProductID, ProductName: nameByID[c.ProductID]}
		}
		advice = append(advice, entity.ReorderAdvice{
			ProductSupplier: ps,
			PurchaseOrderID: orders[i].ID,
			Quantity:        c.Quantity,
		})
	}
	return advice
}
