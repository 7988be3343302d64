package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/internal/domain/entity"
	"github.com/jhoicas/reposicion-api/internal/domain/repository"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

// ReceivePurchaseUseCase registra la llegada de una orden de compra:
// marca la orden recibida, mueve los contadores del producto y crea el lote, todo en una transacción.
type ReceivePurchaseUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewReceivePurchaseUseCase construye el caso de uso.
func NewReceivePurchaseUseCase(txRunner TxRunner, publisher EventPublisher, log *logger.Logger) *ReceivePurchaseUseCase {
	return &ReceivePurchaseUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// ReceiptInput entrada de la recepción. ProductName es un fragmento del nombre.
// ExpiryDate no se revalida aquí: el almacén tiene la restricción de fecha futura.
type ReceiptInput struct {
	ProductName string
	Quantity    int
	ExpiryDate  time.Time
}

// ReceiptResult resultado de la recepción. Matched=false significa que ninguna orden
// pendiente coincidió y no se escribió nada.
type ReceiptResult struct {
	Matched         bool
	RowsAffected    int
	PurchaseOrderID int64
	ProductID       int64
	ProductName     string
	BatchNumber     int64
	Quantity        int
	ExpiryDate      time.Time
	ReceivedDate    time.Time
	UnitsInStock    int
	UnitsOnOrder    int
}

// Receive ejecuta la recepción. Los fallos dentro de la transacción se devuelven envueltos en
// domain.ErrTransactionFailed (y conservan la causa, p. ej. domain.ErrConstraintViolation).
func (uc *ReceivePurchaseUseCase) Receive(ctx context.Context, in ReceiptInput) (*ReceiptResult, error) {
	fragment := strings.TrimSpace(in.ProductName)
	if fragment == "" || in.Quantity <= 0 || in.ExpiryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	today := entity.Day(uc.now())

	var result ReceiptResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
		batchRepo repository.BatchRepository,
	) error {
		result = ReceiptResult{Quantity: in.Quantity, ExpiryDate: entity.Day(in.ExpiryDate)}

		// 1. Orden pendiente más antigua, bloqueada dentro de la misma tx
		order, err := orderRepo.FindOldestOutstandingForUpdate(ctx, fragment, in.Quantity)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		if err := order.MarkReceived(today); err != nil {
			return err
		}
		if err := orderRepo.MarkReceived(ctx, order.ID, today); err != nil {
			return err
		}

		// 2. Contadores del producto: se usa el ID ya resuelto, no se vuelve a buscar por nombre
		if err := productRepo.AdjustStock(ctx, order.ProductID, in.Quantity, -in.Quantity); err != nil {
			return err
		}

		// 3. Lote
		batch := &entity.Batch{
			PurchaseOrderID: order.ID,
			ProductID:       order.ProductID,
			ExpiryDate:      result.ExpiryDate,
			Quantity:        in.Quantity,
		}
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}

		product, err := productRepo.GetByID(ctx, order.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		result.Matched = true
		result.RowsAffected = 1
		result.PurchaseOrderID = order.ID
		result.ProductID = product.ID
		result.ProductName = product.Name
		result.BatchNumber = batch.BatchNumber
		result.ReceivedDate = today
		result.UnitsInStock = product.UnitsInStock
		result.UnitsOnOrder = product.UnitsOnOrder
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("product_name", fragment).
			Int("quantity", in.Quantity).
			Msg("recepción de compra revertida")
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	if !result.Matched {
		uc.log.Info().
			Str("product_name", fragment).
			Int("quantity", in.Quantity).
			Msg("recepción sin orden pendiente coincidente")
		return &result, nil
	}

	uc.log.Info().
		Int64("purchase_order_id", result.PurchaseOrderID).
		Int64("product_id", result.ProductID).
		Int64("batch_number", result.BatchNumber).
		Int("quantity", result.Quantity).
		Msg("orden de compra recibida")

	event := ReceiptRecorded{
		EventID:         uuid.New().String(),
		Type:            EventReceiptRecorded,
		PurchaseOrderID: result.PurchaseOrderID,
		ProductID:       result.ProductID,
		ProductName:     result.ProductName,
		BatchNumber:     result.BatchNumber,
		Quantity:        result.Quantity,
		ExpiryDate:      result.ExpiryDate,
		ReceivedDate:    result.ReceivedDate,
		OccurredAt:      uc.now(),
	}
	// El commit ya ocurrió: un fallo del bus no revierte la recepción.
	if err := uc.publisher.PublishReceipt(ctx, event); err != nil {
		uc.log.Warn().Err(err).Str("event_id", event.EventID).Msg("no se pudo publicar la recepción")
	}
	return &result, nil
}
