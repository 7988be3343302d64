package inventory

import (
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain/entity"
)

// ReorderMultiplier política fija: se pide el doble del umbral de reorden.
const ReorderMultiplier = 2

// RestockCandidate fila del conjunto de trabajo de una corrida de reposición.
// Vive solo durante la invocación.
type RestockCandidate struct {
	ProductID int64
	Quantity  int
	OrderDate time.Time
}

// NeedsRestock indica si el producto debe reponerse:
// activo, con umbral positivo y stock disponible + pedido <= umbral.
func NeedsRestock(p *entity.Product) bool {
	if p == nil || p.Discontinued || p.ReorderLevel <= 0 {
		return false
	}
	return p.Available() <= p.ReorderLevel
}

// ReorderQuantity cantidad a pedir para un producto: 2 × umbral.
func ReorderQuantity(p *entity.Product) int {
	return ReorderMultiplier * p.ReorderLevel
}

// BuildRestockCandidates arma el conjunto de trabajo para los productos dados.
// Los que no cumplen NeedsRestock se descartan.
func BuildRestockCandidates(products []*entity.Product, today time.Time) []RestockCandidate {
	out := make([]RestockCandidate, 0, len(products))
	day := entity.Day(today)
	for _, p := range products {
		if !NeedsRestock(p) {
			continue
		}
		out = append(out, RestockCandidate{
			ProductID: p.ID,
			Quantity:  ReorderQuantity(p),
			OrderDate: day,
		})
	}
	return out
}

// PurchaseOrders convierte los candidatos en órdenes de compra sin recibir.
func PurchaseOrders(candidates []RestockCandidate) []*entity.PurchaseOrder {
	orders := make([]*entity.PurchaseOrder, 0, len(candidates))
	for _, c := range candidates {
		orders = append(orders, &entity.PurchaseOrder{
			OrderDate: c.OrderDate,
			ProductID: c.ProductID,
			Quantity:  c.Quantity,
		})
	}
	return orders
}
