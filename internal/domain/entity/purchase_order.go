package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reposicion-api/internal/domain"
)

// PurchaseOrder orden de compra a proveedor. Nunca se elimina: es la traza de auditoría de compras.
// Invariante: Received == true si y solo si ReceivedDate != nil.
type PurchaseOrder struct {
	ID           int64
	OrderDate    time.Time
	ProductID    int64
	Quantity     int
	UnitCost     *decimal.Decimal
	Received     bool
	ReceivedDate *time.Time
}

// Outstanding indica si la orden sigue pendiente de recibir.
func (po *PurchaseOrder) Outstanding() bool {
	return !po.Received && po.ReceivedDate == nil
}

// MarkReceived marca la orden como recibida en la fecha dada (solo la parte de día).
func (po *PurchaseOrder) MarkReceived(on time.Time) error {
	if !po.Outstanding() {
		return domain.ErrAlreadyReceived
	}
	day := Day(on)
	po.Received = true
	po.ReceivedDate = &day
	return nil
}

// Day trunca t a medianoche en su propia zona horaria.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
