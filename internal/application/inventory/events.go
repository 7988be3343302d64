package inventory

import "time"

// Nombres de evento publicados en el bus.
const (
	EventReceiptRecorded = "inventory.receipt_recorded"
	EventReorderPlaced   = "inventory.reorder_placed"
)

// ReceiptRecorded se emite cuando una recepción de compra hace commit.
type ReceiptRecorded struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	PurchaseOrderID int64     `json:"purchase_order_id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name"`
	BatchNumber     int64     `json:"batch_number"`
	Quantity        int       `json:"quantity"`
	ExpiryDate      time.Time `json:"expiry_date"`
	ReceivedDate    time.Time `json:"received_date"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReorderPlaced se emite por cada orden creada en una corrida de reposición.
type ReorderPlaced struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	RunID           string    `json:"run_id"`
	PurchaseOrderID int64     `json:"purchase_order_id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Quantity        int       `json:"quantity"`
	SupplierCompany *string   `json:"supplier_company,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
