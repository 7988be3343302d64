package entity

import "time"

// Batch lote fechado de stock recibido, ligado a una orden de compra recibida y a un producto.
// Se crea una sola vez en la recepción y no se modifica después.
type Batch struct {
	PurchaseOrderID int64
	ProductID       int64
	BatchNumber     int64 // secuencia única asignada por el almacén
	ExpiryDate      time.Time
	Quantity        int
}
