package entity

// ReorderAdvice línea del aviso de reposición: qué se pidió y a quién llamar.
type ReorderAdvice struct {
	ProductSupplier
	PurchaseOrderID int64
	Quantity        int
}
