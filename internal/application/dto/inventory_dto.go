package dto

import "github.com/jhoicas/reposicion-api/internal/application/inventory"

// ReceivePurchaseRequest body para POST /api/inventory/receipts.
type ReceivePurchaseRequest struct {
	ProductName string `json:"product_name"` // fragmento del nombre, sin distinguir mayúsculas
	Quantity    int    `json:"quantity"`
	ExpiryDate  string `json:"expiry_date"` // YYYY-MM-DD
}

// ReceivePurchaseResponse resultado de la recepción. Matched=false: ninguna orden coincidió.
type ReceivePurchaseResponse struct {
	Matched         bool   `json:"matched"`
	RowsAffected    int    `json:"rows_affected"`
	PurchaseOrderID int64  `json:"purchase_order_id,omitempty"`
	ProductID       int64  `json:"product_id,omitempty"`
	ProductName     string `json:"product_name,omitempty"`
	BatchNumber     int64  `json:"batch_number,omitempty"`
	Quantity        int    `json:"quantity"`
	ExpiryDate      string `json:"expiry_date"`
	ReceivedDate    string `json:"received_date,omitempty"`
	UnitsInStock    int    `json:"units_in_stock,omitempty"`
	UnitsOnOrder    int    `json:"units_on_order,omitempty"`
}

// ReorderAdviceDTO línea del aviso de reposición. Los campos del proveedor pueden ser null.
type ReorderAdviceDTO struct {
	PurchaseOrderID      int64   `json:"purchase_order_id"`
	ProductID            int64   `json:"product_id"`
	ProductName          string  `json:"product_name"`
	Quantity             int     `json:"quantity"`
	SupplierCompany      *string `json:"supplier_company"`
	SupplierContactTitle *string `json:"supplier_contact_title"`
	SupplierContactName  *string `json:"supplier_contact_name"`
	SupplierPhone        *string `json:"supplier_phone"`
	SupplierFax          *string `json:"supplier_fax"`
	SupplierHomePage     *string `json:"supplier_homepage"`
}

// RestockResponse respuesta de POST /api/inventory/restock.
type RestockResponse struct {
	RunID     string             `json:"run_id"`
	OrderDate string             `json:"order_date"`
	Total     int                `json:"total"`
	Advice    []ReorderAdviceDTO `json:"advice"`
}

// NewRestockResponse arma la respuesta desde el resultado de la corrida.
func NewRestockResponse(res *inventory.RestockResult) RestockResponse {
	advice := make([]ReorderAdviceDTO, 0, len(res.Advice))
	for _, a := range res.Advice {
		advice = append(advice, ReorderAdviceDTO{
			PurchaseOrderID:      a.PurchaseOrderID,
			ProductID:            a.ProductID,
			ProductName:          a.ProductName,
			Quantity:             a.Quantity,
			SupplierCompany:      a.SupplierCompany,
			SupplierContactTitle: a.SupplierContactTitle,
			SupplierContactName:  a.SupplierContactName,
			SupplierPhone:        a.SupplierPhone,
			SupplierFax:          a.SupplierFax,
			SupplierHomePage:     a.SupplierHomePage,
		})
	}
	return RestockResponse{
		RunID:     res.RunID,
		OrderDate: res.OrderDate.Format(DateLayout),
		Total:     len(advice),
		Advice:    advice,
	}
}
