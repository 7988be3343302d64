package entity

// Supplier proveedor. Los datos de contacto son opcionales.
type Supplier struct {
	ID           int64
	CompanyName  string
	ContactName  *string
	ContactTitle *string
	Phone        *string
	Fax          *string
	HomePage     *string
}

// ProductSupplier resultado del LEFT JOIN producto → proveedor.
// Sin proveedor, todos los campos del proveedor quedan en nil.
type ProductSupplier struct {
	ProductID            int64
	ProductName          string
	SupplierCompany      *string
	SupplierContactTitle *string
	SupplierContactName  *string
	SupplierPhone        *string
	SupplierFax          *string
	SupplierHomePage     *string
}
