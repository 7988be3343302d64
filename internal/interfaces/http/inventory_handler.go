package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/domain"
)

// InventoryHandler recepción de compras y reposición automática (protegido).
type InventoryHandler struct {
	receive *inventory.ReceivePurchaseUseCase
	restock *inventory.AutoRestockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(receive *inventory.ReceivePurchaseUseCase, restock *inventory.AutoRestockUseCase) *InventoryHandler {
	return &InventoryHandler{receive: receive, restock: restock}
}

// Receive godoc
// @Summary      Registrar recepción de una orden de compra
// @Description  Marca recibida la orden pendiente más antigua cuyo producto contiene product_name
//
//	y con la cantidad exacta, mueve el stock y crea el lote. matched=false si ninguna coincide.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceivePurchaseRequest  true  "product_name, quantity, expiry_date (YYYY-MM-DD)"
// @Success      200   {object}  dto.ReceivePurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expiry, err := time.Parse(dto.DateLayout, in.ExpiryDate)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: expiry_date debe ser YYYY-MM-DD", domain.ErrInvalidInput))
	}

	res, err := h.receive.Receive(c.UserContext(), inventory.ReceiptInput{
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		ExpiryDate:  expiry,
	})
	if err != nil {
		return writeError(c, err)
	}

	out := dto.ReceivePurchaseResponse{
		Matched:      res.Matched,
		RowsAffected: res.RowsAffected,
		Quantity:     res.Quantity,
		ExpiryDate:   res.ExpiryDate.Format(dto.DateLayout),
	}
	if res.Matched {
		out.PurchaseOrderID = res.PurchaseOrderID
		out.ProductID = res.ProductID
		out.ProductName = res.ProductName
		out.BatchNumber = res.BatchNumber
		out.ReceivedDate = res.ReceivedDate.Format(dto.DateLayout)
		out.UnitsInStock = res.UnitsInStock
		out.UnitsOnOrder = res.UnitsOnOrder
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Ejecutar la reposición automática
// @Description  Crea una orden de compra por cada producto activo en o bajo su nivel de reorden
//
//	(cantidad = 2 × nivel) y devuelve el aviso con los contactos del proveedor.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestockResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	res, err := h.restock.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.NewRestockResponse(res))
}
