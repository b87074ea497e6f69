package request

import (
	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/enum"
)

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	SKU      string  `json:"sku"`
	Category string  `json:"category"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest is the payload for updating a product.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock    *int     `json:"stock" binding:"omitempty,gte=0"`
}

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// SaleItemRequest is a cart line at checkout
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest is the checkout payload
type CreateSaleRequest struct {
	Cart            []SaleItemRequest   `json:"cart" binding:"required,min=1,dive"`
	TotalAmount     float64             `json:"totalAmount" binding:"required,gt=0"`
	AmountPaid      float64             `json:"amountPaid" binding:"gte=0"`
	PaymentMethod   enum.PaymentMethod  `json:"paymentMethod"`
	PaymentStatus   *enum.PaymentStatus `json:"paymentStatus"`
	CustomerName    string              `json:"customerName" binding:"required"`
	CustomerPhone   string              `json:"customerPhone" binding:"required"`
	CustomerAddress string              `json:"customerAddress"`
}

// ReturnItemRequest is a returned line against a sale
type ReturnItemRequest struct {
	ProductID        uuid.UUID `json:"productId" binding:"required"`
	QuantityReturned int       `json:"quantityReturned" binding:"required,gt=0"`
}

// CreateReturnRequest is the payload for processing a return
type CreateReturnRequest struct {
	SaleID            uuid.UUID           `json:"saleId" binding:"required"`
	ItemsReturned     []ReturnItemRequest `json:"itemsReturned" binding:"required,min=1,dive"`
	TotalRefundAmount float64             `json:"totalRefundAmount" binding:"gte=0"`
}
