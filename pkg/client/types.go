package client

import "time"

// Product mirrors the product wire format
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Customer mirrors the customer wire format
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category mirrors the category wire format
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaleItem mirrors a sale line item on the wire
type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ReturnedItem mirrors a returned quantity recorded against a sale
type ReturnedItem struct {
	ProductID        string `json:"productId"`
	QuantityReturned int    `json:"quantityReturned"`
}

// Sale mirrors the sale wire format
type Sale struct {
	ID            string         `json:"id"`
	InvoiceNo     string         `json:"invoiceNo"`
	CustomerID    string         `json:"customerId"`
	TotalAmount   float64        `json:"totalAmount"`
	AmountPaid    float64        `json:"amountPaid"`
	AmountDue     float64        `json:"amountDue"`
	PaymentMethod string         `json:"paymentMethod"`
	PaymentStatus string         `json:"paymentStatus"`
	CreatedAt     time.Time      `json:"createdAt"`
	Customer      *Customer      `json:"customer,omitempty"`
	Items         []SaleItem     `json:"items"`
	ReturnedItems []ReturnedItem `json:"returnedItems"`
}

// Return mirrors the return wire format
type Return struct {
	ID                string         `json:"id"`
	SaleID            string         `json:"saleId"`
	TotalRefundAmount float64        `json:"totalRefundAmount"`
	CreatedAt         time.Time      `json:"createdAt"`
	ItemsReturned     []ReturnedItem `json:"itemsReturned"`
}

// LowStockProduct is a dashboard low stock entry
type LowStockProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// DashboardStats mirrors the dashboard wire format
type DashboardStats struct {
	TotalSalesToday  float64           `json:"totalSalesToday"`
	TotalOrdersToday int64             `json:"totalOrdersToday"`
	TotalCustomers   int64             `json:"totalCustomers"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku,omitempty"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// UpdateProductRequest is the payload for updating a product
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
}

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// SaleItemRequest is a cart line at checkout
type SaleItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateSaleRequest is the checkout payload
type CreateSaleRequest struct {
	Cart            []SaleItemRequest `json:"cart"`
	TotalAmount     float64           `json:"totalAmount"`
	AmountPaid      float64           `json:"amountPaid"`
	PaymentMethod   string            `json:"paymentMethod"`
	PaymentStatus   string            `json:"paymentStatus,omitempty"`
	CustomerName    string            `json:"customerName"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress,omitempty"`
}

// ReturnItemRequest is a returned line against a sale
type ReturnItemRequest struct {
	ProductID        string `json:"productId"`
	QuantityReturned int    `json:"quantityReturned"`
}

// CreateReturnRequest is the payload for processing a return
type CreateReturnRequest struct {
	SaleID            string              `json:"saleId"`
	ItemsReturned     []ReturnItemRequest `json:"itemsReturned"`
	TotalRefundAmount float64             `json:"totalRefundAmount"`
}
