package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed checkout. Line items are snapshots of the
// cart at checkout time, not live product references.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string             `gorm:"size:100;uniqueIndex;not null" json:"invoiceNo"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"customerId"`
	TotalAmount   int64              `gorm:"not null" json:"-"` // Stored in cents
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"paymentMethod"`
	AmountPaid    int64              `gorm:"not null;default:0" json:"-"` // Stored in cents
	AmountDue     int64              `gorm:"not null;default:0" json:"-"` // Stored in cents
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"paymentStatus"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer      *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items         []SaleItem         `gorm:"foreignKey:SaleID" json:"items"`
	ReturnedItems []SaleReturnedItem `gorm:"foreignKey:SaleID" json:"returnedItems"`
}

// MarshalJSON custom marshaler to convert cents to decimals for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"totalAmount"`
		AmountPaid  float64 `json:"amountPaid"`
		AmountDue   float64 `json:"amountDue"`
	}{
		Alias:       Alias(s),
		TotalAmount: float64(s.TotalAmount) / 100,
		AmountPaid:  float64(s.AmountPaid) / 100,
		AmountDue:   float64(s.AmountDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SoldQuantity returns the quantity of a product on the original bill
func (s *Sale) SoldQuantity(productID uuid.UUID) int {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// ReturnedQuantity returns how many units of a product were already returned
func (s *Sale) ReturnedQuantity(productID uuid.UUID) int {
	total := 0
	for _, item := range s.ReturnedItems {
		if item.ProductID == productID {
			total += item.QuantityReturned
		}
	}
	return total
}

// SaleItem is a line item snapshot within a sale
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int64     `gorm:"not null" json:"-"` // Stored in cents
	Quantity  int       `gorm:"not null" json:"quantity"`
}

// MarshalJSON custom marshaler to convert cents to a decimal price
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(si),
		Price: float64(si.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleReturnedItem tracks what came back against a bill
type SaleReturnedItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	SaleID           uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	QuantityReturned int       `gorm:"not null" json:"quantityReturned"`
}

// BeforeCreate generates a UUID before creating a new returned item row
func (ri *SaleReturnedItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleReturnedItem model
func (SaleReturnedItem) TableName() string {
	return "sale_returned_items"
}
