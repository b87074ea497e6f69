package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Return represents a processed return against an original sale.
// Returns are immutable once created.
type Return struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"saleId"`
	TotalRefundAmount int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale  *Sale        `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	Items []ReturnItem `gorm:"foreignKey:ReturnID" json:"itemsReturned"`
}

// MarshalJSON custom marshaler to convert cents to a decimal refund amount
func (r Return) MarshalJSON() ([]byte, error) {
	type Alias Return
	return json.Marshal(&struct {
		Alias
		TotalRefundAmount float64 `json:"totalRefundAmount"`
	}{
		Alias:             Alias(r),
		TotalRefundAmount: float64(r.TotalRefundAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new return
func (r *Return) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Return model
func (Return) TableName() string {
	return "returns"
}

// ReturnItem is a returned line item within a return
type ReturnItem struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	ReturnID         uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	QuantityReturned int       `gorm:"not null" json:"quantityReturned"`
}

// BeforeCreate generates a UUID before creating a new return item
func (ri *ReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnItem model
func (ReturnItem) TableName() string {
	return "return_items"
}
