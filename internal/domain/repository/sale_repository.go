package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	// Create persists the sale together with its line items.
	Create(ctx context.Context, sale *entity.Sale) error

	// GetByID loads a sale with customer, items and returned items.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)

	// List returns sales newest first with customer and items preloaded.
	List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Sale, error)

	// AppendReturnedItems records returned quantities against a sale.
	AppendReturnedItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleReturnedItem) error
}

// SalesTotals aggregates sales over a period
type SalesTotals struct {
	AmountCents int64
	Orders      int64
}

// StatsRepository provides dashboard aggregates
type StatsRepository interface {
	// SalesTotalsSince sums sale amounts and counts orders created at or
	// after the given instant.
	SalesTotalsSince(ctx context.Context, since time.Time) (*SalesTotals, error)
}

// ReturnRepository defines the interface for return data access
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Return, error)

	// Delete removes a return, used to compensate a failed reconciliation.
	Delete(ctx context.Context, id uuid.UUID) error
}
