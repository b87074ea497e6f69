package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	Search   string
	Category string
	Params   *pagination.PaginationParams
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// GetLowStock returns at most limit products with stock at or below
	// threshold, lowest stock first.
	GetLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error)

	// AtomicDecrementBatch decrements stock for each item only when enough
	// stock remains. Returns the IDs that could not be decremented.
	AtomicDecrementBatch(ctx context.Context, items []StockAdjustment) ([]uuid.UUID, error)

	// AtomicIncrementBatch adds stock back, used for restocks and for
	// compensating a failed sale.
	AtomicIncrementBatch(ctx context.Context, items []StockAdjustment) error
}

// StockAdjustment is a single stock delta for a product
type StockAdjustment struct {
	ProductID uuid.UUID
	Quantity  int
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
