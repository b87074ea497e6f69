package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("ReturnedItems").
		First(&sale, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Sale, error) {
	var sales []*entity.Sale
	query := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("ReturnedItems")
	if params != nil {
		query = query.Offset(params.Offset()).Limit(params.PerPage)
	}
	if err := query.Order("created_at DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) AppendReturnedItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleReturnedItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].SaleID = saleID
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to append returned items: %w", err)
	}
	return nil
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) SalesTotalsSince(ctx context.Context, since time.Time) (*repository.SalesTotals, error) {
	var totals repository.SalesTotals
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(total_amount), 0) AS amount_cents, COUNT(*) AS orders").
		Where("created_at >= ?", since).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	return &totals, nil
}
