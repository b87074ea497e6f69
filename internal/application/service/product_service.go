package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/utils"
)

// ProductService handles product business logic
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput carries the fields for a new product
type CreateProductInput struct {
	Name     string
	SKU      string
	Category string
	Price    float64
	Stock    int
}

// CreateProduct creates a new product, generating a SKU when none is given
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	} else {
		existing, err := s.productRepo.GetBySKU(ctx, sku)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product with this SKU already exists")
		}
	}

	product := &entity.Product{
		Name:     input.Name,
		SKU:      sku,
		Category: input.Category,
		Stock:    input.Stock,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// UpdateProductInput carries updatable product fields. Nil means unchanged.
type UpdateProductInput struct {
	Name     *string
	Category *string
	Price    *float64
	Stock    *int
}

// UpdateProduct applies partial updates to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stock cannot be negative")
		}
		product.Stock = *input.Stock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}

// LowStockProducts returns products at or below the threshold
func (s *ProductService) LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	if threshold <= 0 {
		threshold = 10
	}
	if limit <= 0 {
		limit = 50
	}
	products, err := s.productRepo.GetLowStock(ctx, threshold, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}
