package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
)

// ReturnService handles return business logic
type ReturnService struct {
	returnRepo  repository.ReturnRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewReturnService creates a new return service
func NewReturnService(
	returnRepo repository.ReturnRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *ReturnService {
	return &ReturnService{
		returnRepo:  returnRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// ReturnItemInput is a returned line submitted against a sale
type ReturnItemInput struct {
	ProductID        uuid.UUID
	QuantityReturned int
}

// CreateReturnInput carries everything a return submits
type CreateReturnInput struct {
	SaleID            uuid.UUID
	Items             []ReturnItemInput
	TotalRefundAmount float64
}

// CreateReturn records a return against a sale. Each returned quantity is
// capped at sold minus already returned. Restocking and the sale's returned
// item history are reconciled with the return record, with compensation on
// partial failure.
func (s *ReturnService) CreateReturn(ctx context.Context, input CreateReturnInput) (*entity.Return, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Return must contain at least one item")
	}

	sale, err := s.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		if item.QuantityReturned <= 0 {
			return nil, apperror.NewBadRequestError("Returned quantity must be positive")
		}
		sold := sale.SoldQuantity(item.ProductID)
		if sold == 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not on this sale", item.ProductID))
		}
		remaining := sold - sale.ReturnedQuantity(item.ProductID)
		if item.QuantityReturned > remaining {
			return nil, apperror.NewBadRequestError(fmt.Sprintf(
				"Cannot return %d of product %s, only %d returnable",
				item.QuantityReturned, item.ProductID, remaining,
			))
		}
	}

	items := make([]entity.ReturnItem, 0, len(input.Items))
	returnedItems := make([]entity.SaleReturnedItem, 0, len(input.Items))
	adjustments := make([]repository.StockAdjustment, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, entity.ReturnItem{
			ProductID:        item.ProductID,
			QuantityReturned: item.QuantityReturned,
		})
		returnedItems = append(returnedItems, entity.SaleReturnedItem{
			ProductID:        item.ProductID,
			QuantityReturned: item.QuantityReturned,
		})
		adjustments = append(adjustments, repository.StockAdjustment{
			ProductID: item.ProductID,
			Quantity:  item.QuantityReturned,
		})
	}

	ret := &entity.Return{
		SaleID:            sale.ID,
		TotalRefundAmount: toCents(input.TotalRefundAmount),
		Items:             items,
	}
	if err := s.returnRepo.Create(ctx, ret); err != nil {
		return nil, err
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, adjustments); err != nil {
		s.deleteReturn(ret.ID)
		return nil, err
	}

	if err := s.saleRepo.AppendReturnedItems(ctx, sale.ID, returnedItems); err != nil {
		s.undoRestock(sale.ID, adjustments)
		s.deleteReturn(ret.ID)
		return nil, err
	}

	return s.returnRepo.GetByID(ctx, ret.ID)
}

// deleteReturn removes a return created by a reconciliation that failed
// part way through
func (s *ReturnService) deleteReturn(id uuid.UUID) {
	if err := s.returnRepo.Delete(context.Background(), id); err != nil {
		log.Printf("failed to remove return %s after reconciliation failure: %v", id, err)
	}
}

// undoRestock takes back stock added by a reconciliation that failed part
// way through
func (s *ReturnService) undoRestock(saleID uuid.UUID, adjustments []repository.StockAdjustment) {
	failedIDs, err := s.productRepo.AtomicDecrementBatch(context.Background(), adjustments)
	if err != nil || len(failedIDs) > 0 {
		log.Printf("failed to undo restock for sale %s (failed products %v): %v", saleID, failedIDs, err)
	}
}

// GetReturn retrieves a return by ID
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	return s.returnRepo.GetByID(ctx, id)
}

// ListReturns returns returns newest first
func (s *ReturnService) ListReturns(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Return, error) {
	returns, err := s.returnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if returns == nil {
		returns = []*entity.Return{}
	}
	return returns, nil
}
