package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/enum"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
	"github.com/vivahgalaxy/pos-api/pkg/utils"
)

// toCents converts a decimal amount to cents
func toCents(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

// SaleService handles checkout business logic
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SaleItemInput is a cart line submitted at checkout
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateSaleInput carries everything the checkout submits
type CreateSaleInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []SaleItemInput
	TotalAmount     float64
	AmountPaid      float64
	PaymentMethod   enum.PaymentMethod
	PaymentStatus   *enum.PaymentStatus
}

// CreateSale records a checkout. The customer is looked up by phone and
// created on first purchase. Stock is decremented atomically per item, and
// a failed sale restores whatever was already taken.
func (s *SaleService) CreateSale(ctx context.Context, input CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
	}

	customer, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}
	for _, item := range input.Items {
		if _, ok := productMap[item.ProductID]; !ok {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product not found: %s", item.ProductID))
		}
	}

	adjustments := make([]repository.StockAdjustment, 0, len(input.Items))
	for _, item := range input.Items {
		adjustments = append(adjustments, repository.StockAdjustment{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, adjustments)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		names := make([]string, 0, len(failedIDs))
		for _, id := range failedIDs {
			if product, ok := productMap[id]; ok {
				names = append(names, product.Name)
			} else {
				names = append(names, id.String())
			}
		}
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for: %v", names))
	}

	totalAmount := toCents(input.TotalAmount)
	amountPaid := toCents(input.AmountPaid)
	if amountPaid < 0 || amountPaid > totalAmount {
		s.compensateStock(adjustments)
		return nil, apperror.NewBadRequestError("Amount paid must be between zero and the total amount")
	}
	amountDue := totalAmount - amountPaid

	paymentStatus := enum.DerivePaymentStatus(totalAmount, amountDue)
	if input.PaymentStatus != nil {
		paymentStatus = *input.PaymentStatus
	}

	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		product := productMap[item.ProductID]
		items = append(items, entity.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	sale := &entity.Sale{
		InvoiceNo:     utils.GenerateInvoiceNo(),
		CustomerID:    customer.ID,
		TotalAmount:   totalAmount,
		AmountPaid:    amountPaid,
		AmountDue:     amountDue,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
		Items:         items,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		s.compensateStock(adjustments)
		return nil, err
	}

	return s.saleRepo.GetByID(ctx, sale.ID)
}

func (s *SaleService) resolveCustomer(ctx context.Context, input CreateSaleInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, input.CustomerPhone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	customer = &entity.Customer{
		Name:    input.CustomerName,
		Phone:   input.CustomerPhone,
		Address: input.CustomerAddress,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// compensateStock puts decremented stock back after a failed sale
func (s *SaleService) compensateStock(adjustments []repository.StockAdjustment) {
	if err := s.productRepo.AtomicIncrementBatch(context.Background(), adjustments); err != nil {
		log.Printf("failed to compensate stock after failed sale: %v", err)
	}
}

// GetSale retrieves a sale with customer and items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// ListSales returns sales newest first
func (s *SaleService) ListSales(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Sale, error) {
	sales, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []*entity.Sale{}
	}
	return sales, nil
}
