package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/internal/infrastructure/repository/memory"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
)

// failingProductRepo makes restocking fail on demand
type failingProductRepo struct {
	repository.ProductRepository
	incrementErr error
}

func (r *failingProductRepo) AtomicIncrementBatch(ctx context.Context, items []repository.StockAdjustment) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	return r.ProductRepository.AtomicIncrementBatch(ctx, items)
}

// failingSaleRepo makes appending returned-item history fail on demand
type failingSaleRepo struct {
	repository.SaleRepository
	appendErr error
}

func (r *failingSaleRepo) AppendReturnedItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleReturnedItem) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	return r.SaleRepository.AppendReturnedItems(ctx, saleID, items)
}

func newReturnFixture(t *testing.T) (*ReturnService, *memory.Store, *entity.Product, *entity.Sale) {
	t.Helper()
	store := memory.NewStore()
	saleSvc := NewSaleService(store.Sales(), store.Products(), store.Customers())
	returnSvc := NewReturnService(store.Returns(), store.Sales(), store.Products())

	product := seedProduct(t, store, "Notebook", 10000, 5)
	sale, err := saleSvc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Priya",
		CustomerPhone: "9876501234",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 3}},
		TotalAmount:   300,
		AmountPaid:    300,
	})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}
	return returnSvc, store, product, sale
}

func TestCreateReturnRestocksAndRecords(t *testing.T) {
	svc, store, product, sale := newReturnFixture(t)
	ctx := context.Background()

	ret, err := svc.CreateReturn(ctx, CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 2}},
		TotalRefundAmount: 200,
	})
	if err != nil {
		t.Fatalf("CreateReturn: %v", err)
	}

	if ret.TotalRefundAmount != 20000 {
		t.Errorf("TotalRefundAmount = %d, want 20000", ret.TotalRefundAmount)
	}
	if len(ret.Items) != 1 || ret.Items[0].QuantityReturned != 2 {
		t.Errorf("unexpected return items: %+v", ret.Items)
	}

	// Stock went 5 -> 2 at sale, back to 4 after the return
	restocked, _ := store.Products().GetByID(ctx, product.ID)
	if restocked.Stock != 4 {
		t.Errorf("stock = %d, want 4", restocked.Stock)
	}

	// The sale carries the returned quantity history
	updated, err := store.Sales().GetByID(ctx, sale.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.ReturnedQuantity(product.ID) != 2 {
		t.Errorf("returned quantity = %d, want 2", updated.ReturnedQuantity(product.ID))
	}
}

func TestCreateReturnCapsAtSoldMinusReturned(t *testing.T) {
	svc, _, product, sale := newReturnFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateReturn(ctx, CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 2}},
		TotalRefundAmount: 200,
	}); err != nil {
		t.Fatalf("first return: %v", err)
	}

	// Sold 3, returned 2, only 1 returnable
	_, err := svc.CreateReturn(ctx, CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 2}},
		TotalRefundAmount: 200,
	})
	if err == nil {
		t.Fatal("expected over-quantity return to be rejected")
	}
	if apperror.GetAppError(err).Code != 400 {
		t.Errorf("error code = %d, want 400", apperror.GetAppError(err).Code)
	}
}

func TestCreateReturnRejectsProductNotOnSale(t *testing.T) {
	svc, store, _, sale := newReturnFixture(t)
	other := seedProduct(t, store, "Pen", 2000, 10)

	_, err := svc.CreateReturn(context.Background(), CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: other.ID, QuantityReturned: 1}},
		TotalRefundAmount: 20,
	})
	if err == nil {
		t.Fatal("expected rejection for product not on the sale")
	}
	if apperror.GetAppError(err).Code != 400 {
		t.Errorf("error code = %d, want 400", apperror.GetAppError(err).Code)
	}
}

func TestCreateReturnUnknownSale(t *testing.T) {
	svc, _, product, _ := newReturnFixture(t)

	_, err := svc.CreateReturn(context.Background(), CreateReturnInput{
		SaleID:            product.ID, // not a sale ID
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 1}},
		TotalRefundAmount: 100,
	})
	if err == nil {
		t.Fatal("expected error for unknown sale")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Errorf("error code = %d, want 404", apperror.GetAppError(err).Code)
	}
}

func TestCreateReturnRestockFailureLeavesNoTrace(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	saleSvc := NewSaleService(store.Sales(), store.Products(), store.Customers())

	product := seedProduct(t, store, "Notebook", 10000, 5)
	sale, err := saleSvc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Priya",
		CustomerPhone: "9876501234",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 3}},
		TotalAmount:   300,
		AmountPaid:    300,
	})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	products := &failingProductRepo{ProductRepository: store.Products(), incrementErr: errors.New("db down")}
	svc := NewReturnService(store.Returns(), store.Sales(), products)

	input := CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 2}},
		TotalRefundAmount: 200,
	}
	if _, err := svc.CreateReturn(ctx, input); err == nil {
		t.Fatal("expected restock failure to surface")
	}

	// Nothing may survive the failed reconciliation
	returns, _ := store.Returns().List(ctx, nil)
	if len(returns) != 0 {
		t.Errorf("returns persisted after failed CreateReturn: %d", len(returns))
	}
	after, _ := store.Sales().GetByID(ctx, sale.ID)
	if got := after.ReturnedQuantity(product.ID); got != 0 {
		t.Errorf("sale returned-history quantity = %d, want 0", got)
	}
	unchanged, _ := store.Products().GetByID(ctx, product.ID)
	if unchanged.Stock != 2 {
		t.Errorf("stock = %d, want 2 (as after the sale)", unchanged.Stock)
	}

	// A retry once storage recovers must succeed, not be rejected as over-return
	products.incrementErr = nil
	if _, err := svc.CreateReturn(ctx, input); err != nil {
		t.Fatalf("retry after recovery: %v", err)
	}
	restocked, _ := store.Products().GetByID(ctx, product.ID)
	if restocked.Stock != 4 {
		t.Errorf("stock = %d, want 4 after successful retry", restocked.Stock)
	}
}

func TestCreateReturnHistoryFailureUndoesRestock(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	saleSvc := NewSaleService(store.Sales(), store.Products(), store.Customers())

	product := seedProduct(t, store, "Notebook", 10000, 5)
	sale, err := saleSvc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Priya",
		CustomerPhone: "9876501234",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 3}},
		TotalAmount:   300,
		AmountPaid:    300,
	})
	if err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	sales := &failingSaleRepo{SaleRepository: store.Sales(), appendErr: errors.New("db down")}
	svc := NewReturnService(store.Returns(), sales, store.Products())

	_, err = svc.CreateReturn(ctx, CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 2}},
		TotalRefundAmount: 200,
	})
	if err == nil {
		t.Fatal("expected history failure to surface")
	}

	returns, _ := store.Returns().List(ctx, nil)
	if len(returns) != 0 {
		t.Errorf("returns persisted after failed CreateReturn: %d", len(returns))
	}
	unchanged, _ := store.Products().GetByID(ctx, product.ID)
	if unchanged.Stock != 2 {
		t.Errorf("stock = %d, want 2 (restock undone)", unchanged.Stock)
	}
}

func TestCreateReturnRejectsZeroQuantity(t *testing.T) {
	svc, _, product, sale := newReturnFixture(t)

	_, err := svc.CreateReturn(context.Background(), CreateReturnInput{
		SaleID:            sale.ID,
		Items:             []ReturnItemInput{{ProductID: product.ID, QuantityReturned: 0}},
		TotalRefundAmount: 0,
	})
	if err == nil {
		t.Fatal("expected zero quantity to be rejected")
	}
}
