package service

import (
	"context"
	"testing"

	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/enum"
	"github.com/vivahgalaxy/pos-api/internal/infrastructure/repository/memory"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
)

func newSaleService(t *testing.T) (*SaleService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewSaleService(store.Sales(), store.Products(), store.Customers()), store
}

func seedProduct(t *testing.T, store *memory.Store, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:  name,
		SKU:   "SKU-" + name,
		Price: priceCents,
		Stock: stock,
	}
	if err := store.Products().Create(context.Background(), product); err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return product
}

func TestCreateSaleComputesAmountDue(t *testing.T) {
	svc, store := newSaleService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "Soap", 25000, 10)

	sale, err := svc.CreateSale(ctx, CreateSaleInput{
		CustomerName:    "Asha",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 Main St",
		Items:           []SaleItemInput{{ProductID: product.ID, Quantity: 2}},
		TotalAmount:     500,
		AmountPaid:      200,
		PaymentMethod:   enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	if sale.TotalAmount != 50000 {
		t.Errorf("TotalAmount = %d, want 50000", sale.TotalAmount)
	}
	if sale.AmountDue != 30000 {
		t.Errorf("AmountDue = %d, want 30000", sale.AmountDue)
	}
	if sale.TotalAmount != sale.AmountPaid+sale.AmountDue {
		t.Errorf("total %d != paid %d + due %d", sale.TotalAmount, sale.AmountPaid, sale.AmountDue)
	}
	if sale.PaymentStatus != enum.PaymentStatusPartial {
		t.Errorf("PaymentStatus = %v, want Partial", sale.PaymentStatus)
	}
	if sale.InvoiceNo == "" {
		t.Error("expected an invoice number")
	}
	if len(sale.Items) != 1 || sale.Items[0].Name != "Soap" || sale.Items[0].Price != 25000 {
		t.Errorf("unexpected items snapshot: %+v", sale.Items)
	}

	updated, err := store.Products().GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Stock != 8 {
		t.Errorf("stock = %d, want 8", updated.Stock)
	}
}

func TestCreateSaleCreatesCustomerOnFirstPurchase(t *testing.T) {
	svc, store := newSaleService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "Tea", 5000, 10)

	sale, err := svc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Ravi",
		CustomerPhone: "9000000001",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalAmount:   50,
		AmountPaid:    50,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	customer, err := store.Customers().GetByPhone(ctx, "9000000001")
	if err != nil {
		t.Fatalf("customer not created: %v", err)
	}
	if sale.CustomerID != customer.ID {
		t.Errorf("sale.CustomerID = %v, want %v", sale.CustomerID, customer.ID)
	}
	if sale.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("PaymentStatus = %v, want Paid", sale.PaymentStatus)
	}
}

func TestCreateSaleReusesCustomerByPhone(t *testing.T) {
	svc, store := newSaleService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "Rice", 10000, 20)

	existing := &entity.Customer{Name: "Meena", Phone: "9111111111", Address: "Old Rd"}
	if err := store.Customers().Create(ctx, existing); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	sale, err := svc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Meena K",
		CustomerPhone: "9111111111",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalAmount:   100,
		AmountPaid:    100,
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.CustomerID != existing.ID {
		t.Errorf("sale bound to new customer, want existing %v", existing.ID)
	}

	count, _ := store.Customers().Count(ctx)
	if count != 1 {
		t.Errorf("customer count = %d, want 1", count)
	}
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	svc, store := newSaleService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "Sugar", 4000, 1)

	_, err := svc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Ali",
		CustomerPhone: "9222222222",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 5}},
		TotalAmount:   200,
		AmountPaid:    200,
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Errorf("error code = %d, want 400", appErr.Code)
	}

	unchanged, _ := store.Products().GetByID(ctx, product.ID)
	if unchanged.Stock != 1 {
		t.Errorf("stock = %d, want 1 (unchanged)", unchanged.Stock)
	}
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	svc, store := newSaleService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "Salt", 2000, 5)
	if err := store.Products().Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	_, err := svc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Dev",
		CustomerPhone: "9333333333",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalAmount:   20,
		AmountPaid:    20,
	})
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if apperror.GetAppError(err).Code != 400 {
		t.Errorf("error code = %d, want 400", apperror.GetAppError(err).Code)
	}
}

func TestCreateSaleRejectsOverpayment(t *testing.T) {
	svc, store := newSaleService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "Oil", 15000, 10)

	_, err := svc.CreateSale(ctx, CreateSaleInput{
		CustomerName:  "Gita",
		CustomerPhone: "9444444444",
		Items:         []SaleItemInput{{ProductID: product.ID, Quantity: 1}},
		TotalAmount:   150,
		AmountPaid:    200,
	})
	if err == nil {
		t.Fatal("expected overpayment to be rejected")
	}

	// Decremented stock must be compensated back
	unchanged, _ := store.Products().GetByID(ctx, product.ID)
	if unchanged.Stock != 10 {
		t.Errorf("stock = %d, want 10 after compensation", unchanged.Stock)
	}
}

func TestCreateSaleRejectsEmptyCart(t *testing.T) {
	svc, _ := newSaleService(t)

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Noor",
		CustomerPhone: "9555555555",
		TotalAmount:   10,
	})
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	if apperror.GetAppError(err).Code != 400 {
		t.Errorf("error code = %d, want 400", apperror.GetAppError(err).Code)
	}
}
