package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/infrastructure/repository/memory"
)

func seedSaleAt(t *testing.T, store *memory.Store, customerID uuid.UUID, amountCents int64, at time.Time) {
	t.Helper()
	sale := &entity.Sale{
		InvoiceNo:   "INV-" + at.Format("150405.000"),
		CustomerID:  customerID,
		TotalAmount: amountCents,
		AmountPaid:  amountCents,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	if err := store.Sales().Create(context.Background(), sale); err != nil {
		t.Fatalf("seed sale: %v", err)
	}
}

func TestGetStatsCountsOnlyToday(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	customer := &entity.Customer{Name: "Lena", Phone: "9876512345"}
	if err := store.Customers().Create(ctx, customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.Local)
	seedSaleAt(t, store, customer.ID, 50000, now.Add(-5*time.Hour))   // today 10:00
	seedSaleAt(t, store, customer.ID, 30000, now.Add(-14*time.Hour))  // today 01:00
	seedSaleAt(t, store, customer.ID, 100000, now.Add(-16*time.Hour)) // yesterday 23:00

	svc := NewDashboardService(store.Stats(), store.Customers(), store.Products()).
		WithClock(func() time.Time { return now })

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.TotalSalesToday != 800 {
		t.Errorf("TotalSalesToday = %v, want 800", stats.TotalSalesToday)
	}
	if stats.TotalOrdersToday != 2 {
		t.Errorf("TotalOrdersToday = %d, want 2", stats.TotalOrdersToday)
	}
	if stats.TotalCustomers != 1 {
		t.Errorf("TotalCustomers = %d, want 1", stats.TotalCustomers)
	}
	if len(stats.LowStockProducts) != 0 {
		t.Errorf("LowStockProducts = %v, want empty", stats.LowStockProducts)
	}
}

func TestGetStatsLowStockListing(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	stocks := []int{0, 3, 7, 9, 10, 11, 50}
	for i, stock := range stocks {
		seedProduct(t, store, "P"+string(rune('A'+i)), 1000, stock)
	}

	svc := NewDashboardService(store.Stats(), store.Customers(), store.Products())
	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if len(stats.LowStockProducts) != 5 {
		t.Fatalf("got %d low stock entries, want 5", len(stats.LowStockProducts))
	}
	for i, entry := range stats.LowStockProducts {
		if entry.Stock > 10 {
			t.Errorf("entry %d stock = %d, above threshold", i, entry.Stock)
		}
		if i > 0 && entry.Stock < stats.LowStockProducts[i-1].Stock {
			t.Errorf("entries not sorted by stock: %v", stats.LowStockProducts)
		}
	}
}

func TestGetStatsConfiguredThreshold(t *testing.T) {
	store := memory.NewStore()

	seedProduct(t, store, "Scarce", 1000, 2)
	seedProduct(t, store, "Plenty", 1000, 5)

	svc := NewDashboardService(store.Stats(), store.Customers(), store.Products()).
		WithLowStockThreshold(3)

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if len(stats.LowStockProducts) != 1 || stats.LowStockProducts[0].Name != "Scarce" {
		t.Errorf("threshold 3 should only flag Scarce, got %v", stats.LowStockProducts)
	}
}

func TestGetStatsEmptyStore(t *testing.T) {
	store := memory.NewStore()
	svc := NewDashboardService(store.Stats(), store.Customers(), store.Products())

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalSalesToday != 0 || stats.TotalOrdersToday != 0 || stats.TotalCustomers != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if stats.LowStockProducts == nil {
		t.Error("LowStockProducts should be an empty slice, not nil")
	}
}
