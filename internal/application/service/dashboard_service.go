package service

import (
	"context"
	"time"

	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
)

// Dashboard defaults
const (
	defaultLowStockThreshold = 10
	lowStockLimit            = 5
)

// LowStockProduct is a dashboard entry for a product running low
type LowStockProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// DashboardStats aggregates today's trading figures
type DashboardStats struct {
	TotalSalesToday  float64           `json:"totalSalesToday"`
	TotalOrdersToday int64             `json:"totalOrdersToday"`
	TotalCustomers   int64             `json:"totalCustomers"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
}

// DashboardService computes dashboard statistics
type DashboardService struct {
	statsRepo         repository.StatsRepository
	customerRepo      repository.CustomerRepository
	productRepo       repository.ProductRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	statsRepo repository.StatsRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		statsRepo:         statsRepo,
		customerRepo:      customerRepo,
		productRepo:       productRepo,
		lowStockThreshold: defaultLowStockThreshold,
		now:               time.Now,
	}
}

// WithLowStockThreshold overrides the configured low stock threshold
func (s *DashboardService) WithLowStockThreshold(threshold int) *DashboardService {
	if threshold > 0 {
		s.lowStockThreshold = threshold
	}
	return s
}

// WithClock overrides the service clock, used in tests
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// GetStats computes the dashboard snapshot. "Today" starts at local
// midnight of the server clock. Stats are always computed fresh.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totals, err := s.statsRepo.SalesTotalsSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, s.lowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, err
	}

	lowStockProducts := make([]LowStockProduct, 0, len(lowStock))
	for _, product := range lowStock {
		lowStockProducts = append(lowStockProducts, LowStockProduct{
			Name:  product.Name,
			Stock: product.Stock,
		})
	}

	return &DashboardStats{
		TotalSalesToday:  float64(totals.AmountCents) / 100,
		TotalOrdersToday: totals.Orders,
		TotalCustomers:   customerCount,
		LowStockProducts: lowStockProducts,
	}, nil
}
