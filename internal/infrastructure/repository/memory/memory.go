// Package memory provides an in-memory implementation of the repository
// interfaces. It backs tests and lets the server run without Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
)

// Store holds all in-memory data behind a single lock
type Store struct {
	mu          sync.RWMutex
	products    map[uuid.UUID]entity.Product
	categories  map[uuid.UUID]entity.Category
	customers   map[uuid.UUID]entity.Customer
	sales       map[uuid.UUID]entity.Sale
	returns     map[uuid.UUID]entity.Return
	idempotency map[string]entity.IdempotencyKey
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		products:    make(map[uuid.UUID]entity.Product),
		categories:  make(map[uuid.UUID]entity.Category),
		customers:   make(map[uuid.UUID]entity.Customer),
		sales:       make(map[uuid.UUID]entity.Sale),
		returns:     make(map[uuid.UUID]entity.Return),
		idempotency: make(map[string]entity.IdempotencyKey),
	}
}

// Products returns the product repository view of the store
func (s *Store) Products() repository.ProductRepository { return &productStore{s} }

// Categories returns the category repository view of the store
func (s *Store) Categories() repository.CategoryRepository { return &categoryStore{s} }

// Customers returns the customer repository view of the store
func (s *Store) Customers() repository.CustomerRepository { return &customerStore{s} }

// Sales returns the sale repository view of the store
func (s *Store) Sales() repository.SaleRepository { return &saleStore{s} }

// Returns returns the return repository view of the store
func (s *Store) Returns() repository.ReturnRepository { return &returnStore{s} }

// Stats returns the stats repository view of the store
func (s *Store) Stats() repository.StatsRepository { return &statsStore{s} }

// Idempotency returns the idempotency repository view of the store
func (s *Store) Idempotency() repository.IdempotencyRepository { return &idempotencyStore{s} }

func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

func paginate[T any](items []T, params *pagination.PaginationParams) []T {
	if params == nil {
		return items
	}
	offset := params.Offset()
	if offset >= len(items) {
		return nil
	}
	end := offset + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type productStore struct{ s *Store }

func (p *productStore) Create(ctx context.Context, product *entity.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	stamp(&product.CreatedAt, &product.UpdatedAt)
	for _, existing := range p.s.products {
		if existing.SKU == product.SKU {
			return apperror.ErrConflict
		}
	}
	p.s.products[product.ID] = *product
	return nil
}

func (p *productStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	product, ok := p.s.products[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &product, nil
}

func (p *productStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var products []*entity.Product
	for _, id := range ids {
		if product, ok := p.s.products[id]; ok {
			cp := product
			products = append(products, &cp)
		}
	}
	return products, nil
}

func (p *productStore) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	for _, product := range p.s.products {
		if product.SKU == sku {
			cp := product
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (p *productStore) Update(ctx context.Context, product *entity.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.products[product.ID]; !ok {
		return apperror.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	p.s.products[product.ID] = *product
	return nil
}

func (p *productStore) Delete(ctx context.Context, id uuid.UUID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.products[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(p.s.products, id)
	return nil
}

func (p *productStore) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var products []*entity.Product
	search := strings.ToLower(filter.Search)
	for _, product := range p.s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(product.Name), search) &&
			!strings.Contains(strings.ToLower(product.SKU), search) {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		cp := product
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return paginate(products, filter.Params), nil
}

func (p *productStore) GetLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var products []*entity.Product
	for _, product := range p.s.products {
		if product.Stock <= threshold {
			cp := product
			products = append(products, &cp)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Stock < products[j].Stock
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (p *productStore) AtomicDecrementBatch(ctx context.Context, items []repository.StockAdjustment) ([]uuid.UUID, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	var failedIDs []uuid.UUID
	for _, item := range items {
		product, ok := p.s.products[item.ProductID]
		if !ok || product.Stock < item.Quantity {
			failedIDs = append(failedIDs, item.ProductID)
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	for _, item := range items {
		product := p.s.products[item.ProductID]
		product.Stock -= item.Quantity
		product.UpdatedAt = time.Now()
		p.s.products[item.ProductID] = product
	}
	return nil, nil
}

func (p *productStore) AtomicIncrementBatch(ctx context.Context, items []repository.StockAdjustment) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for _, item := range items {
		product, ok := p.s.products[item.ProductID]
		if !ok {
			continue
		}
		product.Stock += item.Quantity
		product.UpdatedAt = time.Now()
		p.s.products[item.ProductID] = product
	}
	return nil
}

type categoryStore struct{ s *Store }

func (c *categoryStore) Create(ctx context.Context, category *entity.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	stamp(&category.CreatedAt, &category.UpdatedAt)
	for _, existing := range c.s.categories {
		if existing.Slug == category.Slug {
			return apperror.ErrConflict
		}
	}
	c.s.categories[category.ID] = *category
	return nil
}

func (c *categoryStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	category, ok := c.s.categories[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &category, nil
}

func (c *categoryStore) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, category := range c.s.categories {
		if category.Slug == slug {
			cp := category
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (c *categoryStore) List(ctx context.Context) ([]*entity.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	var categories []*entity.Category
	for _, category := range c.s.categories {
		cp := category
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

type customerStore struct{ s *Store }

func (c *customerStore) Create(ctx context.Context, customer *entity.Customer) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	stamp(&customer.CreatedAt, &customer.UpdatedAt)
	for _, existing := range c.s.customers {
		if existing.Phone == customer.Phone {
			return apperror.ErrConflict
		}
	}
	c.s.customers[customer.ID] = *customer
	return nil
}

func (c *customerStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	customer, ok := c.s.customers[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &customer, nil
}

func (c *customerStore) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, customer := range c.s.customers {
		if customer.Phone == phone {
			cp := customer
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (c *customerStore) Update(ctx context.Context, customer *entity.Customer) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.customers[customer.ID]; !ok {
		return apperror.ErrNotFound
	}
	customer.UpdatedAt = time.Now()
	c.s.customers[customer.ID] = *customer
	return nil
}

func (c *customerStore) Delete(ctx context.Context, id uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.customers[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(c.s.customers, id)
	return nil
}

func (c *customerStore) List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Customer, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	var customers []*entity.Customer
	for _, customer := range c.s.customers {
		cp := customer
		customers = append(customers, &cp)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.After(customers[j].CreatedAt)
	})
	return paginate(customers, params), nil
}

func (c *customerStore) Count(ctx context.Context) (int64, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return int64(len(c.s.customers)), nil
}

type saleStore struct{ s *Store }

func (st *saleStore) Create(ctx context.Context, sale *entity.Sale) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	stamp(&sale.CreatedAt, &sale.UpdatedAt)
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	st.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (st *saleStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	sale, ok := st.s.sales[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := cloneSale(&sale)
	if customer, ok := st.s.customers[sale.CustomerID]; ok {
		cp.Customer = &customer
	}
	return &cp, nil
}

func (st *saleStore) List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Sale, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	var sales []*entity.Sale
	for _, sale := range st.s.sales {
		cp := cloneSale(&sale)
		if customer, ok := st.s.customers[sale.CustomerID]; ok {
			cp.Customer = &customer
		}
		sales = append(sales, &cp)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})
	return paginate(sales, params), nil
}

func (st *saleStore) AppendReturnedItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleReturnedItem) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	sale, ok := st.s.sales[saleID]
	if !ok {
		return apperror.ErrNotFound
	}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.SaleID = saleID
		sale.ReturnedItems = append(sale.ReturnedItems, item)
	}
	sale.UpdatedAt = time.Now()
	st.s.sales[saleID] = sale
	return nil
}

func cloneSale(sale *entity.Sale) entity.Sale {
	cp := *sale
	cp.Customer = nil
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	cp.ReturnedItems = append([]entity.SaleReturnedItem(nil), sale.ReturnedItems...)
	return cp
}

type returnStore struct{ s *Store }

func (r *returnStore) Create(ctx context.Context, ret *entity.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	stamp(&ret.CreatedAt, &ret.UpdatedAt)
	for i := range ret.Items {
		if ret.Items[i].ID == uuid.Nil {
			ret.Items[i].ID = uuid.New()
		}
		ret.Items[i].ReturnID = ret.ID
	}
	cp := *ret
	cp.Sale = nil
	cp.Items = append([]entity.ReturnItem(nil), ret.Items...)
	r.s.returns[ret.ID] = cp
	return nil
}

func (r *returnStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ret, ok := r.s.returns[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := ret
	cp.Items = append([]entity.ReturnItem(nil), ret.Items...)
	return &cp, nil
}

func (r *returnStore) List(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Return, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var returns []*entity.Return
	for _, ret := range r.s.returns {
		cp := ret
		cp.Items = append([]entity.ReturnItem(nil), ret.Items...)
		returns = append(returns, &cp)
	}
	sort.Slice(returns, func(i, j int) bool {
		return returns[i].CreatedAt.After(returns[j].CreatedAt)
	})
	return paginate(returns, params), nil
}

func (r *returnStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.returns[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.s.returns, id)
	return nil
}

type statsStore struct{ s *Store }

func (st *statsStore) SalesTotalsSince(ctx context.Context, since time.Time) (*repository.SalesTotals, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	totals := &repository.SalesTotals{}
	for _, sale := range st.s.sales {
		if sale.CreatedAt.Before(since) {
			continue
		}
		totals.AmountCents += sale.TotalAmount
		totals.Orders++
	}
	return totals, nil
}

type idempotencyStore struct{ s *Store }

func idemKey(key, endpoint string) string {
	return key + "|" + endpoint
}

func (i *idempotencyStore) GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	record, ok := i.s.idempotency[idemKey(key, endpoint)]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &record, nil
}

func (i *idempotencyStore) Create(ctx context.Context, record *entity.IdempotencyKey) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	i.s.idempotency[idemKey(record.Key, record.Endpoint)] = *record
	return nil
}

func (i *idempotencyStore) DeleteExpired(ctx context.Context) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	now := time.Now()
	for key, record := range i.s.idempotency {
		if record.ExpiresAt.Before(now) {
			delete(i.s.idempotency, key)
		}
	}
	return nil
}
