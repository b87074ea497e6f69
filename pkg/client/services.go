package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListProducts fetches products, optionally filtered by search and category
func (c *Client) ListProducts(ctx context.Context, search, category string) ([]Product, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if category != "" {
		query.Set("category", category)
	}
	path := "/api/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var products []Product
	if err := c.get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/api/products/"+id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a product
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	var product Product
	if err := c.post(ctx, "/api/products", nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies partial updates to a product
func (c *Client) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, nil)
}

// LowStockProducts fetches products running low on stock
func (c *Client) LowStockProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/api/products/low-stock", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCustomers fetches all customers
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.get(ctx, "/api/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer fetches a single customer
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, "/api/customers/"+id, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer creates a customer
func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.post(ctx, "/api/customers", nil, req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCategories fetches all categories
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.get(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category
func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var category Category
	body := map[string]string{"name": name}
	if err := c.post(ctx, "/api/categories", nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListSales fetches sales newest first
func (c *Client) ListSales(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	if err := c.get(ctx, "/api/sales", &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetSale fetches a single sale
func (c *Client) GetSale(ctx context.Context, id string) (*Sale, error) {
	var sale Sale
	if err := c.get(ctx, "/api/sales/"+id, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// CreateSale submits a checkout. A non-empty idempotencyKey makes retries
// safe against double billing.
func (c *Client) CreateSale(ctx context.Context, req CreateSaleRequest, idempotencyKey string) (*Sale, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var sale Sale
	if err := c.post(ctx, "/api/sales", headers, req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListReturns fetches returns newest first
func (c *Client) ListReturns(ctx context.Context) ([]Return, error) {
	var returns []Return
	if err := c.get(ctx, "/api/returns", &returns); err != nil {
		return nil, err
	}
	return returns, nil
}

// GetReturn fetches a single return
func (c *Client) GetReturn(ctx context.Context, id string) (*Return, error) {
	var ret Return
	if err := c.get(ctx, "/api/returns/"+id, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// CreateReturn submits a return against a sale
func (c *Client) CreateReturn(ctx context.Context, req CreateReturnRequest, idempotencyKey string) (*Return, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	var ret Return
	if err := c.post(ctx, "/api/returns", headers, req, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// GetDashboardStats fetches the dashboard snapshot
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
