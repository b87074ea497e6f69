package pos

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/vivahgalaxy/pos-api/internal/application/service"
	"github.com/vivahgalaxy/pos-api/internal/config"
	"github.com/vivahgalaxy/pos-api/internal/infrastructure/repository/memory"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/handler"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/routes"
	"github.com/vivahgalaxy/pos-api/pkg/client"
)

// newTestAPI spins up the whole server on an in-memory store and returns
// a client pointed at it
func newTestAPI(t *testing.T) *client.Client {
	t.Helper()

	cfg := &config.Config{
		AppEnv:             "test",
		CORSAllowedOrigins: "http://localhost:3000",
		RateLimitRequests:  600000,
		RateLimitBurst:     100000,
	}
	store := memory.NewStore()

	router := routes.Setup(cfg, routes.Handlers{
		Product:   handler.NewProductHandler(service.NewProductService(store.Products())),
		Customer:  handler.NewCustomerHandler(service.NewCustomerService(store.Customers())),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(store.Categories())),
		Sale:      handler.NewSaleHandler(service.NewSaleService(store.Sales(), store.Products(), store.Customers())),
		Return:    handler.NewReturnHandler(service.NewReturnService(store.Returns(), store.Sales(), store.Products())),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(store.Stats(), store.Customers(), store.Products())),
	}, store.Idempotency())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return client.New(server.URL)
}

func seedCatalog(t *testing.T, api *client.Client) []client.Product {
	t.Helper()
	ctx := context.Background()
	seeds := []client.CreateProductRequest{
		{Name: "Soap", Price: 25.00, Stock: 10},
		{Name: "Shampoo", Price: 120.00, Stock: 2},
		{Name: "Comb", Price: 15.00, Stock: 0},
	}
	for _, seed := range seeds {
		if _, err := api.CreateProduct(ctx, seed); err != nil {
			t.Fatalf("seed product %s: %v", seed.Name, err)
		}
	}
	products, err := api.ListProducts(ctx, "", "")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	return products
}

func findProduct(t *testing.T, products []client.Product, name string) client.Product {
	t.Helper()
	for _, product := range products {
		if product.Name == name {
			return product
		}
	}
	t.Fatalf("product %s not seeded", name)
	return client.Product{}
}

func newReadyCheckout(t *testing.T) (*Checkout, []client.Product) {
	t.Helper()
	api := newTestAPI(t)
	products := seedCatalog(t, api)

	checkout := NewCheckout(api)
	if err := checkout.RefreshProducts(context.Background()); err != nil {
		t.Fatalf("refresh products: %v", err)
	}
	return checkout, products
}

func TestAddToCartCapsAtStock(t *testing.T) {
	checkout, products := newReadyCheckout(t)
	shampoo := findProduct(t, products, "Shampoo")

	if err := checkout.AddToCart(shampoo.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := checkout.AddToCart(shampoo.ID); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if err := checkout.AddToCart(shampoo.ID); err == nil {
		t.Error("third add should exceed stock of 2")
	}
}

func TestAddToCartOutOfStock(t *testing.T) {
	checkout, products := newReadyCheckout(t)
	comb := findProduct(t, products, "Comb")

	if err := checkout.AddToCart(comb.ID); err == nil {
		t.Error("adding an out of stock product should fail")
	}
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	checkout, products := newReadyCheckout(t)
	soap := findProduct(t, products, "Soap")

	if err := checkout.AddToCart(soap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := checkout.UpdateQuantity(soap.ID, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(checkout.Cart()) != 0 {
		t.Errorf("cart length = %d, want 0", len(checkout.Cart()))
	}
}

func TestTotalAndPaymentStatusSync(t *testing.T) {
	checkout, products := newReadyCheckout(t)
	soap := findProduct(t, products, "Soap")

	if err := checkout.AddToCart(soap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := checkout.UpdateQuantity(soap.ID, 4); err != nil {
		t.Fatalf("qty: %v", err)
	}
	if got := checkout.Total(); got != 100.00 {
		t.Errorf("Total = %v, want 100", got)
	}

	checkout.SetPaymentStatus("Paid")
	if checkout.AmountPaid != 100.00 {
		t.Errorf("Paid should set AmountPaid to total, got %v", checkout.AmountPaid)
	}
	checkout.SetPaymentStatus("Unpaid")
	if checkout.AmountPaid != 0 {
		t.Errorf("Unpaid should zero AmountPaid, got %v", checkout.AmountPaid)
	}
	checkout.AmountPaid = 40
	checkout.SetPaymentStatus("Partial")
	if checkout.AmountPaid != 40 {
		t.Errorf("Partial should keep manual AmountPaid, got %v", checkout.AmountPaid)
	}
}

func TestValidate(t *testing.T) {
	checkout, products := newReadyCheckout(t)
	soap := findProduct(t, products, "Soap")

	problems := checkout.Validate()
	for _, field := range []string{"cart", "name", "phone", "address"} {
		if _, ok := problems[field]; !ok {
			t.Errorf("expected a problem for %q, got %v", field, problems)
		}
	}

	if err := checkout.AddToCart(soap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	checkout.Customer = CustomerForm{Name: "Rita", Phone: "12345", Address: "2 Park Ln"}
	problems = checkout.Validate()
	if _, ok := problems["phone"]; !ok {
		t.Errorf("short phone should fail validation, got %v", problems)
	}

	checkout.Customer.Phone = "9876543210"
	checkout.AmountPaid = checkout.Total() + 1
	problems = checkout.Validate()
	if _, ok := problems["amountPaid"]; !ok {
		t.Errorf("overpayment should fail validation, got %v", problems)
	}

	checkout.SetPaymentStatus("Paid")
	if problems = checkout.Validate(); problems != nil {
		t.Errorf("expected a valid checkout, got %v", problems)
	}
}

func TestSubmitValidationError(t *testing.T) {
	checkout, _ := newReadyCheckout(t)

	_, err := checkout.Submit(context.Background())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if checkout.State() != StateBuilding {
		t.Errorf("state = %v, want Building after failed validation", checkout.State())
	}
}

func TestSubmitAndCloseSummary(t *testing.T) {
	checkout, products := newReadyCheckout(t)
	soap := findProduct(t, products, "Soap")
	ctx := context.Background()

	if err := checkout.AddToCart(soap.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := checkout.UpdateQuantity(soap.ID, 3); err != nil {
		t.Fatalf("qty: %v", err)
	}
	checkout.Customer = CustomerForm{Name: "Rita", Phone: "9876543210", Address: "2 Park Ln"}
	checkout.SetPaymentStatus("Paid")

	sale, err := checkout.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if checkout.State() != StateSummaryShown {
		t.Errorf("state = %v, want SummaryShown", checkout.State())
	}
	if sale.TotalAmount != 75.00 {
		t.Errorf("TotalAmount = %v, want 75", sale.TotalAmount)
	}
	if sale.AmountDue != 0 {
		t.Errorf("AmountDue = %v, want 0", sale.AmountDue)
	}
	if checkout.LastSale() == nil {
		t.Error("LastSale should be set while the summary is shown")
	}

	// Locked while the summary is up
	if err := checkout.AddToCart(soap.ID); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy while summary shown, got %v", err)
	}

	if err := checkout.CloseSummary(ctx); err != nil {
		t.Fatalf("CloseSummary: %v", err)
	}
	if checkout.State() != StateBuilding {
		t.Errorf("state = %v, want Building after close", checkout.State())
	}
	if len(checkout.Cart()) != 0 || checkout.Customer.Name != "" {
		t.Error("checkout should reset for the next customer")
	}

	// Catalog refreshed with the decremented stock
	refreshed := findProduct(t, checkout.Products(), "Soap")
	if refreshed.Stock != 7 {
		t.Errorf("refreshed stock = %d, want 7", refreshed.Stock)
	}
}
