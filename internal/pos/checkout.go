// Package pos implements the terminal-side checkout flow. A Checkout moves
// through building a cart, validating customer details, submitting the sale
// and showing the summary, then resets for the next customer.
package pos

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/pkg/client"
)

// State is the checkout lifecycle state
type State int

const (
	// StateBuilding is the default state, cart and customer form are editable
	StateBuilding State = iota
	// StateSubmitting means the sale is in flight, input is locked
	StateSubmitting
	// StateSummaryShown means the sale succeeded and the summary is visible
	StateSummaryShown
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "Building"
	case StateSubmitting:
		return "Submitting"
	case StateSummaryShown:
		return "SummaryShown"
	default:
		return "Unknown"
	}
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ErrBusy is returned when an action arrives while a submit is in flight
var ErrBusy = errors.New("checkout is submitting")

// CartLine is a product with its quantity in the cart
type CartLine struct {
	Product  client.Product
	Quantity int
}

// CustomerForm holds the customer details entered at checkout
type CustomerForm struct {
	Name    string
	Phone   string
	Address string
}

// Checkout drives a single point of sale terminal
type Checkout struct {
	api      *client.Client
	state    State
	products map[string]client.Product
	order    []string
	cart     []CartLine

	Customer      CustomerForm
	PaymentMethod string
	PaymentStatus string
	AmountPaid    float64

	lastSale *client.Sale
}

// NewCheckout creates a checkout backed by the given API client
func NewCheckout(api *client.Client) *Checkout {
	return &Checkout{
		api:           api,
		state:         StateBuilding,
		products:      make(map[string]client.Product),
		PaymentMethod: "Cash",
		PaymentStatus: "Paid",
	}
}

// State returns the current lifecycle state
func (co *Checkout) State() State {
	return co.state
}

// RefreshProducts reloads the product catalog from the server
func (co *Checkout) RefreshProducts(ctx context.Context) error {
	products, err := co.api.ListProducts(ctx, "", "")
	if err != nil {
		return err
	}
	co.products = make(map[string]client.Product, len(products))
	co.order = co.order[:0]
	for _, product := range products {
		co.products[product.ID] = product
		co.order = append(co.order, product.ID)
	}
	return nil
}

// Products returns the cached catalog in server order
func (co *Checkout) Products() []client.Product {
	products := make([]client.Product, 0, len(co.order))
	for _, id := range co.order {
		products = append(products, co.products[id])
	}
	return products
}

// Cart returns the current cart lines
func (co *Checkout) Cart() []CartLine {
	return co.cart
}

// AddToCart adds one unit of a product, capped at available stock
func (co *Checkout) AddToCart(productID string) error {
	if co.state != StateBuilding {
		return ErrBusy
	}
	product, ok := co.products[productID]
	if !ok {
		return fmt.Errorf("unknown product %s", productID)
	}

	for i := range co.cart {
		if co.cart[i].Product.ID == productID {
			if co.cart[i].Quantity+1 > product.Stock {
				return fmt.Errorf("only %d of %s in stock", product.Stock, product.Name)
			}
			co.cart[i].Quantity++
			return nil
		}
	}

	if product.Stock < 1 {
		return fmt.Errorf("%s is out of stock", product.Name)
	}
	co.cart = append(co.cart, CartLine{Product: product, Quantity: 1})
	return nil
}

// UpdateQuantity sets a cart line quantity. Zero removes the line.
func (co *Checkout) UpdateQuantity(productID string, quantity int) error {
	if co.state != StateBuilding {
		return ErrBusy
	}
	if quantity < 0 {
		return errors.New("quantity cannot be negative")
	}

	for i := range co.cart {
		if co.cart[i].Product.ID != productID {
			continue
		}
		if quantity == 0 {
			co.cart = append(co.cart[:i], co.cart[i+1:]...)
			return nil
		}
		if quantity > co.cart[i].Product.Stock {
			return fmt.Errorf("only %d of %s in stock", co.cart[i].Product.Stock, co.cart[i].Product.Name)
		}
		co.cart[i].Quantity = quantity
		return nil
	}
	return fmt.Errorf("product %s is not in the cart", productID)
}

// RemoveFromCart drops a product from the cart
func (co *Checkout) RemoveFromCart(productID string) error {
	return co.UpdateQuantity(productID, 0)
}

// Total returns the cart total rounded to cents
func (co *Checkout) Total() float64 {
	var total float64
	for _, line := range co.cart {
		total += line.Product.Price * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}

// SetPaymentStatus sets the payment status and syncs the paid amount.
// Paid locks it to the total, Unpaid to zero, Partial keeps manual entry.
func (co *Checkout) SetPaymentStatus(status string) {
	co.PaymentStatus = status
	switch status {
	case "Paid":
		co.AmountPaid = co.Total()
	case "Unpaid":
		co.AmountPaid = 0
	}
}

// Validate checks the form and cart, returning field keyed messages
func (co *Checkout) Validate() map[string]string {
	problems := make(map[string]string)

	if len(co.cart) == 0 {
		problems["cart"] = "Cart is empty"
	}
	if co.Customer.Name == "" {
		problems["name"] = "Customer name is required"
	}
	if !phonePattern.MatchString(co.Customer.Phone) {
		problems["phone"] = "Phone must be a 10 digit number"
	}
	if co.Customer.Address == "" {
		problems["address"] = "Address is required"
	}
	if co.AmountPaid < 0 || co.AmountPaid > co.Total() {
		problems["amountPaid"] = "Amount paid must be between 0 and the total"
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ValidationError wraps field problems found before submitting
type ValidationError struct {
	Problems map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed: %d problem(s)", len(e.Problems))
}

// Submit validates and submits the sale. On success the checkout moves to
// the summary state; the caller resets it with CloseSummary.
func (co *Checkout) Submit(ctx context.Context) (*client.Sale, error) {
	if co.state != StateBuilding {
		return nil, ErrBusy
	}
	// Keep the paid amount in sync when the cart changed after the
	// status was picked
	co.SetPaymentStatus(co.PaymentStatus)
	if problems := co.Validate(); problems != nil {
		return nil, &ValidationError{Problems: problems}
	}

	items := make([]client.SaleItemRequest, 0, len(co.cart))
	for _, line := range co.cart {
		items = append(items, client.SaleItemRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}

	co.state = StateSubmitting
	sale, err := co.api.CreateSale(ctx, client.CreateSaleRequest{
		Cart:            items,
		TotalAmount:     co.Total(),
		AmountPaid:      co.AmountPaid,
		PaymentMethod:   co.PaymentMethod,
		PaymentStatus:   co.PaymentStatus,
		CustomerName:    co.Customer.Name,
		CustomerPhone:   co.Customer.Phone,
		CustomerAddress: co.Customer.Address,
	}, uuid.New().String())
	if err != nil {
		co.state = StateBuilding
		return nil, err
	}

	co.lastSale = sale
	co.state = StateSummaryShown
	return sale, nil
}

// LastSale returns the sale shown in the summary, if any
func (co *Checkout) LastSale() *client.Sale {
	return co.lastSale
}

// CloseSummary resets the checkout for the next customer and refreshes
// the catalog so stock levels are current.
func (co *Checkout) CloseSummary(ctx context.Context) error {
	if co.state != StateSummaryShown {
		return errors.New("no summary to close")
	}

	co.cart = nil
	co.Customer = CustomerForm{}
	co.PaymentMethod = "Cash"
	co.PaymentStatus = "Paid"
	co.AmountPaid = 0
	co.lastSale = nil
	co.state = StateBuilding

	return co.RefreshProducts(ctx)
}
