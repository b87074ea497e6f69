// Command pos is a small terminal front end for the POS API. It drives the
// same checkout flow the browser client uses.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vivahgalaxy/pos-api/internal/pos"
	"github.com/vivahgalaxy/pos-api/pkg/client"
)

func main() {
	baseURL := flag.String("server", "http://localhost:5000", "POS API base URL")
	flag.Parse()

	api := client.New(*baseURL)
	ctx := context.Background()

	if err := api.Health(ctx); err != nil {
		log.Fatalf("Cannot reach server at %s: %v", *baseURL, err)
	}

	checkout := pos.NewCheckout(api)
	if err := checkout.RefreshProducts(ctx); err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}

	fmt.Println("POS terminal. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			return
		}
		if err := run(ctx, checkout, api, cmd, args); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func run(ctx context.Context, checkout *pos.Checkout, api *client.Client, cmd string, args []string) error {
	switch cmd {
	case "help":
		printHelp()
	case "products":
		for i, p := range checkout.Products() {
			fmt.Printf("%2d. %-30s %8.2f  stock %d\n", i+1, p.Name, p.Price, p.Stock)
		}
	case "add":
		product, err := pickProduct(checkout, args)
		if err != nil {
			return err
		}
		return checkout.AddToCart(product.ID)
	case "qty":
		if len(args) < 2 {
			return errors.New("usage: qty <product#> <quantity>")
		}
		product, err := pickProduct(checkout, args[:1])
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.New("quantity must be a number")
		}
		return checkout.UpdateQuantity(product.ID, quantity)
	case "cart":
		for _, line := range checkout.Cart() {
			fmt.Printf("%-30s x%-3d %8.2f\n", line.Product.Name, line.Quantity,
				line.Product.Price*float64(line.Quantity))
		}
		fmt.Printf("total: %.2f\n", checkout.Total())
	case "name":
		checkout.Customer.Name = strings.Join(args, " ")
	case "phone":
		if len(args) != 1 {
			return errors.New("usage: phone <10 digits>")
		}
		checkout.Customer.Phone = args[0]
	case "address":
		checkout.Customer.Address = strings.Join(args, " ")
	case "status":
		if len(args) != 1 {
			return errors.New("usage: status Paid|Partial|Unpaid")
		}
		checkout.SetPaymentStatus(args[0])
	case "paid":
		if len(args) != 1 {
			return errors.New("usage: paid <amount>")
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return errors.New("amount must be a number")
		}
		checkout.AmountPaid = amount
	case "checkout":
		sale, err := checkout.Submit(ctx)
		if err != nil {
			var vErr *pos.ValidationError
			if errors.As(err, &vErr) {
				for field, problem := range vErr.Problems {
					fmt.Printf("  %s: %s\n", field, problem)
				}
				return errors.New("fix the problems above and retry")
			}
			return err
		}
		printSummary(sale)
		return checkout.CloseSummary(ctx)
	case "dashboard":
		stats, err := api.GetDashboardStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("sales today: %.2f over %d orders, %d customers\n",
			stats.TotalSalesToday, stats.TotalOrdersToday, stats.TotalCustomers)
		for _, p := range stats.LowStockProducts {
			fmt.Printf("  low stock: %s (%d)\n", p.Name, p.Stock)
		}
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return nil
}

func pickProduct(checkout *pos.Checkout, args []string) (*client.Product, error) {
	if len(args) < 1 {
		return nil, errors.New("missing product number")
	}
	index, err := strconv.Atoi(args[0])
	products := checkout.Products()
	if err != nil || index < 1 || index > len(products) {
		return nil, errors.New("invalid product number, see 'products'")
	}
	return &products[index-1], nil
}

func printSummary(sale *client.Sale) {
	fmt.Printf("\n%s  %s\n", sale.InvoiceNo, sale.CreatedAt.Format(time.RFC822))
	if sale.Customer != nil {
		fmt.Printf("customer: %s (%s)\n", sale.Customer.Name, sale.Customer.Phone)
	}
	for _, item := range sale.Items {
		fmt.Printf("  %-30s x%-3d %8.2f\n", item.Name, item.Quantity,
			item.Price*float64(item.Quantity))
	}
	fmt.Printf("total %.2f, paid %.2f, due %.2f [%s]\n\n",
		sale.TotalAmount, sale.AmountPaid, sale.AmountDue, sale.PaymentStatus)
}

func printHelp() {
	fmt.Println(`commands:
  products            list the catalog
  add <n>             add product n to the cart
  qty <n> <q>         set quantity for product n (0 removes)
  cart                show the cart
  name <text>         set customer name
  phone <digits>      set customer phone (10 digits)
  address <text>      set customer address
  status <s>          Paid, Partial or Unpaid
  paid <amount>       set amount paid (Partial only)
  checkout            submit the sale
  dashboard           show today's stats
  quit                exit`)
}
