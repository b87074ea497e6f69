package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vivahgalaxy/pos-api/internal/application/service"
	"github.com/vivahgalaxy/pos-api/internal/config"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/internal/infrastructure/database"
	infraRepo "github.com/vivahgalaxy/pos-api/internal/infrastructure/repository"
	"github.com/vivahgalaxy/pos-api/internal/infrastructure/repository/memory"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/handler"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/routes"
)

type repositories struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	customers   repository.CustomerRepository
	sales       repository.SaleRepository
	returns     repository.ReturnRepository
	stats       repository.StatsRepository
	idempotency repository.IdempotencyRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	productService := service.NewProductService(repos.products)
	categoryService := service.NewCategoryService(repos.categories)
	customerService := service.NewCustomerService(repos.customers)
	saleService := service.NewSaleService(repos.sales, repos.products, repos.customers)
	returnService := service.NewReturnService(repos.returns, repos.sales, repos.products)
	dashboardService := service.NewDashboardService(repos.stats, repos.customers, repos.products).
		WithLowStockThreshold(cfg.LowStockThreshold)

	router := routes.Setup(cfg, routes.Handlers{
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Category:  handler.NewCategoryHandler(categoryService),
		Sale:      handler.NewSaleHandler(saleService),
		Return:    handler.NewReturnHandler(returnService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}, repos.idempotency)

	go cleanupIdempotencyKeys(repos.idempotency)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.UseMemoryStore() {
		log.Println("DB_HOST not set, using in-memory store")
		store := memory.NewStore()
		return &repositories{
			products:    store.Products(),
			categories:  store.Categories(),
			customers:   store.Customers(),
			sales:       store.Sales(),
			returns:     store.Returns(),
			stats:       store.Stats(),
			idempotency: store.Idempotency(),
		}, nil
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	return &repositories{
		products:    infraRepo.NewProductRepository(db),
		categories:  infraRepo.NewCategoryRepository(db),
		customers:   infraRepo.NewCustomerRepository(db),
		sales:       infraRepo.NewSaleRepository(db),
		returns:     infraRepo.NewReturnRepository(db),
		stats:       infraRepo.NewStatsRepository(db),
		idempotency: infraRepo.NewIdempotencyRepository(db),
	}, nil
}

func cleanupIdempotencyKeys(repo repository.IdempotencyRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := repo.DeleteExpired(context.Background()); err != nil {
			log.Printf("Failed to clean expired idempotency keys: %v", err)
		}
	}
}
