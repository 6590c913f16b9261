package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/config"
	"github.com/georgemunganga/kuber-inventory/internal/httpx"
	"github.com/georgemunganga/kuber-inventory/internal/kafka"
	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/modules/admin"
	"github.com/georgemunganga/kuber-inventory/internal/modules/auth"
	"github.com/georgemunganga/kuber-inventory/internal/modules/category"
	"github.com/georgemunganga/kuber-inventory/internal/modules/inventory"
	"github.com/georgemunganga/kuber-inventory/internal/modules/report"
	"github.com/georgemunganga/kuber-inventory/internal/postgres"
	"github.com/georgemunganga/kuber-inventory/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// stores groups the repositories for the selected driver.
type stores struct {
	admins     admin.Repository
	categories category.Repository
	products   inventory.Repository
	ledger     activity.Reader
}

func openStores(ctx context.Context, cfg config.Config) (stores, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("using in-memory store; data is lost on exit")
		ledger := activity.NewMemoryLog()
		return stores{
			admins:     admin.NewMemoryRepository(),
			categories: category.NewMemoryRepository(),
			products:   inventory.NewMemoryStore(ledger),
			ledger:     ledger,
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return stores{}, nil, err
	}
	log.Println("connected to postgres")
	return postgresStores(db), func() { db.Close() }, nil
}

func postgresStores(db *sql.DB) stores {
	return stores{
		admins:     admin.NewPostgresRepository(db),
		categories: category.NewPostgresRepository(db),
		products:   inventory.NewPostgresRepository(db),
		ledger:     activity.NewPostgresReader(db),
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStores()

	// ── Ledger event stream (optional) ──────────────────────
	var publisher activity.Publisher = activity.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.ActivityTopic, 1024)
		producer.Start()
		defer producer.WaitClosed()
		defer producer.Close()
		publisher = kafka.NewActivityPublisher(producer, cfg.ServiceName)
		log.Printf("publishing activity to %s on %v", cfg.ActivityTopic, cfg.KafkaBrokers)
	}

	// ── Login rate limiting (optional) ──────────────────────
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redisx.New(cfg.RedisAddr)
		defer rdb.Close()
	}
	loginLimiter := redisx.NewRateLimiter(rdb, "login", cfg.LoginRateLimit, time.Minute)

	// ── Services ────────────────────────────────────────────
	adminService := admin.NewService(st.admins)
	authService := auth.NewService(st.admins, []byte(cfg.JWTSecret), cfg.TokenTTL)
	inventoryService := inventory.NewService(st.products, publisher)
	categoryService := category.NewService(st.categories, st.products)
	reportService := report.NewService(st.products, categoryService, st.ledger)

	adminHandler := admin.NewHandler(adminService)
	authHandler := auth.NewHandler(authService)

	// ── Router ──────────────────────────────────────────────
	router := httpx.NewRouter()
	router.Route("/api", func(r chi.Router) {
		public := r.With(loginLimiter.Middleware)
		adminHandler.RegisterPublicRoutes(public)
		authHandler.RegisterPublicRoutes(public)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService))
			authHandler.RegisterRoutes(r)
			adminHandler.RegisterRoutes(r)
			category.NewHandler(categoryService).RegisterRoutes(r)
			inventory.NewHandler(inventoryService).RegisterRoutes(r)
			report.NewHandler(reportService).RegisterRoutes(r)
		})
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("inventory API starting on %s (store=%s)", cfg.HTTPAddr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
