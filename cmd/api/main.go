package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tienditamejorada/tiendita-backend/api/routes"
	"github.com/tienditamejorada/tiendita-backend/internal/auth"
	"github.com/tienditamejorada/tiendita-backend/internal/dashboard"
	"github.com/tienditamejorada/tiendita-backend/internal/employees"
	"github.com/tienditamejorada/tiendita-backend/internal/products"
	"github.com/tienditamejorada/tiendita-backend/internal/sales"
	"github.com/tienditamejorada/tiendita-backend/internal/suppliers"
	"github.com/tienditamejorada/tiendita-backend/pkg/auth/session"
	"github.com/tienditamejorada/tiendita-backend/pkg/config"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/logger"
	"github.com/tienditamejorada/tiendita-backend/pkg/migrate"
	"github.com/tienditamejorada/tiendita-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	sessions := session.NewManager(dbClient, cfg.Session)

	authRepo := auth.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	employeeRepo := employees.NewRepository(dbClient.DB())
	supplierRepo := suppliers.NewRepository(dbClient.DB())
	saleRepo := sales.NewRepository(dbClient.DB())

	authService := auth.NewService(auth.ServiceParams{
		Users:    authRepo,
		Sessions: sessions,
	})
	registerService := auth.NewRegisterService(auth.RegisterServiceParams{
		Client:         dbClient,
		Repo:           authRepo,
		PasswordConfig: cfg.Password,
	})
	productService := products.NewService(productRepo)
	employeeService := employees.NewService(employees.ServiceParams{
		Client:         dbClient,
		Repo:           employeeRepo,
		Sessions:       sessions,
		PasswordConfig: cfg.Password,
	})
	supplierService := suppliers.NewService(supplierRepo)
	saleService := sales.NewService(sales.ServiceParams{
		Client:    dbClient,
		Sales:     saleRepo,
		Products:  productRepo,
		Employees: employeeRepo,
	})
	dashboardService := dashboard.NewService(dbClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessions,
			authService,
			registerService,
			productService,
			employeeService,
			supplierService,
			saleService,
			dashboardService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdown:
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
