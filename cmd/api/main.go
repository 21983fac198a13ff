package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/haianhng/cafepos-backend/api/routes"
	"github.com/haianhng/cafepos-backend/internal/auth"
	"github.com/haianhng/cafepos-backend/internal/customers"
	"github.com/haianhng/cafepos-backend/internal/inventory"
	"github.com/haianhng/cafepos-backend/internal/invoices"
	"github.com/haianhng/cafepos-backend/internal/layout"
	"github.com/haianhng/cafepos-backend/internal/menu"
	"github.com/haianhng/cafepos-backend/internal/orders"
	"github.com/haianhng/cafepos-backend/internal/reports"
	"github.com/haianhng/cafepos-backend/internal/reservations"
	"github.com/haianhng/cafepos-backend/internal/staff"
	"github.com/haianhng/cafepos-backend/internal/users"
	"github.com/haianhng/cafepos-backend/pkg/auth/session"
	"github.com/haianhng/cafepos-backend/pkg/config"
	"github.com/haianhng/cafepos-backend/pkg/db"
	"github.com/haianhng/cafepos-backend/pkg/logger"
	"github.com/haianhng/cafepos-backend/pkg/metrics"
	"github.com/haianhng/cafepos-backend/pkg/migrate"
	"github.com/haianhng/cafepos-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, dbClient, sessionManager, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, registry, svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func buildServices(
	cfg *config.Config,
	dbClient *db.Client,
	sessionManager *session.Manager,
	redisClient *redis.Client,
) (routes.Services, error) {
	gdb := dbClient.DB()

	authService, err := auth.NewService(
		auth.NewRepository(gdb), sessionManager, redisClient, cfg.JWT, cfg.AuthRateLimit)
	if err != nil {
		return routes.Services{}, err
	}
	userService, err := users.NewService(users.NewRepository(gdb), cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}
	menuService, err := menu.NewService(menu.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}
	layoutService, err := layout.NewService(layout.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	orderService, err := orders.NewService(orders.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	invoiceService, err := invoices.NewService(
		invoices.NewRepository(gdb), dbClient, invoices.NewPDFRenderer(cfg.Receipt))
	if err != nil {
		return routes.Services{}, err
	}
	reportService, err := reports.NewService(reports.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}
	staffService, err := staff.NewService(staff.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	inventoryService, err := inventory.NewService(inventory.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	customerService, err := customers.NewService(customers.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	reservationService, err := reservations.NewService(reservations.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:         authService,
		Users:        userService,
		Menu:         menuService,
		Layout:       layoutService,
		Orders:       orderService,
		Invoices:     invoiceService,
		Reports:      reportService,
		Staff:        staffService,
		Inventory:    inventoryService,
		Customers:    customerService,
		Reservations: reservationService,
	}, nil
}
