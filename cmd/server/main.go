package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"adminConsole/internal/config"
	addresses "adminConsole/internal/modules/addresses/domain"
	categories "adminConsole/internal/modules/categories/domain"
	"adminConsole/internal/modules/console/application/handler"
	"adminConsole/internal/modules/console/application/port"
	"adminConsole/internal/modules/console/application/usecase"
	"adminConsole/internal/modules/console/domain"
	"adminConsole/internal/modules/console/infrastructure"
	transport "adminConsole/internal/modules/console/interface"
	orders "adminConsole/internal/modules/orders/domain"
	products "adminConsole/internal/modules/products/domain"
	users "adminConsole/internal/modules/users/domain"
	vendors "adminConsole/internal/modules/vendors/domain"
	"adminConsole/internal/platform/broker"
	"adminConsole/internal/shared/auth"
	"adminConsole/internal/shared/logging"
)

func main() {
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, _, err := logging.Open(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.Topics))

	validator, err := auth.NewJWTValidatorWithPublicKey(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		slog.Error("jwt validator setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	hub := infrastructure.NewHub()
	bus := infrastructure.NewHandlerRegistry()
	gateway := infrastructure.NewRESTGateway(cfg.REST.BaseURL, cfg.REST.Timeout, nil)
	analyticsFetcher := infrastructure.NewAnalyticsHTTPClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)

	// Use cases
	broadcastUC := usecase.NewBroadcastUseCase(hub)
	dashboardUC := usecase.NewDashboardUseCase(analyticsFetcher)
	registry := usecase.NewRegistry()
	categoryOptions := domain.NewOptionSet()

	pageSize := cfg.Console.PageSize
	categoryBinding := bind(registry, categories.Descriptor(), pageSize, gateway, bus)
	bind(registry, products.Descriptor(), pageSize, gateway, bus).WithOptions(categoryOptions)
	bind(registry, orders.Descriptor(), pageSize, gateway, bus)
	bind(registry, vendors.Descriptor(), pageSize, gateway, bus)
	bind(registry, users.Descriptor(), pageSize, gateway, bus)
	bind(registry, addresses.Descriptor(), pageSize, gateway, bus)

	categorySource := port.CategorySourceFunc(func(context.Context) ([]domain.Option, error) {
		return categories.ActiveOptions(categoryBinding.Actions().Container().All()), nil
	})
	bus.Register(handler.NewCategoryOptionsRefresher(categorySource, categoryOptions))

	for _, entity := range registry.Entities() {
		console, _ := registry.Lookup(entity)
		bus.Register(handler.NewChangeForwarder(entity, broadcastUC))
		bus.Register(handler.NewDashboardInvalidator(entity, dashboardUC))
		broadcastUC.WatchState(console)
		for _, topic := range cfg.Kafka.Topics[entity] {
			bus.Register(handler.NewEntityStreamHandler(topic, cfg.Kafka.AllowedActions, console, cfg.Security.ServiceToken))
		}
	}
	registry.OnReset(categoryOptions.Reset)
	registry.OnReset(dashboardUC.Reset)

	if cfg.Console.SeedSamples {
		seeded := registry.SeedAll()
		categoryOptions.Replace(categories.ActiveOptions(categoryBinding.Actions().Container().All()), time.Now())
		slog.Info("console seeded with samples", slog.Any("entities", seeded))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, bus, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.KafkaTopics())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	transport.Register(e, transport.Dependencies{
		Registry:   registry,
		Dashboard:  dashboardUC,
		Broadcast:  broadcastUC,
		Hub:        hub,
		Exporter:   infrastructure.NewXLSXExporter(),
		Validator:  validator,
		AdminRoles: cfg.Security.AdminRoles,
		SendBuffer: cfg.Websocket.SendBuffer,
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", slog.Any("error", err))
	}
}

func bind[T domain.Entity](registry *usecase.Registry, desc domain.Descriptor[T], pageSize int, gateway port.Gateway, events port.EventPublisher) *usecase.Binding[T] {
	binding := usecase.NewBinding(usecase.NewEntityActions(domain.NewContainer(desc, pageSize), gateway, events))
	registry.Register(binding)
	return binding
}
