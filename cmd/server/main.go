package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/joao-fontenele/supplychain/internal/events"
	"github.com/joao-fontenele/supplychain/internal/items"
	"github.com/joao-fontenele/supplychain/internal/messaging"
	"github.com/joao-fontenele/supplychain/internal/notify"
	"github.com/joao-fontenele/supplychain/internal/orders"
	"github.com/joao-fontenele/supplychain/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "supplychain", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("supplychain", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(10 * time.Second)); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var producer *messaging.Producer
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer = messaging.NewProducer(brokers, "inventory.changed")
		defer func() { _ = producer.Close() }()
	}

	hub := notify.NewHub()

	itemRepo := items.NewPostgresRepository(db)
	var itemService *items.Service
	if producer != nil {
		itemService = items.NewService(itemRepo, hub, producer, logger)
	} else {
		itemService = items.NewService(itemRepo, hub, nil, logger)
	}
	itemHandler := items.NewHandler(itemService, logger)

	orderRepo := orders.NewPostgresRepository(db)
	orderService := orders.NewService(orderRepo)
	orderHandler := orders.NewHandler(orderService, logger)

	eventsHandler := events.NewHandler(hub, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", telemetry.WithHTTPRoute(itemHandler.HandleList))
	mux.HandleFunc("POST /api/items", telemetry.WithHTTPRoute(itemHandler.HandleCreate))
	mux.HandleFunc("GET /api/items/search", telemetry.WithHTTPRoute(itemHandler.HandleSearch))
	mux.HandleFunc("GET /api/items/low-stock", telemetry.WithHTTPRoute(itemHandler.HandleLowStock))
	mux.HandleFunc("GET /api/items/out-of-stock", telemetry.WithHTTPRoute(itemHandler.HandleOutOfStock))
	mux.HandleFunc("GET /api/items/stock-overview", telemetry.WithHTTPRoute(itemHandler.HandleStockOverview))
	mux.HandleFunc("GET /api/items/{id}", telemetry.WithHTTPRoute(itemHandler.HandleGet))
	mux.HandleFunc("PUT /api/items/{id}", telemetry.WithHTTPRoute(itemHandler.HandleUpdate))
	mux.HandleFunc("PATCH /api/items/{id}/quantity", telemetry.WithHTTPRoute(itemHandler.HandleUpdateQuantity))
	mux.HandleFunc("DELETE /api/items/{id}", telemetry.WithHTTPRoute(itemHandler.HandleDelete))
	mux.HandleFunc("GET /api/orders", telemetry.WithHTTPRoute(orderHandler.HandleList))
	mux.HandleFunc("POST /api/orders", telemetry.WithHTTPRoute(orderHandler.HandleCreate))
	mux.HandleFunc("GET /api/orders/count", telemetry.WithHTTPRoute(orderHandler.HandleCount))
	mux.HandleFunc("GET /api/orders/{id}", telemetry.WithHTTPRoute(orderHandler.HandleGet))
	mux.HandleFunc("PUT /api/orders/{id}", telemetry.WithHTTPRoute(orderHandler.HandleUpdate))
	mux.HandleFunc("DELETE /api/orders/{id}", telemetry.WithHTTPRoute(orderHandler.HandleDelete))
	mux.HandleFunc("GET /api/dashboard/summary", telemetry.WithHTTPRoute(orderHandler.HandleDashboard))
	mux.HandleFunc("GET /api/events", eventsHandler.HandleStream)
	mux.Handle("GET /metrics", metricsHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "supplychain",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout: 10 * time.Second,
		// No write timeout: /api/events holds streaming responses open.
		WriteTimeout: 0,
	}

	go func() {
		logger.Info("starting supplychain service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
