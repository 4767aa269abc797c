package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/supplychain/internal/gateway"
	"github.com/joao-fontenele/supplychain/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "gateway", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	apiURL := os.Getenv("SUPPLYCHAIN_API_URL")
	if apiURL == "" {
		logger.Error("SUPPLYCHAIN_API_URL is required")
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	apiProxy := gateway.NewServiceProxy(apiURL, httpClient)
	handler := gateway.NewHandler(apiProxy, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("POST /api/items", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/items/search", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/items/low-stock", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/items/out-of-stock", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/items/stock-overview", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/items/{id}", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("PUT /api/items/{id}", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("PATCH /api/items/{id}/quantity", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("DELETE /api/items/{id}", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/orders", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("POST /api/orders", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/orders/count", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/orders/{id}", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("PUT /api/orders/{id}", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("DELETE /api/orders/{id}", telemetry.WithHTTPRoute(handler.HandleAPI))
	mux.HandleFunc("GET /api/dashboard/summary", telemetry.WithHTTPRoute(handler.HandleAPI))

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "gateway",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting gateway service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
