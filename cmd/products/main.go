package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ProductAPI/internal/config"
	"ProductAPI/internal/products"
	"ProductAPI/pkg/kit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	log, err := kit.NewLogger(cfg.Service, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &products.Server{
		Store:        products.NewStore(),
		Log:          log,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	h := products.NewHandler(s, products.HTTPDeps{
		Log:            log,
		Service:        cfg.Service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := kit.RunHTTPServer(ctx, srv, cfg.ShutdownTimeout, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
	log.Info("http server stopped")
}
