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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	apihttp "github.com/rexbrahh/pool-resolver/api/http"
	"github.com/rexbrahh/pool-resolver/ledger"
	"github.com/rexbrahh/pool-resolver/pricing"
	"github.com/rexbrahh/pool-resolver/resolver"
	"github.com/rexbrahh/pool-resolver/tokenmeta"
)

func main() {
	logger := log.New(os.Stdout, "pool-resolver ", log.LstdFlags|log.Lshortfile)

	cfg, err := FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	meta := tokenmeta.NewStaticProvider()
	if cfg.TokensPath != "" {
		if err := tokenmeta.LoadTable(meta, cfg.TokensPath); err != nil {
			logger.Fatalf("load token table: %v", err)
		}
	}

	quotes := map[string]float64{"USDC": 1, "USDT": 1}
	if cfg.SolUSD > 0 {
		quotes["SOL"] = cfg.SolUSD
	}

	res := resolver.New(ledger.NewRPCReader(cfg.RPCEndpoint), meta, pricing.NewStaticPricer(quotes))
	server := apihttp.NewServer(res, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Println("shutdown signal received")
		cancel()
	}()

	apiServer := &http.Server{Addr: cfg.APIAddr, Handler: server.Handler()}
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}

	g, runCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Printf("API listening on %s", cfg.APIAddr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Printf("metrics listening on %s", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
		return apiServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("service run failed: %v", err)
	}
}
