package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mobile-pos/internal/config"
	"mobile-pos/internal/db"
	"mobile-pos/internal/httpserver"
	"mobile-pos/internal/migrate"
	productrepo "mobile-pos/internal/repository/product"
	txrepo "mobile-pos/internal/repository/transaction"
	"mobile-pos/internal/seed"
	catalogsvc "mobile-pos/internal/service/catalog"
	purchasesvc "mobile-pos/internal/service/purchase"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	// Schema and sample catalog are ensured at startup; both are idempotent.
	if err := migrate.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	if err := seed.Apply(ctx, dbpool); err != nil {
		logger.Fatalf("seed sample data: %v", err)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	transactionRepo := txrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	purchaseService := purchasesvc.New(transactionRepo, purchasesvc.Defaults{
		EmployeeCode: cfg.DefaultEmployeeCode,
		StoreCode:    cfg.DefaultStoreCode,
		POSNo:        cfg.DefaultPOSNo,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		PurchaseSvc: purchaseService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
