package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/handlers"
	"storefront/internal/services"
	"storefront/internal/store"
	"storefront/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	wallets := store.NewWalletStore(database)
	games := store.NewGameStore(database)
	purchases := store.NewPurchaseStore(database)
	ledger := store.NewLedgerStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	purchaseService := services.NewPurchaseService(txRunner, games, wallets, purchases, ledger, hub)
	walletService := services.NewWalletService(txRunner, wallets, ledger, hub)

	handler := handlers.New(cfg, txRunner, users, wallets, games, purchases, ledger, purchaseService, walletService, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
