package handlers

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg             config.Config
	txRunner        db.TxRunner
	users           UserStore
	wallets         WalletStore
	games           GameStore
	purchases       PurchaseStore
	ledger          LedgerStore
	purchaseService PurchaseService
	walletService   WalletService
	hub             *websocket.Hub
}

func New(cfg config.Config, txRunner db.TxRunner, users UserStore, wallets WalletStore, games GameStore, purchases PurchaseStore, ledger LedgerStore, purchaseService PurchaseService, walletService WalletService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:             cfg,
		txRunner:        txRunner,
		users:           users,
		wallets:         wallets,
		games:           games,
		purchases:       purchases,
		ledger:          ledger,
		purchaseService: purchaseService,
		walletService:   walletService,
		hub:             hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{uid}", h.GetUser)
		r.Put("/{uid}", h.UpdateUser)
		r.Delete("/{uid}", h.DeleteUser)
	})

	router.Route("/wallets", func(r chi.Router) {
		r.Get("/{uid}", h.GetWallet)
		r.Get("/{uid}/entries", h.ListWalletEntries)
		r.Post("/{uid}/credit", h.CreditWallet)
		r.Post("/{uid}/debit", h.DebitWallet)
	})

	router.Route("/games", func(r chi.Router) {
		r.Post("/", h.CreateGame)
		r.Get("/", h.ListGames)
		r.Get("/{gid}", h.GetGame)
		r.Put("/{gid}", h.UpdateGame)
		r.Delete("/{gid}", h.DeleteGame)
	})

	router.Route("/purchases", func(r chi.Router) {
		r.Post("/", h.CreatePurchase)
		r.Get("/", h.ListPurchases)
		r.Get("/{pid}", h.GetPurchase)
		r.Put("/{pid}/playtime", h.AddPlaytime)
	})

	router.Get("/ws/wallets", h.WSWallets)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
