package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/money"
	"storefront/internal/services"
	"storefront/internal/websocket"
)

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "uid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	balance, err := h.walletService.GetBalance(r.Context(), uid)
	if err != nil {
		if errors.Is(err, services.ErrWalletNotFound) {
			respondError(w, http.StatusNotFound, "wallet not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load wallet")
		return
	}
	ledgerSum, err := h.ledger.SumByWallet(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load wallet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"uid":        uid,
		"balance":    balance,
		"formatted":  money.FormatMinor(balance),
		"ledger_sum": ledgerSum,
	})
}

func (h *Handler) ListWalletEntries(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "uid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	query := r.URL.Query()
	page := parseInt(query.Get("page"), 1)
	limit := parseInt(query.Get("limit"), 20)
	entries, err := h.ledger.ListByWallet(r.Context(), uid, limit, (page-1)*limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load wallet entries")
		return
	}
	if entries == nil {
		entries = []models.WalletEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

type walletAmountRequest struct {
	Amount string `json:"amount"`
}

func (h *Handler) CreditWallet(w http.ResponseWriter, r *http.Request) {
	h.mutateWallet(w, r, h.walletService.Credit)
}

func (h *Handler) DebitWallet(w http.ResponseWriter, r *http.Request) {
	h.mutateWallet(w, r, h.walletService.Debit)
}

func (h *Handler) mutateWallet(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, uid, amount int64) (int64, error)) {
	uid, ok := pathID(r, "uid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	var req walletAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseMinor(req.Amount)
	if err != nil || amount <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	balance, err := op(r.Context(), uid, amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWalletNotFound):
			respondError(w, http.StatusNotFound, "wallet not found")
		case errors.Is(err, services.ErrInsufficientFunds):
			respondError(w, http.StatusBadRequest, "insufficient_funds")
		case errors.Is(err, services.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "invalid_amount")
		default:
			respondError(w, http.StatusInternalServerError, "wallet_update_failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"uid":       uid,
		"balance":   balance,
		"formatted": money.FormatMinor(balance),
	})
}

// WSWallets streams balance updates for the wallet named by ?uid=.
func (h *Handler) WSWallets(w http.ResponseWriter, r *http.Request) {
	uid, err := strconv.ParseInt(r.URL.Query().Get("uid"), 10, 64)
	if err != nil || uid <= 0 {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	websocket.ServeWS(w, r, h.hub, uid)
}
