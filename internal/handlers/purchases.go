package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/services"
	"storefront/internal/store"

	"github.com/lib/pq"
)

type createPurchaseRequest struct {
	UserID int64 `json:"user_id"`
	GameID int64 `json:"game_id"`
}

func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID <= 0 || req.GameID <= 0 {
		respondError(w, http.StatusBadRequest, "user_id and game_id are required")
		return
	}
	purchase, err := h.purchaseService.Purchase(r.Context(), req.UserID, req.GameID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGameNotFound):
			respondError(w, http.StatusNotFound, "game not found")
		case errors.Is(err, services.ErrWalletNotFound):
			respondError(w, http.StatusNotFound, "buyer wallet not found")
		case errors.Is(err, services.ErrNotPurchasable):
			respondError(w, http.StatusBadRequest, "game_not_purchasable")
		case errors.Is(err, services.ErrInsufficientFunds):
			respondError(w, http.StatusBadRequest, "insufficient_funds")
		case errors.Is(err, services.ErrAlreadyOwned):
			respondError(w, http.StatusConflict, "already_owned")
		case errors.Is(err, services.ErrSelfPurchase):
			respondError(w, http.StatusBadRequest, "self_purchase_forbidden")
		default:
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && (pqErr.Code == "23503" || pqErr.Code == "23505") {
				respondError(w, http.StatusConflict, "constraint_violation")
				return
			}
			respondError(w, http.StatusInternalServerError, "purchase_failed")
		}
		return
	}
	respondJSON(w, http.StatusCreated, purchase)
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(r, "user_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	gameID, ok := queryID(r, "game_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid game_id")
		return
	}
	purchases, err := h.purchases.List(r.Context(), userID, gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load purchases")
		return
	}
	if purchases == nil {
		purchases = []store.PurchaseWithNames{}
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	pid, ok := pathID(r, "pid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid pid")
		return
	}
	purchase, err := h.purchases.GetByID(r.Context(), pid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "purchase not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load purchase")
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}

type addPlaytimeRequest struct {
	Hours int64 `json:"hours"`
}

func (h *Handler) AddPlaytime(w http.ResponseWriter, r *http.Request) {
	pid, ok := pathID(r, "pid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid pid")
		return
	}
	var req addPlaytimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.purchaseService.AddPlaytime(r.Context(), pid, req.Hours); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidHours):
			respondError(w, http.StatusBadRequest, "invalid_hours")
		case errors.Is(err, services.ErrPurchaseNotFound):
			respondError(w, http.StatusNotFound, "purchase not found")
		default:
			respondError(w, http.StatusInternalServerError, "unable to update playtime")
		}
		return
	}
	purchase, err := h.purchases.GetByID(r.Context(), pid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load purchase")
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}
