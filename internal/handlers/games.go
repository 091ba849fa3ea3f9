package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/store"
	"storefront/internal/validator"

	"github.com/lib/pq"
)

type createGameRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	Publisher   *int64  `json:"publisher"`
	Status      string  `json:"status"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateGameName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateStatus(req.Status); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	game, err := h.games.Create(r.Context(), store.GameInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Publisher:   req.Publisher,
		Status:      req.Status,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				respondError(w, http.StatusConflict, "game name already exists")
				return
			case "23503":
				respondError(w, http.StatusBadRequest, "publisher does not exist")
				return
			}
		}
		respondError(w, http.StatusInternalServerError, "unable to create game")
		return
	}
	respondJSON(w, http.StatusCreated, game)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load games")
		return
	}
	if games == nil {
		games = []store.GameWithPublisher{}
	}
	respondJSON(w, http.StatusOK, games)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gid, ok := pathID(r, "gid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid gid")
		return
	}
	game, err := h.games.GetByID(r.Context(), gid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load game")
		return
	}
	respondJSON(w, http.StatusOK, game)
}

type updateGameRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Status      *string `json:"status"`
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	gid, ok := pathID(r, "gid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid gid")
		return
	}
	var req updateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == nil && req.Description == nil && req.Price == nil && req.Status == nil {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if req.Name != nil {
		if err := validator.ValidateGameName(*req.Name); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Status != nil {
		if err := validator.ValidateStatus(*req.Status); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Price != nil && *req.Price < 0 {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	game, err := h.games.Update(r.Context(), gid, store.GameUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "game not found")
			return
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			respondError(w, http.StatusConflict, "game name already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update game")
		return
	}
	respondJSON(w, http.StatusOK, game)
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gid, ok := pathID(r, "gid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid gid")
		return
	}
	rows, err := h.games.Delete(r.Context(), gid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete game")
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "game deleted"})
}
