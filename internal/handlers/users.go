package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/validator"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type createUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsPublisher bool   `json:"is_publisher"`
	IsAdmin     bool   `json:"is_admin"`
}

// CreateUser registers an account and its zero-balance wallet in one
// transaction, so a user row can never exist without a wallet.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	passwordHash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	var uid int64
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		created, err := h.users.Create(r.Context(), tx, &req.Email, passwordHash, req.IsPublisher, req.IsAdmin)
		if err != nil {
			return err
		}
		uid = created
		return h.wallets.Create(r.Context(), tx, uid, 0)
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			respondError(w, http.StatusConflict, "email already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"uid":          uid,
		"email":        req.Email,
		"is_publisher": req.IsPublisher,
		"is_admin":     req.IsAdmin,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "uid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	user, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	IsPublisher *bool   `json:"is_publisher"`
	IsAdmin     *bool   `json:"is_admin"`
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "uid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == nil && req.Password == nil && req.IsPublisher == nil && req.IsAdmin == nil {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	input := store.UserUpdateInput{
		Email:       req.Email,
		IsPublisher: req.IsPublisher,
		IsAdmin:     req.IsAdmin,
	}
	if req.Email != nil {
		if err := validator.ValidateEmail(*req.Email); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Password != nil {
		if err := validator.ValidatePassword(*req.Password); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := auth.HashPassword(*req.Password, h.cfg.BcryptCost)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to secure password")
			return
		}
		input.Passwd = &hash
	}
	user, err := h.users.Update(r.Context(), uid, input)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			respondError(w, http.StatusConflict, "email already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "uid")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid uid")
		return
	}
	rows, err := h.users.Delete(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete user")
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
