package store

import (
	"context"

	"storefront/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a user inside the caller's transaction and returns the
// generated uid, so the wallet row can be created in the same atomic unit.
func (s *UserStore) Create(ctx context.Context, tx Getter, email *string, passwd string, isPublisher, isAdmin bool) (int64, error) {
	var uid int64
	err := tx.GetContext(ctx, &uid, `
		INSERT INTO users (email, passwd, is_publisher, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING uid
	`, email, passwd, isPublisher, isAdmin)
	return uid, err
}

func (s *UserStore) GetByID(ctx context.Context, uid int64) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT uid, email, passwd, is_publisher, is_admin, created_at
		FROM users
		WHERE uid = $1
	`, uid)
	return row, err
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	err := s.db.SelectContext(ctx, &rows, `
		SELECT uid, email, passwd, is_publisher, is_admin, created_at
		FROM users
		ORDER BY uid
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type UserUpdateInput struct {
	Email       *string
	Passwd      *string
	IsPublisher *bool
	IsAdmin     *bool
}

func (s *UserStore) Update(ctx context.Context, uid int64, input UserUpdateInput) (models.User, error) {
	setParts, args := buildSet(map[string]any{
		"email":        input.Email,
		"passwd":       input.Passwd,
		"is_publisher": input.IsPublisher,
		"is_admin":     input.IsAdmin,
	})
	args = append(args, uid)
	var row models.User
	query := `UPDATE users SET ` + setParts + ` WHERE uid = $` + itoa(len(args)) + `
		RETURNING uid, email, passwd, is_publisher, is_admin, created_at`
	err := s.db.GetContext(ctx, &row, query, args...)
	return row, err
}

// Delete removes a user; the wallet, published games and purchases go
// with it via FK cascades.
func (s *UserStore) Delete(ctx context.Context, uid int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
