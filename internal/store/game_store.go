package store

import (
	"context"
	"fmt"

	"storefront/internal/models"
)

type GameStore struct {
	db DB
}

type GameWithPublisher struct {
	GID            int64   `db:"gid"`
	Name           string  `db:"name"`
	Description    *string `db:"description"`
	Price          int64   `db:"price"`
	Publisher      *int64  `db:"publisher"`
	PublisherEmail *string `db:"publisher_email"`
	Status         string  `db:"status"`
}

func NewGameStore(db DB) *GameStore {
	return &GameStore{db: db}
}

type GameInput struct {
	Name        string
	Description *string
	Price       int64
	Publisher   *int64
	Status      string
}

func (s *GameStore) Create(ctx context.Context, input GameInput) (models.Game, error) {
	var row models.Game
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO games (name, description, price, publisher, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING gid, name, description, price, publisher, status
	`, input.Name, input.Description, input.Price, input.Publisher, input.Status)
	return row, err
}

func (s *GameStore) GetByID(ctx context.Context, gid int64) (models.Game, error) {
	var row models.Game
	err := s.db.GetContext(ctx, &row, `
		SELECT gid, name, description, price, publisher, status
		FROM games
		WHERE gid = $1
	`, gid)
	return row, err
}

// GetForShare reads the game inside the purchase transaction with a
// share lock, so a publisher's in-flight price or status edit cannot be
// half-observed by the purchase.
func (s *GameStore) GetForShare(ctx context.Context, tx Getter, gid int64) (models.Game, error) {
	var row models.Game
	err := tx.GetContext(ctx, &row, `
		SELECT gid, name, description, price, publisher, status
		FROM games
		WHERE gid = $1
		FOR SHARE
	`, gid)
	return row, err
}

func (s *GameStore) List(ctx context.Context) ([]GameWithPublisher, error) {
	var rows []GameWithPublisher
	err := s.db.SelectContext(ctx, &rows, `
		SELECT g.gid, g.name, g.description, g.price, g.publisher,
		       u.email AS publisher_email, g.status
		FROM games g
		LEFT JOIN users u ON u.uid = g.publisher
		ORDER BY g.gid
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type GameUpdateInput struct {
	Name        *string
	Description *string
	Price       *int64
	Status      *string
}

func (s *GameStore) Update(ctx context.Context, gid int64, input GameUpdateInput) (models.Game, error) {
	setParts, args := buildSet(map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"status":      input.Status,
	})
	args = append(args, gid)
	var row models.Game
	query := `UPDATE games SET ` + setParts + ` WHERE gid = $` + itoa(len(args)) + `
		RETURNING gid, name, description, price, publisher, status`
	err := s.db.GetContext(ctx, &row, query, args...)
	return row, err
}

// Delete removes a game and, via cascade, all purchases of it.
func (s *GameStore) Delete(ctx context.Context, gid int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE gid = $1`, gid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func itoa(value int) string {
	return fmt.Sprintf("%d", value)
}

// buildSet assembles a SET clause from the non-nil fields, in a stable
// column order. Callers must ensure at least one field is set.
func buildSet(fields map[string]any) (string, []any) {
	ordered := []string{"name", "description", "price", "status", "email", "passwd", "is_publisher", "is_admin"}
	clause := ""
	var args []any
	for _, column := range ordered {
		value, ok := deref(fields[column])
		if !ok {
			continue
		}
		if clause != "" {
			clause += ", "
		}
		args = append(args, value)
		clause += column + " = $" + itoa(len(args))
	}
	return clause, args
}

func deref(value any) (any, bool) {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *int64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *bool:
		if v == nil {
			return nil, false
		}
		return *v, true
	default:
		return nil, false
	}
}
