package store

import (
	"context"
	"time"

	"storefront/internal/models"
)

type PurchaseStore struct {
	db DB
}

type PurchaseWithNames struct {
	PID         int64     `db:"pid"`
	GameID      int64     `db:"game_id"`
	GameName    string    `db:"game_name"`
	UserID      int64     `db:"user_id"`
	UserEmail   *string   `db:"user_email"`
	Date        time.Time `db:"date"`
	HoursPlayed int64     `db:"hours_played"`
}

func NewPurchaseStore(db DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

// Create inserts the purchase row inside the purchase transaction and
// returns it with the generated pid and timestamp.
func (s *PurchaseStore) Create(ctx context.Context, tx Getter, gameID, userID int64) (models.Purchase, error) {
	var row models.Purchase
	err := tx.GetContext(ctx, &row, `
		INSERT INTO purchases (game_id, user_id)
		VALUES ($1, $2)
		RETURNING pid, game_id, user_id, date, hours_played
	`, gameID, userID)
	return row, err
}

func (s *PurchaseStore) Exists(ctx context.Context, tx Getter, gameID, userID int64) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM purchases WHERE game_id = $1 AND user_id = $2
		)
	`, gameID, userID)
	return exists, err
}

func (s *PurchaseStore) GetByID(ctx context.Context, pid int64) (models.Purchase, error) {
	var row models.Purchase
	err := s.db.GetContext(ctx, &row, `
		SELECT pid, game_id, user_id, date, hours_played
		FROM purchases
		WHERE pid = $1
	`, pid)
	return row, err
}

func (s *PurchaseStore) List(ctx context.Context, userID, gameID *int64) ([]PurchaseWithNames, error) {
	query := `
		SELECT p.pid, p.game_id, g.name AS game_name, p.user_id,
		       u.email AS user_email, p.date, p.hours_played
		FROM purchases p
		JOIN games g ON g.gid = p.game_id
		JOIN users u ON u.uid = p.user_id
	`
	var args []any
	if userID != nil {
		args = append(args, *userID)
		query += ` WHERE p.user_id = $1`
		if gameID != nil {
			args = append(args, *gameID)
			query += ` AND p.game_id = $2`
		}
	} else if gameID != nil {
		args = append(args, *gameID)
		query += ` WHERE p.game_id = $1`
	}
	query += ` ORDER BY p.date DESC`
	var rows []PurchaseWithNames
	err := s.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AddPlaytime increments hours_played in one statement, so concurrent
// sessions accumulate instead of racing a read-modify-write. Returns the
// number of rows touched (zero when the purchase does not exist).
func (s *PurchaseStore) AddPlaytime(ctx context.Context, pid, hours int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE purchases
		SET hours_played = hours_played + $1
		WHERE pid = $2
	`, hours, pid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
