package store

import (
	"context"

	"storefront/internal/models"
)

type LedgerStore struct {
	db DB
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

type WalletEntryInput struct {
	ID          string
	UID         int64
	PurchaseID  *int64
	Amount      int64
	Description string
}

func (s *LedgerStore) InsertEntry(ctx context.Context, tx Execer, entry WalletEntryInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_entries (id, uid, purchase_id, amount, description)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.UID, entry.PurchaseID, entry.Amount, entry.Description)
	return err
}

// SumByWallet recomputes a balance from the ledger, for reconciliation
// against the stored wallet balance.
func (s *LedgerStore) SumByWallet(ctx context.Context, uid int64) (int64, error) {
	var sum int64
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM wallet_entries
		WHERE uid = $1
	`, uid)
	return sum, err
}

func (s *LedgerStore) ListByWallet(ctx context.Context, uid int64, limit, offset int) ([]models.WalletEntry, error) {
	var rows []models.WalletEntry
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, uid, purchase_id, amount, description, created_at
		FROM wallet_entries
		WHERE uid = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, uid, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
