package store

import (
	"context"

	"storefront/internal/models"
)

type WalletStore struct {
	db DB
}

func NewWalletStore(db DB) *WalletStore {
	return &WalletStore{db: db}
}

func (s *WalletStore) Create(ctx context.Context, tx Execer, uid, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallets (uid, balance)
		VALUES ($1, $2)
	`, uid, balance)
	return err
}

func (s *WalletStore) GetByUID(ctx context.Context, uid int64) (models.Wallet, error) {
	var row models.Wallet
	err := s.db.GetContext(ctx, &row, `
		SELECT uid, balance
		FROM wallets
		WHERE uid = $1
	`, uid)
	return row, err
}

// GetForUpdate locks the wallet row for the duration of the enclosing
// transaction. The balance check and the balance write that follow are
// therefore observed as one unit by concurrent purchases.
func (s *WalletStore) GetForUpdate(ctx context.Context, tx Getter, uid int64) (models.Wallet, error) {
	var row models.Wallet
	err := tx.GetContext(ctx, &row, `
		SELECT uid, balance
		FROM wallets
		WHERE uid = $1
		FOR UPDATE
	`, uid)
	return row, err
}

func (s *WalletStore) UpdateBalance(ctx context.Context, tx Execer, uid, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = $1, updated_at = NOW()
		WHERE uid = $2
	`, balance, uid)
	return err
}

// AdjustBalance applies a relative delta in a single statement. Only
// safe for credits; debits must go through the locked read so the
// non-negative invariant holds.
func (s *WalletStore) AdjustBalance(ctx context.Context, tx Execer, uid, delta int64) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE uid = $2
	`, delta, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
