package services

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/db"
	"storefront/internal/money"
	"storefront/internal/store"
	"storefront/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WalletService struct {
	txRunner db.TxRunner
	wallets  WalletStore
	ledger   LedgerStore
	hub      BalanceHub
}

func NewWalletService(txRunner db.TxRunner, wallets WalletStore, ledger LedgerStore, hub BalanceHub) *WalletService {
	return &WalletService{
		txRunner: txRunner,
		wallets:  wallets,
		ledger:   ledger,
		hub:      hub,
	}
}

func (s *WalletService) GetBalance(ctx context.Context, uid int64) (int64, error) {
	wallet, err := s.wallets.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return wallet.Balance, nil
}

// Credit adds funds (top-up or refund) and writes the matching ledger
// entry in the same transaction.
func (s *WalletService) Credit(ctx context.Context, uid, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		wallet, err := s.wallets.GetForUpdate(ctx, tx, uid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrWalletNotFound
			}
			return err
		}
		balanceAfter = wallet.Balance + amount
		if _, err := s.wallets.AdjustBalance(ctx, tx, uid, amount); err != nil {
			return err
		}
		return s.ledger.InsertEntry(ctx, tx, store.WalletEntryInput{
			ID:          uuid.NewString(),
			UID:         uid,
			Amount:      amount,
			Description: "Wallet credit",
		})
	})
	if err != nil {
		return 0, err
	}
	s.hub.BroadcastBalance(uid, websocket.BalanceUpdate{
		UID:     uid,
		Balance: money.FormatMinor(balanceAfter),
	})
	return balanceAfter, nil
}

// Debit removes funds outside of a purchase. The locked read and the
// write form one unit, so the balance can never go negative even under
// concurrent debits.
func (s *WalletService) Debit(ctx context.Context, uid, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		wallet, err := s.wallets.GetForUpdate(ctx, tx, uid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrWalletNotFound
			}
			return err
		}
		if wallet.Balance < amount {
			return ErrInsufficientFunds
		}
		balanceAfter = wallet.Balance - amount
		if err := s.wallets.UpdateBalance(ctx, tx, uid, balanceAfter); err != nil {
			return err
		}
		return s.ledger.InsertEntry(ctx, tx, store.WalletEntryInput{
			ID:          uuid.NewString(),
			UID:         uid,
			Amount:      -amount,
			Description: "Wallet debit",
		})
	})
	if err != nil {
		return 0, err
	}
	s.hub.BroadcastBalance(uid, websocket.BalanceUpdate{
		UID:     uid,
		Balance: money.FormatMinor(balanceAfter),
	})
	return balanceAfter, nil
}
