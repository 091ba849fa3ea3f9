package services

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/db"
	"storefront/internal/models"
	"storefront/internal/money"
	"storefront/internal/store"
	"storefront/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrNotPurchasable    = errors.New("game is not purchasable")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("game already owned")
	ErrSelfPurchase      = errors.New("publisher cannot buy own game")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidHours      = errors.New("invalid hours")
)

// StatusPublished is the only game status eligible for purchase.
const StatusPublished = "published"

type GameStore interface {
	GetForShare(ctx context.Context, tx store.Getter, gid int64) (models.Game, error)
}

type WalletStore interface {
	GetByUID(ctx context.Context, uid int64) (models.Wallet, error)
	GetForUpdate(ctx context.Context, tx store.Getter, uid int64) (models.Wallet, error)
	UpdateBalance(ctx context.Context, tx store.Execer, uid, balance int64) error
	AdjustBalance(ctx context.Context, tx store.Execer, uid, delta int64) (int64, error)
}

type PurchaseStore interface {
	Create(ctx context.Context, tx store.Getter, gameID, userID int64) (models.Purchase, error)
	Exists(ctx context.Context, tx store.Getter, gameID, userID int64) (bool, error)
	AddPlaytime(ctx context.Context, pid, hours int64) (int64, error)
}

type LedgerStore interface {
	InsertEntry(ctx context.Context, tx store.Execer, entry store.WalletEntryInput) error
}

type BalanceHub interface {
	BroadcastBalance(uid int64, update websocket.BalanceUpdate)
}

type PurchaseService struct {
	txRunner  db.TxRunner
	games     GameStore
	wallets   WalletStore
	purchases PurchaseStore
	ledger    LedgerStore
	hub       BalanceHub
}

func NewPurchaseService(txRunner db.TxRunner, games GameStore, wallets WalletStore, purchases PurchaseStore, ledger LedgerStore, hub BalanceHub) *PurchaseService {
	return &PurchaseService{
		txRunner:  txRunner,
		games:     games,
		wallets:   wallets,
		purchases: purchases,
		ledger:    ledger,
		hub:       hub,
	}
}

// Purchase debits the buyer's wallet by the game's current price and
// records the purchase, as one transaction. On any failure nothing is
// persisted: no debit without a purchase row, no purchase row without
// its debit.
func (s *PurchaseService) Purchase(ctx context.Context, buyerUID, gid int64) (models.Purchase, error) {
	var purchase models.Purchase
	var balanceAfter int64
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		game, err := s.games.GetForShare(ctx, tx, gid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrGameNotFound
			}
			return err
		}
		if game.Status != StatusPublished {
			return ErrNotPurchasable
		}
		if game.Publisher != nil && *game.Publisher == buyerUID {
			return ErrSelfPurchase
		}
		owned, err := s.purchases.Exists(ctx, tx, gid, buyerUID)
		if err != nil {
			return err
		}
		if owned {
			return ErrAlreadyOwned
		}
		wallet, err := s.wallets.GetForUpdate(ctx, tx, buyerUID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrWalletNotFound
			}
			return err
		}
		if wallet.Balance < game.Price {
			return ErrInsufficientFunds
		}
		balanceAfter = wallet.Balance - game.Price
		if game.Price > 0 {
			if err := s.wallets.UpdateBalance(ctx, tx, buyerUID, balanceAfter); err != nil {
				return err
			}
		}
		purchase, err = s.purchases.Create(ctx, tx, gid, buyerUID)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyOwned
			}
			return err
		}
		if game.Price == 0 {
			// A free game moves no currency; there is no ledger event.
			return nil
		}
		return s.ledger.InsertEntry(ctx, tx, store.WalletEntryInput{
			ID:          uuid.NewString(),
			UID:         buyerUID,
			PurchaseID:  &purchase.PID,
			Amount:      -game.Price,
			Description: "Purchase of " + game.Name,
		})
	})
	if err != nil {
		return models.Purchase{}, err
	}
	s.hub.BroadcastBalance(buyerUID, websocket.BalanceUpdate{
		UID:     buyerUID,
		Balance: money.FormatMinor(balanceAfter),
	})
	return purchase, nil
}

// AddPlaytime increments hours_played on an owned purchase. Concurrent
// calls accumulate; the increment happens in the database, not in Go.
func (s *PurchaseService) AddPlaytime(ctx context.Context, pid, hours int64) error {
	if hours < 0 {
		return ErrInvalidHours
	}
	rows, err := s.purchases.AddPlaytime(ctx, pid, hours)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
