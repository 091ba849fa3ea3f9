package handlers

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Getter, email *string, passwd string, isPublisher, isAdmin bool) (int64, error)
	GetByID(ctx context.Context, uid int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, uid int64, input store.UserUpdateInput) (models.User, error)
	Delete(ctx context.Context, uid int64) (int64, error)
}

type WalletStore interface {
	Create(ctx context.Context, tx store.Execer, uid, balance int64) error
	GetByUID(ctx context.Context, uid int64) (models.Wallet, error)
}

type GameStore interface {
	Create(ctx context.Context, input store.GameInput) (models.Game, error)
	GetByID(ctx context.Context, gid int64) (models.Game, error)
	List(ctx context.Context) ([]store.GameWithPublisher, error)
	Update(ctx context.Context, gid int64, input store.GameUpdateInput) (models.Game, error)
	Delete(ctx context.Context, gid int64) (int64, error)
}

type PurchaseStore interface {
	GetByID(ctx context.Context, pid int64) (models.Purchase, error)
	List(ctx context.Context, userID, gameID *int64) ([]store.PurchaseWithNames, error)
}

type LedgerStore interface {
	SumByWallet(ctx context.Context, uid int64) (int64, error)
	ListByWallet(ctx context.Context, uid int64, limit, offset int) ([]models.WalletEntry, error)
}

type PurchaseService interface {
	Purchase(ctx context.Context, buyerUID, gid int64) (models.Purchase, error)
	AddPlaytime(ctx context.Context, pid, hours int64) error
}

type WalletService interface {
	GetBalance(ctx context.Context, uid int64) (int64, error)
	Credit(ctx context.Context, uid, amount int64) (int64, error)
	Debit(ctx context.Context, uid, amount int64) (int64, error)
}
