package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"storefront/internal/models"
)

func TestWalletStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO wallets") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != int64(7) || args[1] != int64(0) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewWalletStore(stubDB{})
	if err := store.Create(ctx, execer, 7, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWalletStoreGetByUID(t *testing.T) {
	ctx := context.Background()
	store := NewWalletStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM wallets") || !strings.Contains(query, "WHERE uid = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Wallet) = models.Wallet{UID: 7, Balance: 500}
			return nil
		},
	})
	wallet, err := store.GetByUID(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.Balance != 500 {
		t.Fatalf("unexpected wallet: %#v", wallet)
	}
}

func TestWalletStoreGetForUpdateLocksRow(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR UPDATE") {
				t.Fatalf("expected row lock, got: %s", query)
			}
			if len(args) != 1 || args[0] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Wallet) = models.Wallet{UID: 7, Balance: 500}
			return nil
		},
	}
	store := NewWalletStore(stubDB{})
	wallet, err := store.GetForUpdate(ctx, getter, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.UID != 7 {
		t.Fatalf("unexpected wallet: %#v", wallet)
	}
}

func TestWalletStoreUpdateBalance(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE wallets") || !strings.Contains(query, "SET balance = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != int64(200) || args[1] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewWalletStore(stubDB{})
	if err := store.UpdateBalance(ctx, execer, 7, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWalletStoreAdjustBalance(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET balance = balance + $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != int64(300) || args[1] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewWalletStore(stubDB{})
	rows, err := store.AdjustBalance(ctx, execer, 7, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}
}
