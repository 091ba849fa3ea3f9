package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"storefront/internal/models"
)

func TestPurchaseStoreCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "INSERT INTO purchases") || !strings.Contains(query, "RETURNING pid") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != int64(3) || args[1] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Purchase) = models.Purchase{PID: 11, GameID: 3, UserID: 7, Date: now}
			return nil
		},
	}
	store := NewPurchaseStore(stubDB{})
	purchase, err := store.Create(ctx, getter, 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purchase.PID != 11 || purchase.HoursPlayed != 0 {
		t.Fatalf("unexpected purchase: %#v", purchase)
	}
}

func TestPurchaseStoreExists(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "SELECT EXISTS") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != int64(3) || args[1] != int64(7) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*bool) = true
			return nil
		},
	}
	store := NewPurchaseStore(stubDB{})
	owned, err := store.Exists(ctx, getter, 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !owned {
		t.Fatal("expected owned")
	}
}

func TestPurchaseStoreAddPlaytimeIncrementsInPlace(t *testing.T) {
	ctx := context.Background()
	store := NewPurchaseStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "SET hours_played = hours_played + $1") {
				t.Fatalf("expected in-database increment, got: %s", query)
			}
			if len(args) != 2 || args[0] != int64(3) || args[1] != int64(11) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	})
	rows, err := store.AddPlaytime(ctx, 11, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}
}

func TestPurchaseStoreAddPlaytimeMissingPurchase(t *testing.T) {
	ctx := context.Background()
	store := NewPurchaseStore(stubDB{
		execFn: func(context.Context, string, ...any) (sql.Result, error) {
			return stubResult{rows: 0}, nil
		},
	})
	rows, err := store.AddPlaytime(ctx, 999, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected, got %d", rows)
	}
}

func TestPurchaseStoreListFilters(t *testing.T) {
	ctx := context.Background()
	userID := int64(7)
	gameID := int64(3)

	cases := []struct {
		name     string
		userID   *int64
		gameID   *int64
		wantSQL  string
		wantArgs int
	}{
		{"no filters", nil, nil, "ORDER BY p.date DESC", 0},
		{"by user", &userID, nil, "WHERE p.user_id = $1", 1},
		{"by game", nil, &gameID, "WHERE p.game_id = $1", 1},
		{"by both", &userID, &gameID, "AND p.game_id = $2", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewPurchaseStore(stubDB{
				selectFn: func(_ context.Context, dest any, query string, args ...any) error {
					if !strings.Contains(query, tc.wantSQL) {
						t.Fatalf("unexpected query: %s", query)
					}
					if len(args) != tc.wantArgs {
						t.Fatalf("expected %d args, got %#v", tc.wantArgs, args)
					}
					*dest.(*[]PurchaseWithNames) = []PurchaseWithNames{{PID: 11}}
					return nil
				},
			})
			rows, err := store.List(ctx, tc.userID, tc.gameID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rows) != 1 || rows[0].PID != 11 {
				t.Fatalf("unexpected rows: %#v", rows)
			}
		})
	}
}
