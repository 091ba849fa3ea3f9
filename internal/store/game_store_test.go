package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"storefront/internal/models"
)

func TestGameStoreGetForShareLocksRow(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FOR SHARE") {
				t.Fatalf("expected share lock, got: %s", query)
			}
			if len(args) != 1 || args[0] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Game) = models.Game{GID: 3, Name: "Mini Metro", Price: 300, Status: "published"}
			return nil
		},
	}
	store := NewGameStore(stubDB{})
	game, err := store.GetForShare(ctx, getter, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.Price != 300 {
		t.Fatalf("unexpected game: %#v", game)
	}
}

func TestGameStoreCreate(t *testing.T) {
	ctx := context.Background()
	publisher := int64(2)
	store := NewGameStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "INSERT INTO games") || !strings.Contains(query, "RETURNING gid") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 5 {
				t.Fatalf("expected 5 args, got %#v", args)
			}
			*dest.(*models.Game) = models.Game{GID: 3, Name: "Mini Metro", Price: 300, Publisher: &publisher, Status: "draft"}
			return nil
		},
	})
	game, err := store.Create(ctx, GameInput{Name: "Mini Metro", Price: 300, Publisher: &publisher, Status: "draft"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.GID != 3 {
		t.Fatalf("unexpected game: %#v", game)
	}
}

func TestGameStoreUpdatePartialSet(t *testing.T) {
	ctx := context.Background()
	price := int64(500)
	status := "delisted"
	store := NewGameStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "price = $1") || !strings.Contains(query, "status = $2") {
				t.Fatalf("unexpected query: %s", query)
			}
			if strings.Contains(query, "name =") || strings.Contains(query, "description =") {
				t.Fatalf("untouched columns in query: %s", query)
			}
			if len(args) != 3 || args[0] != int64(500) || args[1] != "delisted" || args[2] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Game) = models.Game{GID: 3, Price: 500, Status: "delisted"}
			return nil
		},
	})
	game, err := store.Update(ctx, 3, GameUpdateInput{Price: &price, Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if game.Status != "delisted" {
		t.Fatalf("unexpected game: %#v", game)
	}
}

func TestGameStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "DELETE FROM games") {
				t.Fatalf("unexpected query: %s", query)
			}
			return stubResult{rows: 1}, nil
		},
	})
	rows, err := store.Delete(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}
}

func TestGameStoreListJoinsPublisher(t *testing.T) {
	ctx := context.Background()
	store := NewGameStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "LEFT JOIN users") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*[]GameWithPublisher) = []GameWithPublisher{{GID: 3}}
			return nil
		},
	})
	rows, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].GID != 3 {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
