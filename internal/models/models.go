package models

import "time"

type User struct {
	UID         int64     `db:"uid" json:"uid"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Passwd      string    `db:"passwd" json:"-"`
	IsPublisher bool      `db:"is_publisher" json:"is_publisher"`
	IsAdmin     bool      `db:"is_admin" json:"is_admin"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Wallet struct {
	UID     int64 `db:"uid" json:"uid"`
	Balance int64 `db:"balance" json:"balance"`
}

type Game struct {
	GID         int64   `db:"gid" json:"gid"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	Price       int64   `db:"price" json:"price"`
	Publisher   *int64  `db:"publisher" json:"publisher,omitempty"`
	Status      string  `db:"status" json:"status"`
}

type Purchase struct {
	PID         int64     `db:"pid" json:"pid"`
	GameID      int64     `db:"game_id" json:"game_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Date        time.Time `db:"date" json:"date"`
	HoursPlayed int64     `db:"hours_played" json:"hours_played"`
}

// WalletEntry is one row of the wallet ledger. Negative amounts are
// debits; a purchase debit references the purchase it paid for.
type WalletEntry struct {
	ID          string    `db:"id" json:"id"`
	UID         int64     `db:"uid" json:"uid"`
	PurchaseID  *int64    `db:"purchase_id" json:"purchase_id,omitempty"`
	Amount      int64     `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
