// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	IsPremium    bool      `db:"is_premium"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Counts struct {
	Total   int `db:"total"   json:"total"`
	Premium int `db:"premium" json:"premium"`
	Admins  int `db:"admins"  json:"admins"`
}
