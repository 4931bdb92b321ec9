// AngelaMos | 2026
// entity.go

package upgrade

import (
	"time"
)

const StatusPending = "pending"

type Request struct {
	ID        int64     `db:"id"         json:"id"`
	UserID    int64     `db:"user_id"    json:"user_id"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PendingRequest struct {
	ID        int64     `db:"id"         json:"id"`
	UserID    int64     `db:"user_id"    json:"user_id"`
	Username  string    `db:"username"   json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
