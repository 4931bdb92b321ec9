// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"
)

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Tool struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	CategoryID  int64     `db:"category_id"`
	Description string    `db:"description"`
	RoutePath   string    `db:"route_path"`
	IsPremium   bool      `db:"is_premium"`
	IsActive    bool      `db:"is_active"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
}

type Counts struct {
	Tools      int `db:"tools"      json:"tools"`
	Active     int `db:"active"     json:"active"`
	Premium    int `db:"premium"    json:"premium"`
	Categories int `db:"categories" json:"categories"`
}
