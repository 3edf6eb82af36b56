package model

import "time"

// Item is a lost-or-found report owned by exactly one user.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Photo       string    `json:"photo,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item statuses.
const (
	StatusLost  = "lost"
	StatusFound = "found"
)

// ValidStatus reports whether status is one of the accepted item statuses.
func ValidStatus(status string) bool {
	return status == StatusLost || status == StatusFound
}
