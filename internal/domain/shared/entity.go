package shared

import "time"

// BaseEntity provides common fields for all persisted entities.
// The local ID is assigned by the database on first insert; records pulled
// from the remote platform are correlated through their external identifier.
type BaseEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
