package models

import "time"

// Institution represents a tenant institution. Every other entity is
// transitively scoped to exactly one institution.
type Institution struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
