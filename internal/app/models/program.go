package models

import "time"

// Program represents an academic program within an institution.
type Program struct {
	ID            int64     `json:"id" db:"id"`
	InstitutionID int64     `json:"institutionId" db:"institution_id"`
	Name          string    `json:"name" db:"name"`
	ShortName     string    `json:"shortName" db:"short_name"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// AdminIDs holds the user ids of the program's administrators
	// (populated from the program_admins join table when needed).
	AdminIDs []int64 `json:"adminIds,omitempty"`

	// Relations (populated when needed)
	Institution *Institution `json:"institution,omitempty"`
}
