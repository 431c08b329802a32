package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`                             // Unique identifier for the user
	Email         string     `json:"email" db:"email" example:"admin@tu.edu"`            // User's email address
	Password      string     `json:"-" db:"password"`                                    // User's hashed password (excluded from JSON)
	FirstName     string     `json:"firstName" db:"first_name" example:"Jane"`           // User's first name
	LastName      string     `json:"lastName" db:"last_name" example:"Doe"`              // User's last name
	RoleType      RoleType   `json:"roleType" db:"role_type" example:"INSTRUCTOR"`       // User's role
	InstitutionID *int64     `json:"institutionId,omitempty" db:"institution_id"`        // Owning institution (nil for site admins)
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`             // Whether the user account is active
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`                          // Timestamp when the user was created
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`                          // Timestamp when the user was last updated
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`           // Timestamp of the last login (nullable)

	// ProgramIDs is only meaningful for PROGRAM_ADMIN and INSTRUCTOR roles
	// (populated from the user_programs join table when needed).
	ProgramIDs []int64 `json:"programIds,omitempty"`
}

// DisplayName returns the user's full name, falling back to the email
// local part when both name fields are empty.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
