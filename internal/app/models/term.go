package models

import "time"

// Term represents an academic term (semester) of an institution.
type Term struct {
	ID            int64     `json:"id" db:"id"`
	InstitutionID int64     `json:"institutionId" db:"institution_id"`
	Name          string    `json:"name" db:"name"`
	StartsOn      time.Time `json:"startsOn" db:"starts_on"`
	EndsOn        time.Time `json:"endsOn" db:"ends_on"`
	IsActive      bool      `json:"isActive" db:"is_active"`
}

// CourseOffering represents a course as scheduled in a specific term.
// An offering groups one or more sections.
type CourseOffering struct {
	ID       int64 `json:"id" db:"id"`
	CourseID int64 `json:"courseId" db:"course_id"`
	TermID   int64 `json:"termId" db:"term_id"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
	Term   *Term   `json:"term,omitempty"`
}
