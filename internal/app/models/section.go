package models

import "time"

// Section represents a single taught instance of a course offering.
// Instructor and enrollment are optional: an unassigned section is valid,
// and enrollment may be unknown. Status is free text compared
// case-insensitively against a small "completed" vocabulary by the
// reporting engine.
type Section struct {
	ID           int64     `json:"id" db:"id"`
	OfferingID   int64     `json:"offeringId" db:"offering_id"`
	Label        string    `json:"label" db:"label"`
	InstructorID *int64    `json:"instructorId,omitempty" db:"instructor_id"`
	Enrollment   *int      `json:"enrollment,omitempty" db:"enrollment"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Offering *CourseOffering `json:"offering,omitempty"`
}
