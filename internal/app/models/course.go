package models

import "time"

// Course represents a course owned by an institution. A course may belong
// to zero, one or many programs; membership lives in the course_programs
// join table. Courses are the unit against which learning outcomes and
// offerings attach.
type Course struct {
	ID            int64     `json:"id" db:"id"`
	InstitutionID int64     `json:"institutionId" db:"institution_id"`
	CourseNumber  string    `json:"courseNumber" db:"course_number"`
	CourseTitle   string    `json:"courseTitle" db:"course_title"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// ProgramIDs is the resolved program membership set (may be empty:
	// an unassigned course is valid).
	ProgramIDs []int64 `json:"programIds"`

	// Relations (populated when needed)
	Institution *Institution `json:"institution,omitempty"`
}
