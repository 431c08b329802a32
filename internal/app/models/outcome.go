package models

import "time"

// CourseOutcome represents a course learning outcome (CLO). An outcome
// belongs to exactly one course and moves through the approval workflow
// DRAFT -> SUBMITTED -> APPROVED/REJECTED.
type CourseOutcome struct {
	ID          int64         `json:"id" db:"id"`
	CourseID    int64         `json:"courseId" db:"course_id"`
	Code        string        `json:"code" db:"code"`
	Description string        `json:"description" db:"description"`
	Status      OutcomeStatus `json:"status" db:"status"`
	CreatedBy   int64         `json:"createdBy" db:"created_by"`
	ReviewedBy  *int64        `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewNote  *string       `json:"reviewNote,omitempty" db:"review_note"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}
