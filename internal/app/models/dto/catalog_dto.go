package dto

import "time"

// CreateInstitutionRequest represents institution creation data
type CreateInstitutionRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	InstitutionID int64  `json:"institutionId" binding:"required,min=1"`
	Name          string `json:"name" binding:"required"`
	ShortName     string `json:"shortName" binding:"required"`
}

// UpdateProgramRequest represents program update data
type UpdateProgramRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortName string `json:"shortName" binding:"required"`
}

// ProgramAdminRequest names the user being assigned or withdrawn as a
// program administrator
type ProgramAdminRequest struct {
	UserID int64 `json:"userId" binding:"required,min=1"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	InstitutionID int64   `json:"institutionId" binding:"required,min=1"`
	CourseNumber  string  `json:"courseNumber" binding:"required"`
	CourseTitle   string  `json:"courseTitle" binding:"required"`
	ProgramIDs    []int64 `json:"programIds"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	CourseNumber string `json:"courseNumber" binding:"required"`
	CourseTitle  string `json:"courseTitle" binding:"required"`
}

// SetCourseProgramsRequest replaces a course's program membership set
type SetCourseProgramsRequest struct {
	ProgramIDs []int64 `json:"programIds"`
}

// CreateTermRequest represents term creation data
type CreateTermRequest struct {
	InstitutionID int64     `json:"institutionId" binding:"required,min=1"`
	Name          string    `json:"name" binding:"required"`
	StartsOn      time.Time `json:"startsOn" binding:"required"`
	EndsOn        time.Time `json:"endsOn" binding:"required"`
	IsActive      bool      `json:"isActive"`
}

// CreateOfferingRequest schedules a course into a term
type CreateOfferingRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
	TermID   int64 `json:"termId" binding:"required,min=1"`
}

// CreateSectionRequest represents section creation data
type CreateSectionRequest struct {
	OfferingID   int64  `json:"offeringId" binding:"required,min=1"`
	Label        string `json:"label" binding:"required"`
	InstructorID *int64 `json:"instructorId,omitempty"`
	Enrollment   *int   `json:"enrollment,omitempty"`
	Status       string `json:"status"`
}

// UpdateSectionRequest represents section update data
type UpdateSectionRequest struct {
	Label        string `json:"label" binding:"required"`
	InstructorID *int64 `json:"instructorId,omitempty"`
	Enrollment   *int   `json:"enrollment,omitempty"`
	Status       string `json:"status"`
}

// CreateOutcomeRequest represents learning outcome creation data
type CreateOutcomeRequest struct {
	CourseID    int64  `json:"courseId" binding:"required,min=1"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// UpdateOutcomeRequest represents learning outcome update data
type UpdateOutcomeRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ReviewOutcomeRequest carries an optional note for approve and reject
type ReviewOutcomeRequest struct {
	Note *string `json:"note,omitempty"`
}
