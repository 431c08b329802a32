package models

// RoleType defines the user role type
type RoleType string

const (
	RoleSiteAdmin        RoleType = "SITE_ADMIN"        // Cross-institution administrator
	RoleInstitutionAdmin RoleType = "INSTITUTION_ADMIN" // Administrator of a single institution
	RoleProgramAdmin     RoleType = "PROGRAM_ADMIN"     // Administrator of one or more programs
	RoleInstructor       RoleType = "INSTRUCTOR"        // Teaching staff assigned to sections
)

// KnownRoles lists every role the application dispatches on.
// An unrecognized role is tolerated by the reporting engine (it degrades
// to the institution-admin scope) but is rejected at user creation time.
var KnownRoles = []RoleType{
	RoleSiteAdmin,
	RoleInstitutionAdmin,
	RoleProgramAdmin,
	RoleInstructor,
}

// IsKnownRole reports whether role is one of the four dispatchable roles.
func IsKnownRole(role RoleType) bool {
	for _, r := range KnownRoles {
		if r == role {
			return true
		}
	}
	return false
}

// OutcomeStatus defines the approval workflow state of a course learning outcome
type OutcomeStatus string

const (
	OutcomeStatusDraft     OutcomeStatus = "DRAFT"
	OutcomeStatusSubmitted OutcomeStatus = "SUBMITTED"
	OutcomeStatusApproved  OutcomeStatus = "APPROVED"
	OutcomeStatusRejected  OutcomeStatus = "REJECTED"
)
