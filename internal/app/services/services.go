package services

// Services bundles all service instances for dependency wiring.
//
// Dashboard aggregation lives in internal/app/reporting and is wired
// directly into its controller; no service wrapper is needed there.
type Services struct {
	AuthService        *AuthService
	InstitutionService *InstitutionService
	ProgramService     *ProgramService
	CourseService      *CourseService
	TermService        *TermService
	SectionService     *SectionService
	OutcomeService     *OutcomeService
}
