package reporting

import (
	"context"
	"fmt"

	"github.com/ogulcan/clotrack/internal/app/models"
)

// DataScope identifies which of the four visibility strategies produced
// a payload.
type DataScope string

const (
	ScopeSite        DataScope = "site"
	ScopeInstitution DataScope = "institution"
	ScopeProgram     DataScope = "program"
	ScopeInstructor  DataScope = "instructor"
)

// Viewer describes the identity a dashboard is built for. The caller is
// responsible for authenticating the viewer; the engine only derives
// visibility from these fields and never makes authorization decisions
// of its own.
type Viewer struct {
	UserID        string
	Role          models.RoleType
	InstitutionID string
	ProgramIDs    []string
}

// ScopeError reports required viewer context missing for the selected
// scope strategy. It is always a caller contract violation, never a
// data problem, and is the only error this package raises itself.
type ScopeError struct {
	Role    models.RoleType
	Missing string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("scope for role %q requires %s", e.Role, e.Missing)
}

// institutionData is one institution's raw collections, fetched and
// filtered by the scope resolver.
type institutionData struct {
	institution Record
	programs    []Record
	courses     []Record
	sections    []Record
	users       []Record
	instructors []Record
	terms       []Record
}

// scopedData is the resolver's output: the per-institution slices plus
// the program-admin course attribution map (course id -> the first
// matching program id in the viewer's program order).
type scopedData struct {
	scope         DataScope
	slices        []institutionData
	courseProgram map[string]string
}

// resolveScope selects one of the four scope strategies by viewer role
// and runs it to completion. There are no transitions between
// strategies.
func (s *Service) resolveScope(ctx context.Context, viewer Viewer) (*scopedData, error) {
	switch viewer.Role {
	case models.RoleSiteAdmin:
		return s.siteScope(ctx)
	case models.RoleProgramAdmin:
		return s.programScope(ctx, viewer)
	case models.RoleInstructor:
		return s.instructorScope(ctx, viewer)
	case models.RoleInstitutionAdmin:
		return s.institutionScope(ctx, viewer)
	default:
		// Fail-open: an unrecognized role degrades to institution-admin
		// visibility so that roles introduced upstream do not break
		// reporting. Logged loudly because it may equally be a missing
		// role branch; see DESIGN.md.
		s.logger.Warn().
			Str("role", string(viewer.Role)).
			Msg("Unrecognized viewer role, falling back to institution scope")
		return s.institutionScope(ctx, viewer)
	}
}

// fetchInstitution pulls every raw collection for one institution.
func (s *Service) fetchInstitution(ctx context.Context, institution Record, institutionID string) (institutionData, error) {
	data := institutionData{institution: institution}

	var err error
	if data.programs, err = s.store.ListPrograms(ctx, institutionID); err != nil {
		return data, fmt.Errorf("listing programs for institution %s: %w", institutionID, err)
	}
	if data.courses, err = s.store.ListCourses(ctx, institutionID); err != nil {
		return data, fmt.Errorf("listing courses for institution %s: %w", institutionID, err)
	}
	if data.sections, err = s.store.ListSections(ctx, institutionID); err != nil {
		return data, fmt.Errorf("listing sections for institution %s: %w", institutionID, err)
	}
	if data.users, err = s.store.ListUsers(ctx, institutionID); err != nil {
		return data, fmt.Errorf("listing users for institution %s: %w", institutionID, err)
	}
	if data.instructors, err = s.store.ListInstructors(ctx, institutionID); err != nil {
		return data, fmt.Errorf("listing instructors for institution %s: %w", institutionID, err)
	}
	if data.terms, err = s.store.ListActiveTerms(ctx, institutionID); err != nil {
		return data, fmt.Errorf("listing active terms for institution %s: %w", institutionID, err)
	}

	return data, nil
}

// siteScope aggregates every institution.
func (s *Service) siteScope(ctx context.Context) (*scopedData, error) {
	institutions, err := s.store.ListInstitutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing institutions: %w", err)
	}

	sd := &scopedData{scope: ScopeSite}
	for _, institution := range institutions {
		id, ok := RecordID(institution, institutionKeys...)
		if !ok {
			continue
		}
		data, err := s.fetchInstitution(ctx, institution, id)
		if err != nil {
			return nil, err
		}
		sd.slices = append(sd.slices, data)
	}
	return sd, nil
}

// institutionScope covers a single institution in full. It is also the
// fallback strategy for unrecognized roles.
func (s *Service) institutionScope(ctx context.Context, viewer Viewer) (*scopedData, error) {
	if viewer.InstitutionID == "" {
		return nil, &ScopeError{Role: viewer.Role, Missing: "an institution id"}
	}

	institution, err := s.getInstitutionRecord(ctx, viewer.InstitutionID)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchInstitution(ctx, institution, viewer.InstitutionID)
	if err != nil {
		return nil, err
	}

	return &scopedData{scope: ScopeInstitution, slices: []institutionData{data}}, nil
}

// programScope restricts one institution to the viewer's program set. A
// course belongs to the scope when its resolved program set intersects
// the viewer's programs; it is then attributed to the first matching
// program id in the viewer's own order, so that a multi-program course
// is attributed consistently across different program admins.
func (s *Service) programScope(ctx context.Context, viewer Viewer) (*scopedData, error) {
	// An admin of zero programs sees a valid, empty dashboard.
	if len(viewer.ProgramIDs) == 0 {
		return &scopedData{scope: ScopeProgram}, nil
	}
	if viewer.InstitutionID == "" {
		return nil, &ScopeError{Role: viewer.Role, Missing: "an institution id"}
	}

	institution, err := s.getInstitutionRecord(ctx, viewer.InstitutionID)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchInstitution(ctx, institution, viewer.InstitutionID)
	if err != nil {
		return nil, err
	}

	viewerSet := make(map[string]struct{}, len(viewer.ProgramIDs))
	for _, id := range viewer.ProgramIDs {
		viewerSet[id] = struct{}{}
	}

	var programs []Record
	for _, program := range data.programs {
		id, ok := RecordID(program, programKeys...)
		if !ok {
			continue
		}
		if _, member := viewerSet[id]; member {
			programs = append(programs, program)
		}
	}
	data.programs = programs

	courseProgram := make(map[string]string)
	var courses []Record
	keptCourses := make(map[string]struct{})
	for _, course := range data.courses {
		id, ok := RecordID(course, courseKeys...)
		if !ok {
			continue
		}
		membership := programIDSet(course)
		attributed := ""
		for _, programID := range viewer.ProgramIDs {
			if _, member := membership[programID]; member {
				attributed = programID
				break
			}
		}
		if attributed == "" {
			continue
		}
		courses = append(courses, course)
		keptCourses[id] = struct{}{}
		courseProgram[id] = attributed
	}
	data.courses = courses

	var sections []Record
	sectionInstructors := make(map[string]struct{})
	for _, section := range data.sections {
		courseID, ok := sectionCourseID(section)
		if !ok {
			continue
		}
		if _, kept := keptCourses[courseID]; !kept {
			continue
		}
		sections = append(sections, section)
		if instructorID, ok := sectionInstructorID(section); ok {
			sectionInstructors[instructorID] = struct{}{}
		}
	}
	data.sections = sections

	inScope := func(rec Record) bool {
		id, ok := RecordID(rec, userKeys...)
		if ok {
			if _, teaching := sectionInstructors[id]; teaching {
				return true
			}
		}
		for programID := range programIDSet(rec) {
			if _, member := viewerSet[programID]; member {
				return true
			}
		}
		return false
	}

	var users []Record
	for _, user := range data.users {
		if inScope(user) {
			users = append(users, user)
		}
	}
	data.users = users

	var instructors []Record
	for _, instructor := range data.instructors {
		if inScope(instructor) {
			instructors = append(instructors, instructor)
		}
	}
	data.instructors = instructors

	return &scopedData{
		scope:         ScopeProgram,
		slices:        []institutionData{data},
		courseProgram: courseProgram,
	}, nil
}

// instructorScope restricts one institution to the sections the viewer
// teaches, the courses those sections belong to and the programs those
// courses reference.
func (s *Service) instructorScope(ctx context.Context, viewer Viewer) (*scopedData, error) {
	if viewer.InstitutionID == "" {
		return nil, &ScopeError{Role: viewer.Role, Missing: "an institution id"}
	}
	if viewer.UserID == "" {
		return nil, &ScopeError{Role: viewer.Role, Missing: "a user id"}
	}

	institution, err := s.getInstitutionRecord(ctx, viewer.InstitutionID)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchInstitution(ctx, institution, viewer.InstitutionID)
	if err != nil {
		return nil, err
	}

	var sections []Record
	taughtCourses := make(map[string]struct{})
	for _, section := range data.sections {
		instructorID, ok := sectionInstructorID(section)
		if !ok || instructorID != viewer.UserID {
			continue
		}
		sections = append(sections, section)
		if courseID, ok := sectionCourseID(section); ok {
			taughtCourses[courseID] = struct{}{}
		}
	}
	data.sections = sections

	var courses []Record
	referenced := make(map[string]struct{})
	for _, course := range data.courses {
		id, ok := RecordID(course, courseKeys...)
		if !ok {
			continue
		}
		if _, taught := taughtCourses[id]; !taught {
			continue
		}
		courses = append(courses, course)
		for programID := range programIDSet(course) {
			referenced[programID] = struct{}{}
		}
	}
	data.courses = courses

	var programs []Record
	for _, program := range data.programs {
		id, ok := RecordID(program, programKeys...)
		if !ok {
			continue
		}
		if _, ok := referenced[id]; ok {
			programs = append(programs, program)
		}
	}
	data.programs = programs

	// The teaching view carries no directory listings.
	data.users = nil
	data.instructors = nil

	return &scopedData{scope: ScopeInstructor, slices: []institutionData{data}}, nil
}

// getInstitutionRecord loads the institution record, degrading to a
// minimal stub when the persistence layer has nothing for the id. The
// scope is still valid in that case; only the name annotation is lost.
func (s *Service) getInstitutionRecord(ctx context.Context, institutionID string) (Record, error) {
	institution, err := s.store.GetInstitution(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("getting institution %s: %w", institutionID, err)
	}
	if institution == nil {
		institution = Record{"id": institutionID}
	}
	return institution, nil
}
