package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogulcan/clotrack/internal/app/models"
)

// fakeStore serves canned per-institution collections.
type fakeStore struct {
	institutions []Record
	programs     map[string][]Record
	courses      map[string][]Record
	users        map[string][]Record
	instructors  map[string][]Record
	sections     map[string][]Record
	terms        map[string][]Record

	missingInstitutions map[string]bool
	listErr             error
}

func (f *fakeStore) ListInstitutions(ctx context.Context) ([]Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.institutions, nil
}

func (f *fakeStore) GetInstitution(ctx context.Context, institutionID string) (Record, error) {
	if f.missingInstitutions[institutionID] {
		return nil, nil
	}
	for _, institution := range f.institutions {
		if id, ok := RecordID(institution, institutionKeys...); ok && id == institutionID {
			return institution, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListPrograms(ctx context.Context, institutionID string) ([]Record, error) {
	return f.programs[institutionID], f.listErr
}

func (f *fakeStore) ListCourses(ctx context.Context, institutionID string) ([]Record, error) {
	return f.courses[institutionID], f.listErr
}

func (f *fakeStore) ListUsers(ctx context.Context, institutionID string) ([]Record, error) {
	return f.users[institutionID], f.listErr
}

func (f *fakeStore) ListInstructors(ctx context.Context, institutionID string) ([]Record, error) {
	return f.instructors[institutionID], f.listErr
}

func (f *fakeStore) ListSections(ctx context.Context, institutionID string) ([]Record, error) {
	return f.sections[institutionID], f.listErr
}

func (f *fakeStore) ListActiveTerms(ctx context.Context, institutionID string) ([]Record, error) {
	return f.terms[institutionID], f.listErr
}

// fakeOutcomes serves per-course outcome lists and can fail selected
// courses.
type fakeOutcomes struct {
	byCourse map[string][]Record
	failing  map[string]bool
	calls    []string
}

func (f *fakeOutcomes) ListOutcomes(ctx context.Context, courseID string) ([]Record, error) {
	f.calls = append(f.calls, courseID)
	if f.failing[courseID] {
		return nil, errors.New("outcome backend down")
	}
	return f.byCourse[courseID], nil
}

// newFixtureStore builds the store used by most dashboard tests: one
// institution with two programs, three courses, four sections, two
// instructors and one admin.
func newFixtureStore() *fakeStore {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeStore{
		institutions: []Record{
			{"id": "1", "name": "Tech University"},
		},
		programs: map[string][]Record{
			"1": {
				{"id": "p1", "name": "Computer Science"},
				{"id": "p2", "name": "Mathematics"},
			},
		},
		courses: map[string][]Record{
			"1": {
				{"id": "c1", "course_number": "CS101", "course_title": "Intro", "program_ids": []any{"p1"}, "created_at": created},
				{"id": "c2", "course_number": "CS201", "course_title": "Algorithms", "program_ids": []any{"p1", "p2"}, "created_at": created.Add(time.Hour)},
				{"id": "c3", "course_number": "MA101", "course_title": "Calculus", "program_ids": []any{"p2"}, "created_at": created.Add(2 * time.Hour)},
			},
		},
		sections: map[string][]Record{
			"1": {
				{"id": "s1", "course_id": "c1", "instructor_id": "u1", "term_id": "t1", "enrollment": int64(25), "status": "completed", "label": "A", "created_at": created},
				{"id": "s2", "course_id": "c1", "instructor_id": "u2", "term_id": "t1", "enrollment": int64(20), "status": "active", "label": "B", "created_at": created},
				{"id": "s3", "course_id": "c2", "instructor_id": "u1", "term_id": "t1", "enrollment": int64(15), "status": "active", "label": "A", "created_at": created},
				{"id": "s4", "course_id": "c3", "instructor_id": "u2", "term_id": "t1", "enrollment": int64(30), "status": "done", "label": "A", "created_at": created},
			},
		},
		users: map[string][]Record{
			"1": {
				{"id": "u1", "role_type": "INSTRUCTOR", "first_name": "Ada", "last_name": "Lovelace", "program_ids": []any{"p1"}, "created_at": created},
				{"id": "u2", "role_type": "INSTRUCTOR", "first_name": "Alan", "last_name": "Turing", "program_ids": []any{"p2"}, "created_at": created},
				{"id": "u3", "role_type": "PROGRAM_ADMIN", "first_name": "Grace", "last_name": "Hopper", "program_ids": []any{"p1"}, "created_at": created},
			},
		},
		instructors: map[string][]Record{
			"1": {
				{"id": "u1", "role_type": "INSTRUCTOR", "first_name": "Ada", "last_name": "Lovelace"},
				{"id": "u2", "role_type": "INSTRUCTOR", "first_name": "Alan", "last_name": "Turing"},
			},
		},
		terms: map[string][]Record{
			"1": {
				{"id": "t1", "name": "Spring 2026", "is_active": true},
			},
		},
	}
}

func newTestService(store ReadStore, outcomes OutcomeReader) *Service {
	return NewService(store, outcomes)
}

func TestBuildDashboard_SiteScope(t *testing.T) {
	store := newFixtureStore()
	outcomes := &fakeOutcomes{byCourse: map[string][]Record{
		"c1": {{"id": "o1", "code": "CLO1"}, {"id": "o2", "code": "CLO2"}},
	}}
	svc := newTestService(store, outcomes)

	p, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleSiteAdmin, UserID: "admin"})
	require.NoError(t, err)

	assert.Equal(t, ScopeSite, p.Metadata.DataScope)
	assert.Equal(t, string(models.RoleSiteAdmin), p.Metadata.UserRole)
	assert.False(t, p.Metadata.GeneratedAt.IsZero())

	assert.Equal(t, 1, p.Summary.InstitutionCount)
	assert.Equal(t, 2, p.Summary.ProgramCount)
	assert.Equal(t, 3, p.Summary.CourseCount)
	assert.Equal(t, 4, p.Summary.SectionCount)
	assert.Equal(t, 2, p.Summary.FacultyCount)
	assert.Equal(t, 90, p.Summary.StudentCount)

	require.Len(t, p.Courses, 3)
	count, ok := p.Courses[0].Get("clo_count")
	require.True(t, ok)
	assert.Equal(t, 2, count)

	// Each course was enriched exactly once.
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, outcomes.calls)

	// Site scope carries the activity feed.
	assert.NotEmpty(t, p.Activity)
}

func TestBuildDashboard_ProgramOverviewMetrics(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleSiteAdmin})
	require.NoError(t, err)

	require.Len(t, p.ProgramOverview, 2)
	byProgram := map[string]ProgramOverview{}
	for _, overview := range p.ProgramOverview {
		byProgram[overview.ProgramID] = overview
	}

	cs := byProgram["p1"]
	assert.Equal(t, 2, cs.CourseCount)
	assert.Equal(t, 3, cs.SectionCount)
	assert.Equal(t, 2, cs.FacultyCount)
	assert.Equal(t, 60, cs.StudentCount)
	assert.Equal(t, 1, cs.Assessment.Completed)
	assert.Equal(t, 3, cs.Assessment.Total)
	assert.Equal(t, 33.3, cs.Assessment.PercentComplete)

	math := byProgram["p2"]
	assert.Equal(t, 2, math.CourseCount)
	assert.Equal(t, 2, math.SectionCount)
}

func TestBuildDashboard_InstitutionScope(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstitutionAdmin,
		UserID:        "u9",
		InstitutionID: "1",
	})
	require.NoError(t, err)

	assert.Equal(t, ScopeInstitution, p.Metadata.DataScope)
	assert.Equal(t, 3, p.Summary.UserCount)
	assert.Len(t, p.FacultyAssignments, 2)
	// Only the site scope builds the feed.
	assert.Empty(t, p.Activity)
}

func TestBuildDashboard_InstitutionScope_RequiresInstitutionID(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	_, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleInstitutionAdmin})
	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, models.RoleInstitutionAdmin, scopeErr.Role)
}

func TestBuildDashboard_MissingInstitutionDegradesToStub(t *testing.T) {
	store := newFixtureStore()
	store.missingInstitutions = map[string]bool{"1": true}
	svc := newTestService(store, &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstitutionAdmin,
		InstitutionID: "1",
	})
	require.NoError(t, err)

	require.Len(t, p.Institutions, 1)
	id, ok := p.Institutions[0].Get("institution_id")
	require.True(t, ok)
	assert.Equal(t, "1", id)
	name, _ := p.Institutions[0].Get("name")
	assert.Nil(t, name)
}

func TestBuildDashboard_UnknownRoleFallsBackToInstitutionScope(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleType("AUDITOR"),
		InstitutionID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, ScopeInstitution, p.Metadata.DataScope)
	assert.Equal(t, "AUDITOR", p.Metadata.UserRole)
}

func TestBuildDashboard_UnknownRoleWithoutInstitution(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	_, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleType("AUDITOR")})
	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
}

func TestBuildDashboard_StoreErrorPropagates(t *testing.T) {
	store := newFixtureStore()
	store.listErr = errors.New("connection reset")
	svc := newTestService(store, &fakeOutcomes{})

	_, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstitutionAdmin,
		InstitutionID: "1",
	})
	require.Error(t, err)
	var scopeErr *ScopeError
	assert.False(t, errors.As(err, &scopeErr))
}

func TestBuildDashboard_EnrichmentFailureIsIsolated(t *testing.T) {
	store := newFixtureStore()
	outcomes := &fakeOutcomes{
		byCourse: map[string][]Record{
			"c2": {{"id": "o1", "code": "CLO1"}},
		},
		failing: map[string]bool{"c1": true},
	}
	svc := newTestService(store, outcomes)

	p, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleSiteAdmin})
	require.NoError(t, err)
	require.Len(t, p.Courses, 3)

	// The failed course stays in the payload with an empty outcome list.
	count, _ := p.Courses[0].Get("clo_count")
	assert.Equal(t, 0, count)
	clos, _ := p.Courses[0].Get("clos")
	assert.Equal(t, []Record{}, clos)

	// Its sibling keeps real data.
	count, _ = p.Courses[1].Get("clo_count")
	assert.Equal(t, 1, count)
}

func TestBuildDashboard_NilOutcomeListBecomesEmpty(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleSiteAdmin})
	require.NoError(t, err)

	clos, ok := p.Courses[0].Get("clos")
	require.True(t, ok)
	assert.Equal(t, []Record{}, clos)
}

func TestBuildDashboard_EmptyCollectionsNeverNil(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleSiteAdmin})
	require.NoError(t, err)

	assert.NotNil(t, p.Institutions)
	assert.NotNil(t, p.Programs)
	assert.NotNil(t, p.Courses)
	assert.NotNil(t, p.Users)
	assert.NotNil(t, p.Instructors)
	assert.NotNil(t, p.Sections)
	assert.NotNil(t, p.Terms)
	assert.NotNil(t, p.ProgramOverview)
	assert.NotNil(t, p.FacultyAssignments)
	assert.NotNil(t, p.TeachingAssignments)
	assert.NotNil(t, p.AssessmentTasks)
	assert.NotNil(t, p.Activity)
}

func TestBuildDashboard_Idempotent(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})
	viewer := Viewer{Role: models.RoleSiteAdmin}

	first, err := svc.BuildDashboard(context.Background(), viewer)
	require.NoError(t, err)
	second, err := svc.BuildDashboard(context.Background(), viewer)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, len(first.Courses), len(second.Courses))
	assert.Equal(t, first.Activity, second.Activity)
}
