package reporting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogulcan/clotrack/internal/app/models"
)

func annotatedIDs(records []*Annotated, candidates ...string) []string {
	ids := []string{}
	for _, rec := range records {
		if id, ok := RecordID(rec.Base(), candidates...); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestProgramScope_FiltersToViewerPrograms(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleProgramAdmin,
		UserID:        "u3",
		InstitutionID: "1",
		ProgramIDs:    []string{"p1"},
	})
	require.NoError(t, err)

	assert.Equal(t, ScopeProgram, p.Metadata.DataScope)
	assert.Equal(t, []string{"p1"}, annotatedIDs(p.Programs, programKeys...))
	// c2 references p1 and p2; membership in any viewer program keeps it.
	assert.Equal(t, []string{"c1", "c2"}, annotatedIDs(p.Courses, courseKeys...))
	assert.Equal(t, []string{"s1", "s2", "s3"}, annotatedIDs(p.Sections, sectionKeys...))
}

func TestProgramScope_AttributesMultiProgramCourseToViewerOrder(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleProgramAdmin,
		InstitutionID: "1",
		ProgramIDs:    []string{"p2", "p1"},
	})
	require.NoError(t, err)

	// c2 belongs to both programs; attribution follows the viewer's own
	// program order, so p2 wins here.
	var c2 *Annotated
	for _, course := range p.Courses {
		if id, _ := RecordID(course.Base(), courseKeys...); id == "c2" {
			c2 = course
		}
	}
	require.NotNil(t, c2)
	programID, ok := c2.Get("program_id")
	require.True(t, ok)
	assert.Equal(t, "p2", programID)
	programName, ok := c2.Get("program_name")
	require.True(t, ok)
	assert.Equal(t, "Mathematics", programName)

	// In overviews the course counts only for its attributed program.
	total := 0
	for _, overview := range p.ProgramOverview {
		total += overview.CourseCount
	}
	assert.Equal(t, 3, total)
}

func TestProgramScope_UserVisibility(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleProgramAdmin,
		InstitutionID: "1",
		ProgramIDs:    []string{"p1"},
	})
	require.NoError(t, err)

	// u1 and u3 are in p1; u2 is in p2 but teaches s3 on course c2,
	// which is in scope, so u2 is visible too.
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, annotatedIDs(p.Users, userKeys...))
}

func TestProgramScope_NoPrograms_EmptyDashboard(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleProgramAdmin,
		InstitutionID: "1",
		ProgramIDs:    nil,
	})
	require.NoError(t, err)

	assert.Equal(t, ScopeProgram, p.Metadata.DataScope)
	assert.Equal(t, Summary{}, p.Summary)
	assert.Empty(t, p.Programs)
	assert.Empty(t, p.Courses)
}

func TestProgramScope_NoProgramsWinsOverMissingInstitution(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	// An admin of zero programs gets the empty dashboard even when the
	// institution id is also missing.
	p, err := svc.BuildDashboard(context.Background(), Viewer{Role: models.RoleProgramAdmin})
	require.NoError(t, err)
	assert.Equal(t, Summary{}, p.Summary)
}

func TestProgramScope_RequiresInstitutionID(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	_, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:       models.RoleProgramAdmin,
		ProgramIDs: []string{"p1"},
	})
	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Contains(t, scopeErr.Error(), "institution id")
}

func TestInstructorScope_SeesOnlyOwnSections(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstructor,
		UserID:        "u1",
		InstitutionID: "1",
	})
	require.NoError(t, err)

	assert.Equal(t, ScopeInstructor, p.Metadata.DataScope)
	assert.Equal(t, []string{"s1", "s3"}, annotatedIDs(p.Sections, sectionKeys...))
	assert.Equal(t, []string{"c1", "c2"}, annotatedIDs(p.Courses, courseKeys...))
	// Programs referenced by taught courses only.
	assert.ElementsMatch(t, []string{"p1", "p2"}, annotatedIDs(p.Programs, programKeys...))

	// The teaching view never carries directory listings.
	assert.Empty(t, p.Users)
	assert.Empty(t, p.Instructors)
	assert.Empty(t, p.FacultyAssignments)
}

func TestInstructorScope_TeachingAssignments(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstructor,
		UserID:        "u1",
		InstitutionID: "1",
	})
	require.NoError(t, err)

	require.Len(t, p.TeachingAssignments, 2)
	first := p.TeachingAssignments[0]
	assert.Equal(t, "s1", first.SectionID)
	assert.Equal(t, "c1", first.CourseID)
	assert.Equal(t, "CS101", first.CourseNumber)
	assert.Equal(t, "Intro", first.CourseTitle)
	assert.Equal(t, "t1", first.TermID)
	assert.Equal(t, 25, first.Enrollment)
}

func TestInstructorScope_AssessmentTasksExcludeCompleted(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstructor,
		UserID:        "u1",
		InstitutionID: "1",
	})
	require.NoError(t, err)

	// s1 is completed; only s3 remains outstanding.
	require.Len(t, p.AssessmentTasks, 1)
	assert.Equal(t, "s3", p.AssessmentTasks[0].SectionID)
	assert.Equal(t, "CS201", p.AssessmentTasks[0].CourseNumber)
	assert.Equal(t, "active", p.AssessmentTasks[0].Status)
}

func TestInstructorScope_NoTaughtSections(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	p, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstructor,
		UserID:        "stranger",
		InstitutionID: "1",
	})
	require.NoError(t, err)

	assert.Empty(t, p.Sections)
	assert.Empty(t, p.Courses)
	assert.Empty(t, p.Programs)
	assert.Empty(t, p.TeachingAssignments)
	assert.Empty(t, p.AssessmentTasks)
}

func TestInstructorScope_RequiresUserID(t *testing.T) {
	svc := newTestService(newFixtureStore(), &fakeOutcomes{})

	_, err := svc.BuildDashboard(context.Background(), Viewer{
		Role:          models.RoleInstructor,
		InstitutionID: "1",
	})
	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Contains(t, scopeErr.Error(), "user id")
}
