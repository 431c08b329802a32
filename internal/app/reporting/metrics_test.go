package reporting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentOf_NumericForms(t *testing.T) {
	assert.Equal(t, 30, enrollmentOf(Record{"enrollment": int64(30)}))
	assert.Equal(t, 30, enrollmentOf(Record{"enrollment": float64(30)}))
	assert.Equal(t, 30, enrollmentOf(Record{"enrollment": json.Number("30")}))
	assert.Equal(t, 30, enrollmentOf(Record{"enrollment": " 30 "}))
}

func TestEnrollmentOf_MalformedContributesZero(t *testing.T) {
	assert.Equal(t, 0, enrollmentOf(Record{"enrollment": "lots"}))
	assert.Equal(t, 0, enrollmentOf(Record{"enrollment": nil}))
	assert.Equal(t, 0, enrollmentOf(Record{}))
}

func TestIsCompleted_VocabularyIsCaseInsensitive(t *testing.T) {
	assert.True(t, isCompleted(Record{"status": "COMPLETED"}))
	assert.True(t, isCompleted(Record{"status": " done "}))
	assert.False(t, isCompleted(Record{"status": "active"}))
	assert.False(t, isCompleted(Record{}))
}

func TestPercentComplete_RoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 75.0, percentComplete(3, 4))
	assert.Equal(t, 33.3, percentComplete(1, 3))
	assert.Equal(t, 66.7, percentComplete(2, 3))
	assert.Equal(t, 100.0, percentComplete(5, 5))
}

func TestPercentComplete_ZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, percentComplete(0, 0))
}

func TestAssessmentProgress(t *testing.T) {
	sections := []Record{
		{"status": "completed"},
		{"status": "active"},
		{"status": "done"},
		{"status": "planned"},
	}

	progress := assessmentProgress(sections)
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 50.0, progress.PercentComplete)
}

func TestBuildProgramOverview(t *testing.T) {
	program := Record{"id": "p1", "name": "Computer Science"}
	sectionsByCourse := map[string][]Record{
		"c1": {
			{"id": "s1", "course_id": "c1", "instructor_id": "u1", "enrollment": int64(25), "status": "completed"},
		},
		"c2": {
			{"id": "s2", "course_id": "c2", "instructor_id": "u1", "enrollment": int64(20), "status": "active"},
		},
	}
	facultyByID := map[string]Record{
		"u1": {"id": "u1", "first_name": "Ada", "last_name": "Lovelace"},
	}

	overview := buildProgramOverview(program, "i1", "Tech University",
		[]string{"c1", "c2"}, sectionsByCourse, facultyByID)

	assert.Equal(t, "p1", overview.ProgramID)
	assert.Equal(t, "Computer Science", overview.ProgramName)
	assert.Equal(t, 2, overview.CourseCount)
	assert.Equal(t, 2, overview.SectionCount)
	// Same instructor on two sections counts once.
	assert.Equal(t, 1, overview.FacultyCount)
	assert.Equal(t, 45, overview.StudentCount)
	assert.Equal(t, 1, overview.Assessment.Completed)
	assert.Equal(t, 50.0, overview.Assessment.PercentComplete)

	require.Len(t, overview.Faculty, 1)
	name, ok := overview.Faculty[0].Get("institution_name")
	require.True(t, ok)
	assert.Equal(t, "Tech University", name)
}

func TestBuildProgramOverview_InstructorWithoutDirectoryRecord(t *testing.T) {
	sectionsByCourse := map[string][]Record{
		"c1": {{"id": "s1", "course_id": "c1", "instructor_id": "ghost", "enrollment": int64(10)}},
	}

	overview := buildProgramOverview(Record{"id": "p1", "short_name": "CS"}, "i1", "",
		[]string{"c1"}, sectionsByCourse, map[string]Record{})

	// Counted but not listed.
	assert.Equal(t, 1, overview.FacultyCount)
	assert.Empty(t, overview.Faculty)
	assert.Equal(t, "CS", overview.ProgramName)
}

func TestFacultyDirectory_MergesAndDeduplicates(t *testing.T) {
	users := []Record{
		{"id": "u1", "role_type": "INSTRUCTOR", "email": "rich@tu.edu", "first_name": "Rich"},
		{"id": "u2", "role_type": "PROGRAM_ADMIN"},
	}
	instructors := []Record{
		{"id": "u1", "email": "sparse@tu.edu"},
		{"id": "u3", "email": "only@tu.edu"},
	}

	directory := facultyDirectory(users, instructors)
	require.Len(t, directory, 2)
	// The richer user row wins for u1; the admin row never enters.
	assert.Equal(t, "Rich", directory[0]["first_name"])
	assert.Equal(t, "u3", directory[1]["id"])
}

func TestDisplayNameOf(t *testing.T) {
	assert.Equal(t, "Preset", displayNameOf(Record{"display_name": "Preset", "first_name": "x"}))
	assert.Equal(t, "Ada Lovelace", displayNameOf(Record{"first_name": "Ada", "last_name": "Lovelace"}))
	assert.Equal(t, "Ada", displayNameOf(Record{"first_name": "Ada"}))
	assert.Equal(t, "a@tu.edu", displayNameOf(Record{"email": "a@tu.edu"}))
}

func TestBuildFacultyAssignments(t *testing.T) {
	directory := []Record{
		{"id": "u1", "first_name": "Ada", "last_name": "Lovelace"},
		{"id": "u2", "email": "idle@tu.edu"},
	}
	sectionsByInstructor := map[string][]Record{
		"u1": {
			{"id": "s1", "course_id": "c1", "enrollment": int64(25)},
			{"id": "s2", "course_id": "c1", "enrollment": int64(20)},
			{"id": "s3", "course_id": "c2", "enrollment": int64(5)},
		},
	}
	coursesByID := map[string]Record{
		"c1": {"id": "c1", "program_ids": []any{"p2", "p1"}},
		"c2": {"id": "c2", "program_id": "p1"},
	}

	assignments := buildFacultyAssignments(directory, "i1", sectionsByInstructor, coursesByID)
	require.Len(t, assignments, 2)

	ada := assignments[0]
	assert.Equal(t, "Ada Lovelace", ada.DisplayName)
	assert.Equal(t, 2, ada.CourseCount)
	assert.Equal(t, 3, ada.SectionCount)
	assert.Equal(t, 50, ada.StudentCount)
	assert.Equal(t, []string{"p1", "p2"}, ada.Programs)

	idle := assignments[1]
	assert.Equal(t, 0, idle.SectionCount)
	assert.Equal(t, []string{}, idle.Programs)
}
