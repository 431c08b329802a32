package reporting

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// completedVocabulary is the set of section statuses, lower-cased, that
// count as finished assessment work.
var completedVocabulary = map[string]struct{}{
	"completed": {},
	"done":      {},
}

// AssessmentProgress summarizes section completion.
type AssessmentProgress struct {
	Completed       int     `json:"completed"`
	Total           int     `json:"total"`
	PercentComplete float64 `json:"percent_complete"`
}

// ProgramOverview carries the per-program metrics block.
type ProgramOverview struct {
	ProgramID       string             `json:"program_id"`
	ProgramName     string             `json:"program_name"`
	InstitutionID   string             `json:"institution_id"`
	CourseCount     int                `json:"course_count"`
	SectionCount    int                `json:"section_count"`
	FacultyCount    int                `json:"faculty_count"`
	StudentCount    int                `json:"student_count"`
	Assessment      AssessmentProgress `json:"assessment_progress"`
	Faculty         []*Annotated       `json:"faculty"`
}

// FacultyAssignment is one faculty member's teaching rollup.
type FacultyAssignment struct {
	UserID        string   `json:"user_id"`
	DisplayName   string   `json:"display_name"`
	InstitutionID string   `json:"institution_id"`
	CourseCount   int      `json:"course_count"`
	SectionCount  int      `json:"section_count"`
	StudentCount  int      `json:"student_count"`
	Programs      []string `json:"programs"`
}

// enrollmentOf returns a section's enrollment as an integer. Absent or
// malformed values contribute zero; they must never fail a metrics run.
func enrollmentOf(section Record) int {
	switch v := section["enrollment"].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		return 0
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		return 0
	default:
		return 0
	}
}

// isCompleted reports whether a section's free-text status falls in the
// completed vocabulary.
func isCompleted(section Record) bool {
	status, _ := section["status"].(string)
	_, ok := completedVocabulary[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// percentComplete rounds completed/total to one decimal place; zero
// total yields exactly 0 rather than a division error.
func percentComplete(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// assessmentProgress tallies completion over a set of sections.
func assessmentProgress(sections []Record) AssessmentProgress {
	progress := AssessmentProgress{Total: len(sections)}
	for _, section := range sections {
		if isCompleted(section) {
			progress.Completed++
		}
	}
	progress.PercentComplete = percentComplete(progress.Completed, progress.Total)
	return progress
}

// buildProgramOverview computes the metrics block for one program from
// its attributed course ids and the section index.
//
// Invariants preserved here: course_count never exceeds the number of
// distinct course ids attributed to the program; faculty_count is the
// cardinality of the instructor-id set (an instructor on two sections
// of the same program counts once); student_count only sums numeric
// enrollment values.
func buildProgramOverview(
	program Record,
	institutionID string,
	institutionName string,
	courseIDs []string,
	sectionsByCourse map[string][]Record,
	facultyByID map[string]Record,
) ProgramOverview {
	programID, _ := RecordID(program, programKeys...)
	overview := ProgramOverview{
		ProgramID:     programID,
		ProgramName:   programName(program),
		InstitutionID: institutionID,
		CourseCount:   len(courseIDs),
		Faculty:       []*Annotated{},
	}

	var sections []Record
	seenInstructors := make(map[string]struct{})
	var instructorOrder []string
	for _, courseID := range courseIDs {
		for _, section := range sectionsByCourse[courseID] {
			sections = append(sections, section)
			overview.StudentCount += enrollmentOf(section)
			if instructorID, ok := sectionInstructorID(section); ok {
				if _, seen := seenInstructors[instructorID]; !seen {
					seenInstructors[instructorID] = struct{}{}
					instructorOrder = append(instructorOrder, instructorID)
				}
			}
		}
	}

	overview.SectionCount = len(sections)
	overview.FacultyCount = len(seenInstructors)
	overview.Assessment = assessmentProgress(sections)

	// Roster comes from the already-fetched faculty directory, never a
	// fresh read. Instructor ids without a directory record are counted
	// above but cannot be listed.
	for _, instructorID := range instructorOrder {
		faculty, ok := facultyByID[instructorID]
		if !ok {
			continue
		}
		overview.Faculty = append(overview.Faculty,
			Annotate(faculty).
				Set("institution_id", institutionID).
				Set("institution_name", institutionName))
	}

	return overview
}

// programName prefers the full name over the short name.
func programName(program Record) string {
	if name := stringField(program, "name"); name != "" {
		return name
	}
	return stringField(program, "short_name")
}

// facultyDirectory merges the raw user list (instructor-role entries
// only) with the dedicated instructor list, deduplicating by user id.
// The first record seen for an id wins so the richer user row is kept.
func facultyDirectory(users, instructors []Record) []Record {
	var directory []Record
	seen := make(map[string]struct{})

	add := func(rec Record) {
		id, ok := RecordID(rec, userKeys...)
		if !ok {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		directory = append(directory, rec)
	}

	for _, user := range users {
		role := strings.ToUpper(stringField(user, "role_type"))
		if role == "INSTRUCTOR" {
			add(user)
		}
	}
	for _, instructor := range instructors {
		add(instructor)
	}

	return directory
}

// displayNameOf builds a human label for a faculty record.
func displayNameOf(rec Record) string {
	if name := stringField(rec, "display_name"); name != "" {
		return name
	}
	name := strings.TrimSpace(stringField(rec, "first_name") + " " + stringField(rec, "last_name"))
	if name != "" {
		return name
	}
	return stringField(rec, "email")
}

// buildFacultyAssignments produces one rollup entry per directory
// member: distinct courses taught, section count, enrollment sum and
// the program ids their courses touch.
func buildFacultyAssignments(
	directory []Record,
	institutionID string,
	sectionsByInstructor map[string][]Record,
	coursesByID map[string]Record,
) []FacultyAssignment {
	assignments := make([]FacultyAssignment, 0, len(directory))
	for _, faculty := range directory {
		userID, ok := RecordID(faculty, userKeys...)
		if !ok {
			continue
		}

		assignment := FacultyAssignment{
			UserID:        userID,
			DisplayName:   displayNameOf(faculty),
			InstitutionID: institutionID,
			Programs:      []string{},
		}

		seenCourses := make(map[string]struct{})
		seenPrograms := make(map[string]struct{})
		for _, section := range sectionsByInstructor[userID] {
			assignment.SectionCount++
			assignment.StudentCount += enrollmentOf(section)

			courseID, ok := sectionCourseID(section)
			if !ok {
				continue
			}
			if _, dup := seenCourses[courseID]; !dup {
				seenCourses[courseID] = struct{}{}
				assignment.CourseCount++
			}
			if course, ok := coursesByID[courseID]; ok {
				for programID := range programIDSet(course) {
					if _, dup := seenPrograms[programID]; !dup {
						seenPrograms[programID] = struct{}{}
						assignment.Programs = append(assignment.Programs, programID)
					}
				}
			}
		}
		sort.Strings(assignment.Programs)

		assignments = append(assignments, assignment)
	}
	return assignments
}
