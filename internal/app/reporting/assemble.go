package reporting

import (
	"context"
	"time"
)

// Summary is the payload's headline count block.
type Summary struct {
	InstitutionCount int `json:"institution_count"`
	ProgramCount     int `json:"program_count"`
	CourseCount      int `json:"course_count"`
	UserCount        int `json:"user_count"`
	FacultyCount     int `json:"faculty_count"`
	SectionCount     int `json:"section_count"`
	TermCount        int `json:"term_count"`
	StudentCount     int `json:"student_count"`
}

// Metadata stamps a payload with the viewer context it was built for.
type Metadata struct {
	UserRole    string    `json:"user_role"`
	DataScope   DataScope `json:"data_scope"`
	GeneratedAt time.Time `json:"generated_at"`
}

// TeachingAssignment is one section of the instructor view.
type TeachingAssignment struct {
	SectionID    string `json:"section_id"`
	CourseID     string `json:"course_id"`
	CourseNumber string `json:"course_number"`
	CourseTitle  string `json:"course_title"`
	TermID       string `json:"term_id"`
	Enrollment   int    `json:"enrollment"`
	Status       string `json:"status"`
}

// AssessmentTask is an instructor's outstanding section: one whose
// status has not reached the completed vocabulary yet.
type AssessmentTask struct {
	SectionID    string `json:"section_id"`
	CourseID     string `json:"course_id"`
	CourseNumber string `json:"course_number"`
	Status       string `json:"status"`
}

// Payload is the single response object of a dashboard build. Fields an
// inapplicable scope does not populate are present as empty
// collections, never omitted, so consumers can index unconditionally.
type Payload struct {
	Summary             Summary              `json:"summary"`
	Institutions        []*Annotated         `json:"institutions"`
	Programs            []*Annotated         `json:"programs"`
	Courses             []*Annotated         `json:"courses"`
	Users               []*Annotated         `json:"users"`
	Instructors         []*Annotated         `json:"instructors"`
	Sections            []*Annotated         `json:"sections"`
	Terms               []*Annotated         `json:"terms"`
	ProgramOverview     []ProgramOverview    `json:"program_overview"`
	FacultyAssignments  []FacultyAssignment  `json:"faculty_assignments"`
	TeachingAssignments []TeachingAssignment `json:"teaching_assignments"`
	AssessmentTasks     []AssessmentTask     `json:"assessment_tasks"`
	Activity            []ActivityEvent      `json:"activity"`
	Metadata            Metadata             `json:"metadata"`
}

func newPayload() *Payload {
	return &Payload{
		Institutions:        []*Annotated{},
		Programs:            []*Annotated{},
		Courses:             []*Annotated{},
		Users:               []*Annotated{},
		Instructors:         []*Annotated{},
		Sections:            []*Annotated{},
		Terms:               []*Annotated{},
		ProgramOverview:     []ProgramOverview{},
		FacultyAssignments:  []FacultyAssignment{},
		TeachingAssignments: []TeachingAssignment{},
		AssessmentTasks:     []AssessmentTask{},
		Activity:            []ActivityEvent{},
	}
}

// assembleSlice folds one institution's collections into the payload:
// annotated entity lists, per-program overview, and either faculty
// rollups or the instructor task lists depending on the scope.
func (s *Service) assembleSlice(ctx context.Context, p *Payload, sd *scopedData, slice institutionData) {
	institutionID, _ := RecordID(slice.institution, institutionKeys...)
	institutionName := stringField(slice.institution, "name")

	annotate := func(rec Record) *Annotated {
		return Annotate(rec).
			Set("institution_id", institutionID).
			Set("institution_name", institutionName)
	}

	p.Institutions = append(p.Institutions, Annotate(slice.institution).Set("institution_id", institutionID))

	programsByID := indexByKey(slice.programs, programKeys...)
	coursesByID := indexByKey(slice.courses, courseKeys...)
	sectionsByCourse := groupBy(slice.sections, sectionCourseID)
	sectionsByInstructor := groupBy(slice.sections, sectionInstructorID)
	directory := facultyDirectory(slice.users, slice.instructors)
	facultyByID := indexByKey(directory, userKeys...)

	for _, program := range slice.programs {
		p.Programs = append(p.Programs, annotate(program))
	}

	for _, course := range slice.courses {
		courseID, _ := RecordID(course, courseKeys...)
		annotated := annotate(course)
		if sd.scope == ScopeProgram {
			if programID, ok := sd.courseProgram[courseID]; ok {
				annotated.Set("program_id", programID)
				if program, known := programsByID[programID]; known {
					annotated.Set("program_name", programName(program))
				}
			}
		}
		s.enrichCourse(ctx, annotated, courseID)
		p.Courses = append(p.Courses, annotated)
	}

	for _, user := range slice.users {
		p.Users = append(p.Users, annotate(user))
	}
	for _, instructor := range slice.instructors {
		p.Instructors = append(p.Instructors, annotate(instructor))
	}
	for _, section := range slice.sections {
		p.Sections = append(p.Sections, annotate(section))
	}
	for _, term := range slice.terms {
		p.Terms = append(p.Terms, annotate(term))
	}

	courseIDsByProgram := attributeCourses(sd, slice, programsByID)
	for _, program := range slice.programs {
		programID, ok := RecordID(program, programKeys...)
		if !ok {
			continue
		}
		p.ProgramOverview = append(p.ProgramOverview, buildProgramOverview(
			program,
			institutionID,
			institutionName,
			courseIDsByProgram[programID],
			sectionsByCourse,
			facultyByID,
		))
	}

	if sd.scope == ScopeInstructor {
		p.TeachingAssignments = append(p.TeachingAssignments, buildTeachingAssignments(slice.sections, coursesByID)...)
		p.AssessmentTasks = append(p.AssessmentTasks, buildAssessmentTasks(slice.sections, coursesByID)...)
	} else {
		p.FacultyAssignments = append(p.FacultyAssignments,
			buildFacultyAssignments(directory, institutionID, sectionsByInstructor, coursesByID)...)
	}

	p.Summary.InstitutionCount++
	p.Summary.ProgramCount += len(slice.programs)
	p.Summary.CourseCount += len(slice.courses)
	p.Summary.UserCount += len(slice.users)
	p.Summary.FacultyCount += len(directory)
	p.Summary.SectionCount += len(slice.sections)
	p.Summary.TermCount += len(slice.terms)
	for _, section := range slice.sections {
		p.Summary.StudentCount += enrollmentOf(section)
	}
}

// attributeCourses maps each in-scope program to the ordered, distinct
// course ids attributed to it. In the program-admin scope attribution
// comes from the resolver's first-matching-program map; in every other
// scope a course counts for each program it references.
func attributeCourses(sd *scopedData, slice institutionData, programsByID map[string]Record) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	add := func(programID, courseID string) {
		if seen[programID] == nil {
			seen[programID] = make(map[string]struct{})
		}
		if _, dup := seen[programID][courseID]; dup {
			return
		}
		seen[programID][courseID] = struct{}{}
		out[programID] = append(out[programID], courseID)
	}

	for _, course := range slice.courses {
		courseID, ok := RecordID(course, courseKeys...)
		if !ok {
			continue
		}
		if sd.scope == ScopeProgram {
			if programID, ok := sd.courseProgram[courseID]; ok {
				add(programID, courseID)
			}
			continue
		}
		for programID := range programIDSet(course) {
			if _, known := programsByID[programID]; known {
				add(programID, courseID)
			}
		}
	}

	return out
}

func buildTeachingAssignments(sections []Record, coursesByID map[string]Record) []TeachingAssignment {
	assignments := make([]TeachingAssignment, 0, len(sections))
	for _, section := range sections {
		sectionID, ok := RecordID(section, sectionKeys...)
		if !ok {
			continue
		}
		assignment := TeachingAssignment{
			SectionID:  sectionID,
			TermID:     stringField(section, "term_id"),
			Enrollment: enrollmentOf(section),
			Status:     stringField(section, "status"),
		}
		if courseID, ok := sectionCourseID(section); ok {
			assignment.CourseID = courseID
			if course, known := coursesByID[courseID]; known {
				assignment.CourseNumber = stringField(course, "course_number")
				assignment.CourseTitle = stringField(course, "course_title")
			}
		}
		assignments = append(assignments, assignment)
	}
	return assignments
}

func buildAssessmentTasks(sections []Record, coursesByID map[string]Record) []AssessmentTask {
	tasks := []AssessmentTask{}
	for _, section := range sections {
		if isCompleted(section) {
			continue
		}
		sectionID, ok := RecordID(section, sectionKeys...)
		if !ok {
			continue
		}
		task := AssessmentTask{
			SectionID: sectionID,
			Status:    stringField(section, "status"),
		}
		if courseID, ok := sectionCourseID(section); ok {
			task.CourseID = courseID
			if course, known := coursesByID[courseID]; known {
				task.CourseNumber = stringField(course, "course_number")
			}
		}
		tasks = append(tasks, task)
	}
	return tasks
}
