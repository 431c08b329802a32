package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

// CourseService handles courses and their program memberships
type CourseService struct {
	courseRepo      *repositories.CourseRepository
	programRepo     *repositories.ProgramRepository
	institutionRepo *repositories.InstitutionRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	programRepo *repositories.ProgramRepository,
	institutionRepo *repositories.InstitutionRepository,
) *CourseService {
	return &CourseService{
		courseRepo:      courseRepo,
		programRepo:     programRepo,
		institutionRepo: institutionRepo,
	}
}

func validateCourse(course *models.Course) error {
	if course.InstitutionID <= 0 {
		return fmt.Errorf("%w: institution ID must be positive", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(course.CourseNumber) == "" {
		return fmt.Errorf("%w: course number cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(course.CourseTitle) == "" {
		return fmt.Errorf("%w: course title cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// checkProgramsBelong verifies every program id exists and belongs to
// the course's institution. A course never spans institutions.
func (s *CourseService) checkProgramsBelong(ctx context.Context, institutionID int64, programIDs []int64) error {
	for _, programID := range programIDs {
		program, err := s.programRepo.GetByID(ctx, programID)
		if err != nil {
			return err
		}
		if program.InstitutionID != institutionID {
			return apperrors.NewBadRequestError(
				fmt.Sprintf("program %d does not belong to institution %d", programID, institutionID))
		}
	}
	return nil
}

// CreateCourse creates a course with an optional program membership set
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := validateCourse(course); err != nil {
		return err
	}
	if _, err := s.institutionRepo.GetByID(ctx, course.InstitutionID); err != nil {
		return err
	}
	if err := s.checkProgramsBelong(ctx, course.InstitutionID, course.ProgramIDs); err != nil {
		return err
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return err
	}
	course.ID = id
	return nil
}

// GetCourseByID retrieves a course by ID with its program memberships
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.courseRepo.GetByID(ctx, id)
}

// GetCoursesByInstitution retrieves an institution's courses
func (s *CourseService) GetCoursesByInstitution(ctx context.Context, institutionID int64) ([]*models.Course, error) {
	if institutionID <= 0 {
		return nil, apperrors.ErrInstitutionNotFound
	}
	return s.courseRepo.ListByInstitution(ctx, institutionID)
}

// GetCoursesByProgram retrieves a program's courses
func (s *CourseService) GetCoursesByProgram(ctx context.Context, programID int64) ([]*models.Course, error) {
	if programID <= 0 {
		return nil, apperrors.ErrProgramNotFound
	}
	return s.courseRepo.ListByProgram(ctx, programID)
}

// UpdateCourse updates a course's number and title
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := validateCourse(course); err != nil {
		return err
	}
	return s.courseRepo.Update(ctx, course)
}

// SetCoursePrograms replaces a course's program membership set
func (s *CourseService) SetCoursePrograms(ctx context.Context, courseID int64, programIDs []int64) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.checkProgramsBelong(ctx, course.InstitutionID, programIDs); err != nil {
		return err
	}
	return s.courseRepo.SetPrograms(ctx, courseID, programIDs)
}

// DeleteCourse deletes a course
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrCourseNotFound
	}
	return s.courseRepo.Delete(ctx, id)
}
