package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

// TermService handles terms and course offerings
type TermService struct {
	termRepo        *repositories.TermRepository
	courseRepo      *repositories.CourseRepository
	institutionRepo *repositories.InstitutionRepository
}

// NewTermService creates a new term service instance
func NewTermService(
	termRepo *repositories.TermRepository,
	courseRepo *repositories.CourseRepository,
	institutionRepo *repositories.InstitutionRepository,
) *TermService {
	return &TermService{
		termRepo:        termRepo,
		courseRepo:      courseRepo,
		institutionRepo: institutionRepo,
	}
}

// CreateTerm creates a new term for an institution
func (s *TermService) CreateTerm(ctx context.Context, term *models.Term) error {
	if term.InstitutionID <= 0 {
		return fmt.Errorf("%w: institution ID must be positive", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(term.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !term.EndsOn.After(term.StartsOn) {
		return fmt.Errorf("%w: term must end after it starts", apperrors.ErrValidationFailed)
	}

	if _, err := s.institutionRepo.GetByID(ctx, term.InstitutionID); err != nil {
		return err
	}

	id, err := s.termRepo.CreateTerm(ctx, term)
	if err != nil {
		return err
	}
	term.ID = id
	return nil
}

// GetTermByID retrieves a term by ID
func (s *TermService) GetTermByID(ctx context.Context, id int64) (*models.Term, error) {
	if id <= 0 {
		return nil, apperrors.ErrTermNotFound
	}
	return s.termRepo.GetTermByID(ctx, id)
}

// GetTermsByInstitution retrieves an institution's terms, optionally
// restricted to active ones.
func (s *TermService) GetTermsByInstitution(ctx context.Context, institutionID int64, activeOnly bool) ([]*models.Term, error) {
	if institutionID <= 0 {
		return nil, apperrors.ErrInstitutionNotFound
	}
	if activeOnly {
		return s.termRepo.ListActive(ctx, institutionID)
	}
	return s.termRepo.ListByInstitution(ctx, institutionID)
}

// CreateOffering schedules a course into a term. The course and term
// must belong to the same institution.
func (s *TermService) CreateOffering(ctx context.Context, offering *models.CourseOffering) error {
	course, err := s.courseRepo.GetByID(ctx, offering.CourseID)
	if err != nil {
		return err
	}
	term, err := s.termRepo.GetTermByID(ctx, offering.TermID)
	if err != nil {
		return err
	}
	if course.InstitutionID != term.InstitutionID {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("course %d and term %d belong to different institutions", course.ID, term.ID))
	}

	id, err := s.termRepo.CreateOffering(ctx, offering)
	if err != nil {
		return err
	}
	offering.ID = id
	return nil
}

// GetOfferingByID retrieves a course offering by ID
func (s *TermService) GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	if id <= 0 {
		return nil, apperrors.ErrOfferingNotFound
	}
	return s.termRepo.GetOfferingByID(ctx, id)
}

// GetOfferingsByCourse retrieves a course's offerings across terms
func (s *TermService) GetOfferingsByCourse(ctx context.Context, courseID int64) ([]*models.CourseOffering, error) {
	if courseID <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.termRepo.ListOfferingsByCourse(ctx, courseID)
}
