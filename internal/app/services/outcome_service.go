package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

// OutcomeService handles the learning outcome approval workflow.
// Outcomes move DRAFT -> SUBMITTED -> APPROVED or REJECTED; a rejected
// outcome returns to DRAFT on edit.
type OutcomeService struct {
	outcomeRepo *repositories.OutcomeRepository
	courseRepo  *repositories.CourseRepository
	logger      zerolog.Logger
}

// NewOutcomeService creates a new outcome service instance
func NewOutcomeService(
	outcomeRepo *repositories.OutcomeRepository,
	courseRepo *repositories.CourseRepository,
	logger zerolog.Logger,
) *OutcomeService {
	return &OutcomeService{
		outcomeRepo: outcomeRepo,
		courseRepo:  courseRepo,
		logger:      logger,
	}
}

func validateOutcome(outcome *models.CourseOutcome) error {
	if strings.TrimSpace(outcome.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(outcome.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateOutcome creates an outcome in DRAFT status
func (s *OutcomeService) CreateOutcome(ctx context.Context, outcome *models.CourseOutcome) error {
	if err := validateOutcome(outcome); err != nil {
		return err
	}
	if _, err := s.courseRepo.GetByID(ctx, outcome.CourseID); err != nil {
		return err
	}

	outcome.Status = models.OutcomeStatusDraft
	id, err := s.outcomeRepo.Create(ctx, outcome)
	if err != nil {
		return err
	}
	outcome.ID = id
	return nil
}

// GetOutcomeByID retrieves an outcome by ID
func (s *OutcomeService) GetOutcomeByID(ctx context.Context, id int64) (*models.CourseOutcome, error) {
	if id <= 0 {
		return nil, apperrors.ErrOutcomeNotFound
	}
	return s.outcomeRepo.GetByID(ctx, id)
}

// GetOutcomesByCourse retrieves a course's outcomes
func (s *OutcomeService) GetOutcomesByCourse(ctx context.Context, courseID int64) ([]*models.CourseOutcome, error) {
	if courseID <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.outcomeRepo.ListByCourse(ctx, courseID)
}

// UpdateOutcome edits an outcome's code and description. Editing a
// rejected outcome moves it back to DRAFT so it can be resubmitted;
// approved and submitted outcomes are immutable.
func (s *OutcomeService) UpdateOutcome(ctx context.Context, outcome *models.CourseOutcome) error {
	if err := validateOutcome(outcome); err != nil {
		return err
	}

	current, err := s.outcomeRepo.GetByID(ctx, outcome.ID)
	if err != nil {
		return err
	}

	switch current.Status {
	case models.OutcomeStatusDraft:
		return s.outcomeRepo.Update(ctx, outcome)
	case models.OutcomeStatusRejected:
		if err := s.outcomeRepo.Update(ctx, outcome); err != nil {
			return err
		}
		return s.outcomeRepo.SetStatus(ctx, outcome.ID, models.OutcomeStatusRejected, models.OutcomeStatusDraft, nil, nil)
	default:
		return fmt.Errorf("%w: cannot edit an outcome in status %s", apperrors.ErrInvalidOutcomeTransition, current.Status)
	}
}

// SubmitOutcome moves a draft outcome into review
func (s *OutcomeService) SubmitOutcome(ctx context.Context, id int64) error {
	return s.outcomeRepo.SetStatus(ctx, id, models.OutcomeStatusDraft, models.OutcomeStatusSubmitted, nil, nil)
}

// ApproveOutcome approves a submitted outcome
func (s *OutcomeService) ApproveOutcome(ctx context.Context, id, reviewerID int64, note *string) error {
	if err := s.reviewOutcome(ctx, id, reviewerID, note, models.OutcomeStatusApproved); err != nil {
		return err
	}
	s.logger.Info().Int64("outcomeID", id).Int64("reviewerID", reviewerID).Msg("Outcome approved")
	return nil
}

// RejectOutcome rejects a submitted outcome with a review note
func (s *OutcomeService) RejectOutcome(ctx context.Context, id, reviewerID int64, note *string) error {
	if err := s.reviewOutcome(ctx, id, reviewerID, note, models.OutcomeStatusRejected); err != nil {
		return err
	}
	s.logger.Info().Int64("outcomeID", id).Int64("reviewerID", reviewerID).Msg("Outcome rejected")
	return nil
}

// reviewOutcome records a review verdict. Authors cannot review their
// own outcomes, whatever their role.
func (s *OutcomeService) reviewOutcome(ctx context.Context, id, reviewerID int64, note *string, to models.OutcomeStatus) error {
	current, err := s.outcomeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.CreatedBy == reviewerID {
		return apperrors.NewForbiddenError("An outcome cannot be reviewed by its author")
	}
	return s.outcomeRepo.SetStatus(ctx, id, models.OutcomeStatusSubmitted, to, &reviewerID, note)
}

// DeleteOutcome removes a draft or rejected outcome
func (s *OutcomeService) DeleteOutcome(ctx context.Context, id int64) error {
	current, err := s.outcomeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == models.OutcomeStatusApproved || current.Status == models.OutcomeStatusSubmitted {
		return fmt.Errorf("%w: cannot delete an outcome in status %s", apperrors.ErrInvalidOutcomeTransition, current.Status)
	}
	return s.outcomeRepo.Delete(ctx, id)
}
