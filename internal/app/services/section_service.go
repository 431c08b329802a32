package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

// SectionService handles section scheduling and instructor assignment
type SectionService struct {
	sectionRepo *repositories.SectionRepository
	termRepo    *repositories.TermRepository
	userRepo    *repositories.UserRepository
}

// NewSectionService creates a new section service instance
func NewSectionService(
	sectionRepo *repositories.SectionRepository,
	termRepo *repositories.TermRepository,
	userRepo *repositories.UserRepository,
) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		termRepo:    termRepo,
		userRepo:    userRepo,
	}
}

func (s *SectionService) validateSection(ctx context.Context, section *models.Section) error {
	if strings.TrimSpace(section.Label) == "" {
		return fmt.Errorf("%w: label cannot be empty", apperrors.ErrValidationFailed)
	}
	if section.Enrollment != nil && *section.Enrollment < 0 {
		return fmt.Errorf("%w: enrollment cannot be negative", apperrors.ErrValidationFailed)
	}

	if _, err := s.termRepo.GetOfferingByID(ctx, section.OfferingID); err != nil {
		return err
	}

	// An unassigned section is valid; an assigned one needs a real
	// instructor-role user.
	if section.InstructorID != nil {
		user, err := s.userRepo.GetByID(ctx, *section.InstructorID)
		if err != nil {
			return err
		}
		if user.RoleType != models.RoleInstructor {
			return apperrors.NewBadRequestError(
				fmt.Sprintf("user %d has role %s, expected %s", user.ID, user.RoleType, models.RoleInstructor))
		}
	}

	return nil
}

// CreateSection creates a section under an existing offering
func (s *SectionService) CreateSection(ctx context.Context, section *models.Section) error {
	if err := s.validateSection(ctx, section); err != nil {
		return err
	}

	id, err := s.sectionRepo.Create(ctx, section)
	if err != nil {
		return err
	}
	section.ID = id
	return nil
}

// GetSectionByID retrieves a section by ID
func (s *SectionService) GetSectionByID(ctx context.Context, id int64) (*models.Section, error) {
	if id <= 0 {
		return nil, apperrors.ErrSectionNotFound
	}
	return s.sectionRepo.GetByID(ctx, id)
}

// GetSectionsByOffering retrieves an offering's sections
func (s *SectionService) GetSectionsByOffering(ctx context.Context, offeringID int64) ([]*models.Section, error) {
	if offeringID <= 0 {
		return nil, apperrors.ErrOfferingNotFound
	}
	return s.sectionRepo.ListByOffering(ctx, offeringID)
}

// GetSectionsByInstructor retrieves the sections a user teaches
func (s *SectionService) GetSectionsByInstructor(ctx context.Context, instructorID int64) ([]*models.Section, error) {
	if instructorID <= 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return s.sectionRepo.ListByInstructor(ctx, instructorID)
}

// UpdateSection updates a section's label, instructor, enrollment and status
func (s *SectionService) UpdateSection(ctx context.Context, section *models.Section) error {
	if err := s.validateSection(ctx, section); err != nil {
		return err
	}
	return s.sectionRepo.Update(ctx, section)
}

// DeleteSection deletes a section
func (s *SectionService) DeleteSection(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrSectionNotFound
	}
	return s.sectionRepo.Delete(ctx, id)
}
