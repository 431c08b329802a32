package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

// InstitutionService handles institution-related operations
type InstitutionService struct {
	institutionRepo *repositories.InstitutionRepository
}

// NewInstitutionService creates a new institution service instance
func NewInstitutionService(institutionRepo *repositories.InstitutionRepository) *InstitutionService {
	return &InstitutionService{institutionRepo: institutionRepo}
}

func validateInstitution(institution *models.Institution) error {
	if strings.TrimSpace(institution.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	code := strings.TrimSpace(institution.Code)
	if code == "" {
		return fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}
	if code != strings.ToUpper(code) {
		return fmt.Errorf("%w: code must be uppercase", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateInstitution creates a new institution
func (s *InstitutionService) CreateInstitution(ctx context.Context, institution *models.Institution) error {
	if err := validateInstitution(institution); err != nil {
		return err
	}

	id, err := s.institutionRepo.Create(ctx, institution)
	if err != nil {
		return err
	}
	institution.ID = id
	return nil
}

// GetInstitutionByID retrieves an institution by ID
func (s *InstitutionService) GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error) {
	if id <= 0 {
		return nil, apperrors.ErrInstitutionNotFound
	}
	return s.institutionRepo.GetByID(ctx, id)
}

// GetAllInstitutions retrieves all institutions
func (s *InstitutionService) GetAllInstitutions(ctx context.Context) ([]*models.Institution, error) {
	return s.institutionRepo.GetAll(ctx)
}

// UpdateInstitution updates an institution's name and code
func (s *InstitutionService) UpdateInstitution(ctx context.Context, institution *models.Institution) error {
	if err := validateInstitution(institution); err != nil {
		return err
	}
	return s.institutionRepo.Update(ctx, institution)
}

// DeleteInstitution deletes an institution without dependent data
func (s *InstitutionService) DeleteInstitution(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrInstitutionNotFound
	}
	return s.institutionRepo.Delete(ctx, id)
}
