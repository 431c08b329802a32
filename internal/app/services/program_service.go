package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

// ProgramService handles program-related operations, including the
// program admin assignments that drive program-scoped dashboards.
type ProgramService struct {
	programRepo     *repositories.ProgramRepository
	institutionRepo *repositories.InstitutionRepository
	userRepo        *repositories.UserRepository
}

// NewProgramService creates a new program service instance
func NewProgramService(
	programRepo *repositories.ProgramRepository,
	institutionRepo *repositories.InstitutionRepository,
	userRepo *repositories.UserRepository,
) *ProgramService {
	return &ProgramService{
		programRepo:     programRepo,
		institutionRepo: institutionRepo,
		userRepo:        userRepo,
	}
}

func validateProgram(program *models.Program) error {
	if program.InstitutionID <= 0 {
		return fmt.Errorf("%w: institution ID must be positive", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(program.ShortName) == "" {
		return fmt.Errorf("%w: short name cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateProgram creates a new program under an existing institution
func (s *ProgramService) CreateProgram(ctx context.Context, program *models.Program) error {
	if err := validateProgram(program); err != nil {
		return err
	}

	if _, err := s.institutionRepo.GetByID(ctx, program.InstitutionID); err != nil {
		return err
	}

	id, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return err
	}
	program.ID = id
	return nil
}

// GetProgramByID retrieves a program by ID with its admin set
func (s *ProgramService) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	if id <= 0 {
		return nil, apperrors.ErrProgramNotFound
	}
	return s.programRepo.GetByID(ctx, id)
}

// GetProgramsByInstitution retrieves an institution's programs
func (s *ProgramService) GetProgramsByInstitution(ctx context.Context, institutionID int64) ([]*models.Program, error) {
	if institutionID <= 0 {
		return nil, apperrors.ErrInstitutionNotFound
	}
	return s.programRepo.ListByInstitution(ctx, institutionID)
}

// UpdateProgram updates a program's name fields
func (s *ProgramService) UpdateProgram(ctx context.Context, program *models.Program) error {
	if err := validateProgram(program); err != nil {
		return err
	}
	return s.programRepo.Update(ctx, program)
}

// DeleteProgram deletes a program without dependent courses
func (s *ProgramService) DeleteProgram(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrProgramNotFound
	}
	return s.programRepo.Delete(ctx, id)
}

// AssignAdmin makes a user an administrator of a program. The user must
// be a program admin of the same institution as the program.
func (s *ProgramService) AssignAdmin(ctx context.Context, programID, userID int64) error {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.RoleType != models.RoleProgramAdmin {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("user %d has role %s, expected %s", userID, user.RoleType, models.RoleProgramAdmin))
	}
	if user.InstitutionID == nil || *user.InstitutionID != program.InstitutionID {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("user %d does not belong to institution %d", userID, program.InstitutionID))
	}

	if err := s.programRepo.AddAdmin(ctx, programID, userID); err != nil {
		return err
	}

	// Keep the user's program membership in sync so scope resolution
	// sees the assignment.
	programIDs, err := s.userRepo.ProgramIDs(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range programIDs {
		if id == programID {
			return nil
		}
	}
	return s.userRepo.SetPrograms(ctx, userID, append(programIDs, programID))
}

// RemoveAdmin withdraws a user's administration of a program
func (s *ProgramService) RemoveAdmin(ctx context.Context, programID, userID int64) error {
	if err := s.programRepo.RemoveAdmin(ctx, programID, userID); err != nil {
		return err
	}

	programIDs, err := s.userRepo.ProgramIDs(ctx, userID)
	if err != nil {
		return err
	}
	remaining := programIDs[:0]
	for _, id := range programIDs {
		if id != programID {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == len(programIDs) {
		return nil
	}
	if err := s.userRepo.SetPrograms(ctx, userID, remaining); err != nil {
		if errors.Is(err, apperrors.ErrProgramNotFound) {
			return nil
		}
		return err
	}
	return nil
}
