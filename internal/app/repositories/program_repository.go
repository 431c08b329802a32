package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
	"github.com/ogulcan/clotrack/internal/pkg/logger"
)

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a new program and returns its id.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) (int64, error) {
	sql, args, err := r.sb.Insert("programs").
		Columns("institution_id", "name", "short_name").
		Values(program.InstitutionID, program.Name, program.ShortName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create program query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrProgramAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Msg("Error executing create program query")
		return 0, fmt.Errorf("error creating program: %w", err)
	}

	return id, nil
}

// GetByID retrieves a program by id, including its admin user ids.
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select("id", "institution_id", "name", "short_name", "created_at").
		From("programs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	program := &models.Program{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&program.ID, &program.InstitutionID, &program.Name, &program.ShortName, &program.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error getting program by id: %w", err)
	}

	adminIDs, err := r.ListAdminIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	program.AdminIDs = adminIDs

	return program, nil
}

// ListByInstitution retrieves an institution's programs ordered by name.
func (r *ProgramRepository) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.Program, error) {
	sql, args, err := r.sb.Select("id", "institution_id", "name", "short_name", "created_at").
		From("programs").
		Where(squirrel.Eq{"institution_id": institutionID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		program := &models.Program{}
		if err := rows.Scan(&program.ID, &program.InstitutionID, &program.Name, &program.ShortName, &program.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, program)
	}

	return programs, rows.Err()
}

// Update updates a program's name and short name.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	sql, args, err := r.sb.Update("programs").
		Set("name", program.Name).
		Set("short_name", program.ShortName).
		Where(squirrel.Eq{"id": program.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update program query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrProgramAlreadyExists
		}
		return fmt.Errorf("error updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// Delete removes a program. Programs still referenced by courses fail
// with ErrProgramHasRelations.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("programs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete program query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrProgramHasRelations
		}
		return fmt.Errorf("error deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// AddAdmin grants a user program-admin membership of the program.
func (r *ProgramRepository) AddAdmin(ctx context.Context, programID, userID int64) error {
	sql, args, err := r.sb.Insert("program_admins").
		Columns("program_id", "user_id").
		Values(programID, userID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add program admin query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error adding program admin: %w", err)
	}

	return nil
}

// RemoveAdmin revokes a user's program-admin membership.
func (r *ProgramRepository) RemoveAdmin(ctx context.Context, programID, userID int64) error {
	sql, args, err := r.sb.Delete("program_admins").
		Where(squirrel.Eq{"program_id": programID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove program admin query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error removing program admin: %w", err)
	}

	return nil
}

// ListAdminIDs returns the user ids administering a program.
func (r *ProgramRepository) ListAdminIDs(ctx context.Context, programID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("program_admins").
		Where(squirrel.Eq{"program_id": programID}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list program admins query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing program admins: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning program admin row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
