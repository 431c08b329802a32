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

// InstitutionRepository handles institution database operations
type InstitutionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstitutionRepository creates a new InstitutionRepository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a new institution and returns its id.
func (r *InstitutionRepository) Create(ctx context.Context, institution *models.Institution) (int64, error) {
	sql, args, err := r.sb.Insert("institutions").
		Columns("name", "code").
		Values(institution.Name, institution.Code).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create institution query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrInstitutionAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create institution query")
		return 0, fmt.Errorf("error creating institution: %w", err)
	}

	return id, nil
}

// GetByID retrieves an institution by id.
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "created_at").
		From("institutions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get institution query: %w", err)
	}

	institution := &models.Institution{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&institution.ID, &institution.Name, &institution.Code, &institution.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Int64("institutionID", id).Msg("Error scanning institution row")
		return nil, fmt.Errorf("error getting institution by id: %w", err)
	}

	return institution, nil
}

// GetAll retrieves every institution ordered by name.
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "created_at").
		From("institutions").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list institutions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing institutions: %w", err)
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		institution := &models.Institution{}
		if err := rows.Scan(&institution.ID, &institution.Name, &institution.Code, &institution.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning institution row: %w", err)
		}
		institutions = append(institutions, institution)
	}

	return institutions, rows.Err()
}

// Update updates an institution's name and code.
func (r *InstitutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	sql, args, err := r.sb.Update("institutions").
		Set("name", institution.Name).
		Set("code", institution.Code).
		Where(squirrel.Eq{"id": institution.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update institution query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrInstitutionAlreadyExists
		}
		return fmt.Errorf("error updating institution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}

// Delete removes an institution. Institutions that still own programs,
// courses or users fail with ErrInstitutionHasRelations.
func (r *InstitutionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("institutions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete institution query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrInstitutionHasRelations
		}
		return fmt.Errorf("error deleting institution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}
