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
)

// TermRepository handles term and course-offering database operations
type TermRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTermRepository creates a new TermRepository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CreateTerm inserts a new term and returns its id.
func (r *TermRepository) CreateTerm(ctx context.Context, term *models.Term) (int64, error) {
	sql, args, err := r.sb.Insert("terms").
		Columns("institution_id", "name", "starts_on", "ends_on", "is_active").
		Values(term.InstitutionID, term.Name, term.StartsOn, term.EndsOn, term.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create term query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrInstitutionNotFound
		}
		return 0, fmt.Errorf("error creating term: %w", err)
	}

	return id, nil
}

// GetTermByID retrieves a term by id.
func (r *TermRepository) GetTermByID(ctx context.Context, id int64) (*models.Term, error) {
	sql, args, err := r.sb.Select("id", "institution_id", "name", "starts_on", "ends_on", "is_active").
		From("terms").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get term query: %w", err)
	}

	term := &models.Term{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&term.ID, &term.InstitutionID, &term.Name, &term.StartsOn, &term.EndsOn, &term.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTermNotFound
		}
		return nil, fmt.Errorf("error getting term by id: %w", err)
	}

	return term, nil
}

// ListByInstitution retrieves an institution's terms, newest first.
func (r *TermRepository) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.Term, error) {
	return r.listTerms(ctx, squirrel.Eq{"institution_id": institutionID})
}

// ListActive retrieves an institution's active terms, newest first.
func (r *TermRepository) ListActive(ctx context.Context, institutionID int64) ([]*models.Term, error) {
	return r.listTerms(ctx, squirrel.Eq{"institution_id": institutionID, "is_active": true})
}

func (r *TermRepository) listTerms(ctx context.Context, where squirrel.Eq) ([]*models.Term, error) {
	sql, args, err := r.sb.Select("id", "institution_id", "name", "starts_on", "ends_on", "is_active").
		From("terms").
		Where(where).
		OrderBy("starts_on DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list terms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing terms: %w", err)
	}
	defer rows.Close()

	var terms []*models.Term
	for rows.Next() {
		term := &models.Term{}
		if err := rows.Scan(&term.ID, &term.InstitutionID, &term.Name, &term.StartsOn, &term.EndsOn, &term.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning term row: %w", err)
		}
		terms = append(terms, term)
	}

	return terms, rows.Err()
}

// CreateOffering schedules a course in a term and returns the offering id.
func (r *TermRepository) CreateOffering(ctx context.Context, offering *models.CourseOffering) (int64, error) {
	sql, args, err := r.sb.Insert("course_offerings").
		Columns("course_id", "term_id").
		Values(offering.CourseID, offering.TermID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create offering query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		return 0, fmt.Errorf("error creating offering: %w", err)
	}

	return id, nil
}

// GetOfferingByID retrieves a course offering by id.
func (r *TermRepository) GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	sql, args, err := r.sb.Select("id", "course_id", "term_id").
		From("course_offerings").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get offering query: %w", err)
	}

	offering := &models.CourseOffering{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&offering.ID, &offering.CourseID, &offering.TermID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error getting offering by id: %w", err)
	}

	return offering, nil
}

// ListOfferingsByCourse retrieves a course's offerings.
func (r *TermRepository) ListOfferingsByCourse(ctx context.Context, courseID int64) ([]*models.CourseOffering, error) {
	sql, args, err := r.sb.Select("id", "course_id", "term_id").
		From("course_offerings").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("term_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list offerings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing offerings: %w", err)
	}
	defer rows.Close()

	var offerings []*models.CourseOffering
	for rows.Next() {
		offering := &models.CourseOffering{}
		if err := rows.Scan(&offering.ID, &offering.CourseID, &offering.TermID); err != nil {
			return nil, fmt.Errorf("error scanning offering row: %w", err)
		}
		offerings = append(offerings, offering)
	}

	return offerings, rows.Err()
}
