package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
	"github.com/ogulcan/clotrack/internal/pkg/logger"
)

var outcomeColumns = []string{
	"id", "course_id", "code", "description", "status",
	"created_by", "reviewed_by", "review_note", "created_at", "updated_at",
}

// OutcomeRepository handles course learning outcome database operations
type OutcomeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOutcomeRepository creates a new OutcomeRepository
func NewOutcomeRepository(db *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a new outcome in DRAFT status and returns its id.
func (r *OutcomeRepository) Create(ctx context.Context, outcome *models.CourseOutcome) (int64, error) {
	sql, args, err := r.sb.Insert("course_outcomes").
		Columns("course_id", "code", "description", "status", "created_by").
		Values(outcome.CourseID, outcome.Code, outcome.Description, outcome.Status, outcome.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create outcome query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", outcome.CourseID).Msg("Error executing create outcome query")
		return 0, fmt.Errorf("error creating outcome: %w", err)
	}

	return id, nil
}

func scanOutcome(row pgx.Row) (*models.CourseOutcome, error) {
	outcome := &models.CourseOutcome{}
	err := row.Scan(
		&outcome.ID, &outcome.CourseID, &outcome.Code, &outcome.Description, &outcome.Status,
		&outcome.CreatedBy, &outcome.ReviewedBy, &outcome.ReviewNote,
		&outcome.CreatedAt, &outcome.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// GetByID retrieves an outcome by id.
func (r *OutcomeRepository) GetByID(ctx context.Context, id int64) (*models.CourseOutcome, error) {
	sql, args, err := r.sb.Select(outcomeColumns...).
		From("course_outcomes").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get outcome query: %w", err)
	}

	outcome, err := scanOutcome(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOutcomeNotFound
		}
		return nil, fmt.Errorf("error getting outcome by id: %w", err)
	}

	return outcome, nil
}

// ListByCourse retrieves a course's outcomes ordered by code.
func (r *OutcomeRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.CourseOutcome, error) {
	sql, args, err := r.sb.Select(outcomeColumns...).
		From("course_outcomes").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("code ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list outcomes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*models.CourseOutcome
	for rows.Next() {
		outcome, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning outcome row: %w", err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, rows.Err()
}

// Update modifies an outcome's code and description.
func (r *OutcomeRepository) Update(ctx context.Context, outcome *models.CourseOutcome) error {
	sql, args, err := r.sb.Update("course_outcomes").
		Set("code", outcome.Code).
		Set("description", outcome.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": outcome.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update outcome query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating outcome: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOutcomeNotFound
	}

	return nil
}

// SetStatus transitions an outcome's workflow status, guarded by the
// expected current status so concurrent reviews cannot race each other.
func (r *OutcomeRepository) SetStatus(ctx context.Context, id int64, from, to models.OutcomeStatus, reviewedBy *int64, reviewNote *string) error {
	builder := r.sb.Update("course_outcomes").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from})

	if reviewedBy != nil {
		builder = builder.Set("reviewed_by", reviewedBy).Set("review_note", reviewNote)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build outcome status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating outcome status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the outcome does not exist or it is no longer in the
		// expected status. Distinguish for the caller.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInvalidOutcomeTransition
	}

	return nil
}

// Delete removes an outcome.
func (r *OutcomeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("course_outcomes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete outcome query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting outcome: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOutcomeNotFound
	}

	return nil
}
