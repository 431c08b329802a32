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

// SectionRepository handles section database operations
type SectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a new section and returns its id.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) (int64, error) {
	sql, args, err := r.sb.Insert("sections").
		Columns("offering_id", "label", "instructor_id", "enrollment", "status").
		Values(section.OfferingID, section.Label, section.InstructorID, section.Enrollment, section.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create section query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrOfferingNotFound
		}
		return 0, fmt.Errorf("error creating section: %w", err)
	}

	return id, nil
}

// GetByID retrieves a section by id.
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	sql, args, err := r.sb.Select("id", "offering_id", "label", "instructor_id", "enrollment", "status", "created_at").
		From("sections").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get section query: %w", err)
	}

	section := &models.Section{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&section.ID, &section.OfferingID, &section.Label,
		&section.InstructorID, &section.Enrollment, &section.Status, &section.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, fmt.Errorf("error getting section by id: %w", err)
	}

	return section, nil
}

// ListByOffering retrieves an offering's sections.
func (r *SectionRepository) ListByOffering(ctx context.Context, offeringID int64) ([]*models.Section, error) {
	return r.listSections(ctx, squirrel.Eq{"offering_id": offeringID})
}

// ListByInstructor retrieves the sections assigned to an instructor.
func (r *SectionRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]*models.Section, error) {
	return r.listSections(ctx, squirrel.Eq{"instructor_id": instructorID})
}

func (r *SectionRepository) listSections(ctx context.Context, where squirrel.Eq) ([]*models.Section, error) {
	sql, args, err := r.sb.Select("id", "offering_id", "label", "instructor_id", "enrollment", "status", "created_at").
		From("sections").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		section := &models.Section{}
		if err := rows.Scan(
			&section.ID, &section.OfferingID, &section.Label,
			&section.InstructorID, &section.Enrollment, &section.Status, &section.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning section row: %w", err)
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// Update updates a section's label, instructor, enrollment and status.
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	sql, args, err := r.sb.Update("sections").
		Set("label", section.Label).
		Set("instructor_id", section.InstructorID).
		Set("enrollment", section.Enrollment).
		Set("status", section.Status).
		Where(squirrel.Eq{"id": section.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update section query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error updating section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// Delete removes a section.
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("sections").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete section query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}
