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

// CourseRepository handles course database operations, including the
// course_programs membership set.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a new course with its program membership set.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("courses").
		Columns("institution_id", "course_number", "course_title").
		Values(course.InstitutionID, course.CourseNumber, course.CourseTitle).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	for _, programID := range course.ProgramIDs {
		if err := r.insertMembership(ctx, tx, id, programID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit create course transaction: %w", err)
	}

	return id, nil
}

func (r *CourseRepository) insertMembership(ctx context.Context, tx pgx.Tx, courseID, programID int64) error {
	sql, args, err := r.sb.Insert("course_programs").
		Columns("course_id", "program_id").
		Values(courseID, programID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course membership query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error assigning course to program: %w", err)
	}
	return nil
}

// GetByID retrieves a course by id with its resolved program ids.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "institution_id", "course_number", "course_title", "created_at").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.InstitutionID, &course.CourseNumber, &course.CourseTitle, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course by id: %w", err)
	}

	programIDs, err := r.programIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	course.ProgramIDs = programIDs

	return course, nil
}

// ListByInstitution retrieves an institution's courses with program ids.
func (r *CourseRepository) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "institution_id", "course_number", "course_title", "created_at").
		From("courses").
		Where(squirrel.Eq{"institution_id": institutionID}).
		OrderBy("course_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	return r.queryCourses(ctx, sql, args)
}

// ListByProgram retrieves the courses belonging to a program.
func (r *CourseRepository) ListByProgram(ctx context.Context, programID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.institution_id", "c.course_number", "c.course_title", "c.created_at").
		From("courses c").
		Join("course_programs cp ON cp.course_id = c.id").
		Where(squirrel.Eq{"cp.program_id": programID}).
		OrderBy("c.course_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list program courses query: %w", err)
	}

	return r.queryCourses(ctx, sql, args)
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args []interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.InstitutionID, &course.CourseNumber, &course.CourseTitle, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, course := range courses {
		programIDs, err := r.programIDs(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		course.ProgramIDs = programIDs
	}

	return courses, nil
}

func (r *CourseRepository) programIDs(ctx context.Context, courseID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("program_id").
		From("course_programs").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("program_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing course programs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning course program row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Update updates a course's number and title.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("course_number", course.CourseNumber).
		Set("course_title", course.CourseTitle).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// SetPrograms replaces a course's program membership set.
func (r *CourseRepository) SetPrograms(ctx context.Context, courseID int64, programIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Delete("course_programs").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear course programs query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing course programs: %w", err)
	}

	for _, programID := range programIDs {
		if err := r.insertMembership(ctx, tx, courseID, programID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a course along with its memberships.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
