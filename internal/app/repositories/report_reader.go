package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogulcan/clotrack/internal/app/reporting"
)

// ReportReader feeds the dashboard aggregation engine. It deliberately
// bypasses the typed models and returns raw column maps, because the
// engine works over loosely-shaped records and tolerates sources whose
// key vocabulary differs from ours.
//
// It implements reporting.ReadStore and reporting.OutcomeReader.
type ReportReader struct {
	db *pgxpool.Pool
}

// NewReportReader creates a new ReportReader
func NewReportReader(db *pgxpool.Pool) *ReportReader {
	return &ReportReader{db: db}
}

func (r *ReportReader) collect(ctx context.Context, sql string, args ...any) ([]reporting.Record, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	records := make([]reporting.Record, len(maps))
	for i, m := range maps {
		records[i] = reporting.Record(m)
	}
	return records, nil
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return n, nil
}

// ListInstitutions returns every institution.
func (r *ReportReader) ListInstitutions(ctx context.Context) ([]reporting.Record, error) {
	return r.collect(ctx, `
		SELECT id, name, code, created_at
		FROM institutions
		ORDER BY id`)
}

// GetInstitution returns one institution, or nil without error when the
// id has no row. The engine substitutes a stub record in that case.
func (r *ReportReader) GetInstitution(ctx context.Context, institutionID string) (reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, code, created_at
		FROM institutions
		WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return reporting.Record(m), nil
}

// ListPrograms returns an institution's programs.
func (r *ReportReader) ListPrograms(ctx context.Context, institutionID string) ([]reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT id, institution_id, name, short_name, created_at
		FROM programs
		WHERE institution_id = $1
		ORDER BY id`, id)
}

// ListCourses returns an institution's courses with their aggregated
// program membership under the program_ids key.
func (r *ReportReader) ListCourses(ctx context.Context, institutionID string) ([]reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT c.id, c.institution_id, c.course_number, c.course_title, c.created_at,
		       COALESCE(array_agg(cp.program_id ORDER BY cp.program_id)
		                FILTER (WHERE cp.program_id IS NOT NULL), '{}') AS program_ids
		FROM courses c
		LEFT JOIN course_programs cp ON cp.course_id = c.id
		WHERE c.institution_id = $1
		GROUP BY c.id
		ORDER BY c.id`, id)
}

// ListUsers returns an institution's users with their aggregated
// program membership. Password hashes never leave the database here.
func (r *ReportReader) ListUsers(ctx context.Context, institutionID string) ([]reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role_type,
		       u.institution_id, u.is_active, u.created_at,
		       COALESCE(array_agg(up.program_id ORDER BY up.program_id)
		                FILTER (WHERE up.program_id IS NOT NULL), '{}') AS program_ids
		FROM users u
		LEFT JOIN user_programs up ON up.user_id = u.id
		WHERE u.institution_id = $1
		GROUP BY u.id
		ORDER BY u.id`, id)
}

// ListInstructors returns the instructor-role subset of an
// institution's users.
func (r *ReportReader) ListInstructors(ctx context.Context, institutionID string) ([]reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT id, email, first_name, last_name, role_type,
		       institution_id, is_active, created_at
		FROM users
		WHERE institution_id = $1 AND role_type = 'INSTRUCTOR'
		ORDER BY id`, id)
}

// ListSections returns an institution's sections flattened with their
// offering's course and term, which is the shape the engine indexes on.
func (r *ReportReader) ListSections(ctx context.Context, institutionID string) ([]reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT s.id, s.label, s.instructor_id, s.enrollment, s.status, s.created_at,
		       o.course_id, o.term_id, c.institution_id
		FROM sections s
		JOIN course_offerings o ON o.id = s.offering_id
		JOIN courses c ON c.id = o.course_id
		WHERE c.institution_id = $1
		ORDER BY s.id`, id)
}

// ListActiveTerms returns an institution's active terms.
func (r *ReportReader) ListActiveTerms(ctx context.Context, institutionID string) ([]reporting.Record, error) {
	id, err := parseID(institutionID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT id, institution_id, name, starts_on, ends_on, is_active
		FROM terms
		WHERE institution_id = $1 AND is_active
		ORDER BY id`, id)
}

// ListOutcomes returns a course's learning outcomes for dashboard
// enrichment.
func (r *ReportReader) ListOutcomes(ctx context.Context, courseID string) ([]reporting.Record, error) {
	id, err := parseID(courseID)
	if err != nil {
		return nil, nil
	}
	return r.collect(ctx, `
		SELECT id, course_id, code, description, status, created_at
		FROM course_outcomes
		WHERE course_id = $1
		ORDER BY code, id`, id)
}
