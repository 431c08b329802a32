package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	InstitutionRepository *InstitutionRepository
	ProgramRepository     *ProgramRepository
	CourseRepository      *CourseRepository
	TermRepository        *TermRepository
	SectionRepository     *SectionRepository
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	OutcomeRepository     *OutcomeRepository
	ReportReader          *ReportReader
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		InstitutionRepository: NewInstitutionRepository(db),
		ProgramRepository:     NewProgramRepository(db),
		CourseRepository:      NewCourseRepository(db),
		TermRepository:        NewTermRepository(db),
		SectionRepository:     NewSectionRepository(db),
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		OutcomeRepository:     NewOutcomeRepository(db),
		ReportReader:          NewReportReader(db),
	}
}

// statementBuilder returns a squirrel builder with Postgres placeholders.
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
