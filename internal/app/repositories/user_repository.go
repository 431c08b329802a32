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

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name",
	"role_type", "institution_id", "is_active", "created_at", "updated_at", "last_login_at",
}

// UserRepository handles user database operations, including the
// user_programs membership set for program admins and instructors.
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a new user and returns its id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type", "institution_id", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.InstitutionID, user.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.RoleType, &user.InstitutionID, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by id with the resolved program set.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}

	programIDs, err := r.ProgramIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.ProgramIDs = programIDs

	return user, nil
}

// GetByEmail retrieves a user by email for authentication.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	programIDs, err := r.ProgramIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.ProgramIDs = programIDs

	return user, nil
}

// ListByInstitution retrieves a page of an institution's users ordered by
// id, along with the total user count for pagination.
func (r *UserRepository) ListByInstitution(ctx context.Context, institutionID int64, offset uint64, limit int) ([]*models.User, int64, error) {
	where := squirrel.Eq{"institution_id": institutionID}

	total, err := r.countUsers(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	users, err := r.listUsers(ctx, where, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListInstructors retrieves an institution's instructor-role users.
func (r *UserRepository) ListInstructors(ctx context.Context, institutionID int64) ([]*models.User, error) {
	return r.listUsers(ctx, squirrel.Eq{
		"institution_id": institutionID,
		"role_type":      models.RoleInstructor,
	}, 0, 0)
}

func (r *UserRepository) countUsers(ctx context.Context, where squirrel.Eq) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return total, nil
}

// listUsers runs a filtered user query; a non-positive limit disables
// paging.
func (r *UserRepository) listUsers(ctx context.Context, where squirrel.Eq, offset uint64, limit int) ([]*models.User, error) {
	builder := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		OrderBy("id ASC")
	if limit > 0 {
		builder = builder.Offset(offset).Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// ProgramIDs returns the program ids a user belongs to.
func (r *UserRepository) ProgramIDs(ctx context.Context, userID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("program_id").
		From("user_programs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("program_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing user programs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user program row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// SetPrograms replaces a user's program membership set.
func (r *UserRepository) SetPrograms(ctx context.Context, userID int64, programIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Delete("user_programs").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear user programs query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing user programs: %w", err)
	}

	for _, programID := range programIDs {
		sql, args, err := r.sb.Insert("user_programs").
			Columns("user_id", "program_id").
			Values(userID, programID).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build add user program query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.ErrProgramNotFound
			}
			return fmt.Errorf("error adding user program: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// UpdateProfile updates a user's mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the user's last login time.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}
