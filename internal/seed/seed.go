package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/repositories"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
	"github.com/ogulcan/clotrack/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@clotrack.app"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData ensures a site administrator account exists so a fresh
// deployment can be configured through the API.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default admin user")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Creating default site admin user...")

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &models.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "Site",
		LastName:  "Admin",
		RoleType:  models.RoleSiteAdmin,
		IsActive:  true,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			// Raced with another instance starting up; nothing to do.
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Warn().
		Str("email", defaultAdminEmail).
		Msg("Default site admin created with a well-known password, change it immediately")

	return nil
}
