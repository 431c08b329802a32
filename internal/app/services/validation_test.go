package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("ada@tu.edu"))
	assert.NoError(t, validateEmail("first.last+tag@sub.example.org"))

	assert.ErrorIs(t, validateEmail(""), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateEmail("   "), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateEmail("no-at-sign"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateEmail("missing@tld"), apperrors.ErrValidationFailed)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validatePassword("abcdef12"))

	assert.ErrorIs(t, validatePassword("short1"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validatePassword("lettersonly"), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validatePassword("12345678"), apperrors.ErrValidationFailed)
}

func TestValidateInstitution(t *testing.T) {
	assert.NoError(t, validateInstitution(&models.Institution{Name: "Tech University", Code: "TU"}))

	assert.ErrorIs(t,
		validateInstitution(&models.Institution{Code: "TU"}),
		apperrors.ErrValidationFailed)
	assert.ErrorIs(t,
		validateInstitution(&models.Institution{Name: "Tech University"}),
		apperrors.ErrValidationFailed)
	assert.ErrorIs(t,
		validateInstitution(&models.Institution{Name: "Tech University", Code: "tu"}),
		apperrors.ErrValidationFailed)
}

func TestValidateCourse(t *testing.T) {
	assert.NoError(t, validateCourse(&models.Course{
		InstitutionID: 1,
		CourseNumber:  "CS101",
		CourseTitle:   "Intro to Computing",
	}))

	assert.ErrorIs(t, validateCourse(&models.Course{
		CourseNumber: "CS101",
		CourseTitle:  "Intro",
	}), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateCourse(&models.Course{
		InstitutionID: 1,
		CourseTitle:   "Intro",
	}), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateCourse(&models.Course{
		InstitutionID: 1,
		CourseNumber:  "CS101",
		CourseTitle:   "   ",
	}), apperrors.ErrValidationFailed)
}
