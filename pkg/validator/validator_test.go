package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

type address struct {
	City string `json:"city" validate:"required"`
}

type Payload struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"omitempty,email"`
	Date    string  `json:"date" validate:"required,date"`
	Time    string  `json:"time" validate:"omitempty,hhmm"`
	Address address `json:"address"`
}

func TestValidateReportsNestedJSONPaths(t *testing.T) {
	v := New()

	err := v.Validate(Payload{Email: "not-an-email", Date: "2024-13-40", Time: "9am"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "is required", appErr.Fields["name"])
	assert.Equal(t, "must be a valid email", appErr.Fields["email"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", appErr.Fields["date"])
	assert.Equal(t, "must be a time in HH:MM format", appErr.Fields["time"])
	assert.Equal(t, "is required", appErr.Fields["address.city"])
}

func TestValidateAcceptsCompleteStruct(t *testing.T) {
	v := New()
	err := v.Validate(Payload{Name: "a", Date: "2024-05-06", Time: "09:30", Address: address{City: "NYC"}})
	assert.NoError(t, err)
}

func TestValidateField(t *testing.T) {
	v := New()
	assert.NoError(t, v.ValidateField("start", "09:00", "hhmm"))

	err := v.ValidateField("start", "25:00", "hhmm")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}
