package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,is-user-role"`
	Status string `json:"status" validate:"omitempty,is-review-status"`
	Date   string `form:"date" validate:"required,date-only"`
	TimeIn string `form:"time_in" validate:"required,clock"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&sample{
		Email:  "a@x.com",
		Role:   "student",
		Status: "approved",
		Date:   "2024-03-01",
		TimeIn: "09:30",
	})
	assert.NoError(t, err)
}

func TestValidate_FieldNamesFromTags(t *testing.T) {
	v := New()

	err := v.Validate(&sample{
		Email:  "nope",
		Role:   "superuser",
		Status: "pending",
		Date:   "01/03/2024",
		TimeIn: "25:00",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["role"], "student")
	assert.Contains(t, vErr.Errors, "status")
	assert.Contains(t, vErr.Errors, "date")
	assert.Contains(t, vErr.Errors, "time_in")
}

func TestParseClock(t *testing.T) {
	d, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	d, err = ParseClock("17:00:30")
	require.NoError(t, err)
	assert.Equal(t, 17*time.Hour+30*time.Second, d)

	_, err = ParseClock("9.30")
	assert.Error(t, err)
}

func TestValidate_MaxBytes(t *testing.T) {
	type pw struct {
		Password string `json:"password" validate:"required,max-bytes=72"`
	}
	v := New()

	require.NoError(t, v.Validate(&pw{Password: strings.Repeat("a", 72)}))
	require.NoError(t, v.Validate(&pw{Password: strings.Repeat("ю", 36)}))

	err := v.Validate(&pw{Password: strings.Repeat("ю", 42)})
	require.Error(t, err)
	assert.Equal(t, "Must be at most 72 bytes long", err.(*ValidationError).Errors["password"])
}
