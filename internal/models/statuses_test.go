package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	for _, r := range UserRoles {
		got, err := ParseUserRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseUserRole("superuser")
	assert.Error(t, err)
	_, err = ParseUserRole("")
	assert.Error(t, err)
}

func TestLogStatus_IsReviewDecision(t *testing.T) {
	assert.True(t, LogStatusApproved.IsReviewDecision())
	assert.True(t, LogStatusRejected.IsReviewDecision())
	assert.False(t, LogStatusPending.IsReviewDecision())
	assert.False(t, LogStatus("done").IsValid())
}
