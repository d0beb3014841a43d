package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caoffice/pkg/domain"
	dErrors "caoffice/pkg/domain-errors"
)

func TestNewEngagement(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	clientID := domain.NewClientID()

	t.Run("valid engagement", func(t *testing.T) {
		e, err := NewEngagement(domain.NewEngagementID(), clientID, 42, "42/A", "Audit", "Statutory", "R. Mehta", "K. Shah", "in_progress", now)
		require.NoError(t, err)
		assert.Equal(t, clientID, e.ClientID)
		assert.Equal(t, 42, e.FileNumber)
		assert.Equal(t, "Audit", e.Type)
		assert.Equal(t, now, e.CreatedAt)
		assert.Equal(t, now, e.UpdatedAt)
	})

	t.Run("missing client id", func(t *testing.T) {
		_, err := NewEngagement(domain.NewEngagementID(), domain.ClientID{}, 1, "", "Audit", "", "", "", "open", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		assert.Contains(t, err.Error(), "client_id is required")
	})

	tests := []struct {
		name       string
		fileNumber int
		asPer      string
		etype      string
		type2      string
		senior     string
		assistant  string
		status     string
		wantMsg    string
	}{
		{
			name:       "zero file number",
			fileNumber: 0,
			etype:      "Audit",
			status:     "open",
			wantMsg:    "file_number must be a positive integer",
		},
		{
			name:       "negative file number",
			fileNumber: -5,
			etype:      "Audit",
			status:     "open",
			wantMsg:    "file_number must be a positive integer",
		},
		{
			name:       "as-per too long",
			fileNumber: 1,
			asPer:      strings.Repeat("x", 51),
			etype:      "Audit",
			status:     "open",
			wantMsg:    "file_number_as_per must be 50",
		},
		{
			name:       "empty type",
			fileNumber: 1,
			status:     "open",
			wantMsg:    "type cannot be empty",
		},
		{
			name:       "type too long",
			fileNumber: 1,
			etype:      strings.Repeat("t", 101),
			status:     "open",
			wantMsg:    "type must be 100",
		},
		{
			name:       "senior too long",
			fileNumber: 1,
			etype:      "Audit",
			senior:     strings.Repeat("s", 101),
			status:     "open",
			wantMsg:    "senior must be 100",
		},
		{
			name:       "empty status",
			fileNumber: 1,
			etype:      "Audit",
			wantMsg:    "status cannot be empty",
		},
		{
			name:       "status too long",
			fileNumber: 1,
			etype:      "Audit",
			status:     strings.Repeat("s", 101),
			wantMsg:    "status must be 100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngagement(domain.NewEngagementID(), clientID, tt.fileNumber, tt.asPer, tt.etype, tt.type2, tt.senior, tt.assistant, tt.status, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestEngagementUpdateApplyLeavesAbsentFieldsUntouched(t *testing.T) {
	now := time.Now()
	e, err := NewEngagement(domain.NewEngagementID(), domain.NewClientID(), 7, "7/B", "Audit", "", "R. Mehta", "", "open", now)
	require.NoError(t, err)

	newStatus := "closed"
	update := EngagementUpdate{Status: &newStatus}
	update.Apply(e)

	assert.Equal(t, "closed", e.Status)
	assert.Equal(t, 7, e.FileNumber)
	assert.Equal(t, "Audit", e.Type)
	assert.Equal(t, "R. Mehta", e.Senior)
	require.NoError(t, e.Validate())
}
