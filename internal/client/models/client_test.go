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

func TestNewClient(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("valid client", func(t *testing.T) {
		c, err := NewClient(domain.NewClientID(), "Acme Traders", "ABCDE1234F", "acme@example.com", "+911234567890", "12 Market Road", ClientStatusActive, now)
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", c.Name)
		assert.Equal(t, "ABCDE1234F", c.PAN)
		assert.Equal(t, ClientStatusActive, c.Status)
		assert.Equal(t, now, c.CreatedAt)
		assert.Equal(t, now, c.UpdatedAt)
	})

	t.Run("empty status defaults to active", func(t *testing.T) {
		c, err := NewClient(domain.NewClientID(), "Acme Traders", "ABCDE1234F", "", "", "", "", now)
		require.NoError(t, err)
		assert.Equal(t, ClientStatusActive, c.Status)
		assert.True(t, c.IsActive())
	})

	tests := []struct {
		name    string
		cname   string
		pan     string
		email   string
		phone   string
		status  ClientStatus
		wantMsg string
	}{
		{
			name:    "empty name",
			pan:     "ABCDE1234F",
			status:  ClientStatusActive,
			wantMsg: "name cannot be empty",
		},
		{
			name:    "name too long",
			cname:   strings.Repeat("a", 256),
			pan:     "ABCDE1234F",
			status:  ClientStatusActive,
			wantMsg: "255 characters or less",
		},
		{
			name:    "malformed pan",
			cname:   "Acme",
			pan:     "INVALID",
			status:  ClientStatusActive,
			wantMsg: "pan must match",
		},
		{
			name:    "lowercase pan",
			cname:   "Acme",
			pan:     "abcde1234f",
			status:  ClientStatusActive,
			wantMsg: "pan must match",
		},
		{
			name:    "email too long",
			cname:   "Acme",
			pan:     "ABCDE1234F",
			email:   strings.Repeat("e", 250) + "@example.com",
			status:  ClientStatusActive,
			wantMsg: "email must be 255",
		},
		{
			name:    "phone too long",
			cname:   "Acme",
			pan:     "ABCDE1234F",
			phone:   strings.Repeat("9", 21),
			status:  ClientStatusActive,
			wantMsg: "phone must be 20",
		},
		{
			name:    "unknown status",
			cname:   "Acme",
			pan:     "ABCDE1234F",
			status:  "archived",
			wantMsg: "status must be active or inactive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(domain.NewClientID(), tt.cname, tt.pan, tt.email, tt.phone, "", tt.status, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClientValidateAfterMerge(t *testing.T) {
	now := time.Now()
	c, err := NewClient(domain.NewClientID(), "Acme", "ABCDE1234F", "", "", "", ClientStatusActive, now)
	require.NoError(t, err)

	bad := "NOPE"
	update := ClientUpdate{PAN: &bad}
	update.Apply(c)
	err = c.Validate()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestClientUpdateApplyLeavesAbsentFieldsUntouched(t *testing.T) {
	now := time.Now()
	c, err := NewClient(domain.NewClientID(), "Acme", "ABCDE1234F", "acme@example.com", "12345", "HQ", ClientStatusActive, now)
	require.NoError(t, err)

	newName := "Updated"
	update := ClientUpdate{Name: &newName}
	assert.False(t, update.IsEmpty())
	update.Apply(c)

	assert.Equal(t, "Updated", c.Name)
	assert.Equal(t, "ABCDE1234F", c.PAN)
	assert.Equal(t, "acme@example.com", c.Email)
	assert.Equal(t, "12345", c.Phone)
	assert.Equal(t, "HQ", c.Address)
}

func TestClientUpdateIsEmpty(t *testing.T) {
	assert.True(t, (&ClientUpdate{}).IsEmpty())

	empty := ""
	assert.False(t, (&ClientUpdate{Address: &empty}).IsEmpty())
}

func TestPANPattern(t *testing.T) {
	valid := []string{"ABCDE1234F", "ZZZZZ0000Z"}
	invalid := []string{"", "INVALID", "ABCDE12345", "1BCDE1234F", "ABCDE1234FX", "abcde1234f"}

	for _, pan := range valid {
		assert.True(t, PANPattern.MatchString(pan), "expected %q to be valid", pan)
	}
	for _, pan := range invalid {
		assert.False(t, PANPattern.MatchString(pan), "expected %q to be invalid", pan)
	}
}
