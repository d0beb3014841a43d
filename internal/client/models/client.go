package models

import (
	"regexp"
	"time"

	"caoffice/pkg/domain"
	dErrors "caoffice/pkg/domain-errors"
)

// PANPattern is the tax identifier format: 5 uppercase letters, 4 digits,
// 1 uppercase letter.
var PANPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// ClientStatus is the closed status enum for clients.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// IsValid reports whether the status is one of the enumerated values.
func (s ClientStatus) IsValid() bool {
	return s == ClientStatusActive || s == ClientStatusInactive
}

// Client is the aggregate root for a client record.
//
// Invariants:
//   - Name is non-empty and at most 255 characters
//   - PAN matches PANPattern at rest
//   - Status is either active or inactive
//   - ID and CreatedAt are immutable after construction
//   - Deleting a client deletes all of its engagements (storage-layer cascade)
type Client struct {
	ID        domain.ClientID `json:"id"`
	Name      string          `json:"name"`
	PAN       string          `json:"pan"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Status    ClientStatus    `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewClient validates the given fields and builds a client with server-assigned
// identity and timestamps. An empty status defaults to active.
func NewClient(id domain.ClientID, name, pan, email, phone, address string, status ClientStatus, now time.Time) (*Client, error) {
	if status == "" {
		status = ClientStatusActive
	}
	if err := validateClientFields(name, pan, email, phone, status); err != nil {
		return nil, err
	}
	return &Client{
		ID:        id,
		Name:      name,
		PAN:       pan,
		Email:     email,
		Phone:     phone,
		Address:   address,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validateClientFields(name, pan, email, phone string, status ClientStatus) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "client name cannot be empty")
	}
	if len(name) > 255 {
		return dErrors.New(dErrors.CodeInvariantViolation, "client name must be 255 characters or less")
	}
	if !PANPattern.MatchString(pan) {
		return dErrors.New(dErrors.CodeInvariantViolation, "pan must match format XXXXX9999X")
	}
	if len(email) > 255 {
		return dErrors.New(dErrors.CodeInvariantViolation, "client email must be 255 characters or less")
	}
	if len(phone) > 20 {
		return dErrors.New(dErrors.CodeInvariantViolation, "client phone must be 20 characters or less")
	}
	if !status.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "client status must be active or inactive")
	}
	return nil
}

// Validate re-checks the client invariants. Used after partial updates so a
// merged record can never persist in an invalid state.
func (c *Client) Validate() error {
	return validateClientFields(c.Name, c.PAN, c.Email, c.Phone, c.Status)
}

// IsActive reports whether the client is in active status.
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}
