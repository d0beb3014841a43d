// Package domain defines typed identifiers shared across modules.
//
// IDs are distinct uuid-backed types so a ClientID can never be passed where
// an EngagementID is expected. Parse helpers enforce the trust-boundary
// invariant that IDs are valid, non-empty, non-nil UUIDs.
package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"

	dErrors "caoffice/pkg/domain-errors"
)

// ClientID identifies a client record.
type ClientID uuid.UUID

// EngagementID identifies an engagement record.
type EngagementID uuid.UUID

// NewClientID generates a fresh client identifier.
func NewClientID() ClientID { return ClientID(uuid.New()) }

// NewEngagementID generates a fresh engagement identifier.
func NewEngagementID() EngagementID { return EngagementID(uuid.New()) }

// ParseClientID parses and validates a client ID from its string form.
func ParseClientID(raw string) (ClientID, error) {
	id, err := parseUUID(raw)
	if err != nil {
		return ClientID{}, err
	}
	return ClientID(id), nil
}

// ParseEngagementID parses and validates an engagement ID from its string form.
func ParseEngagementID(raw string) (EngagementID, error) {
	id, err := parseUUID(raw)
	if err != nil {
		return EngagementID{}, err
	}
	return EngagementID(id), nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must be a valid UUID")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must not be the nil UUID")
	}
	return id, nil
}

func (id ClientID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is unset.
func (id ClientID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id ClientID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *ClientID) UnmarshalText(data []byte) error {
	parsed, err := uuid.ParseBytes(data)
	if err != nil {
		return err
	}
	*id = ClientID(parsed)
	return nil
}

// Value implements driver.Valuer so IDs bind as uuid text in SQL queries.
func (id ClientID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

// Scan implements sql.Scanner.
func (id *ClientID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = ClientID(u)
	return nil
}

func (id EngagementID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is unset.
func (id EngagementID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id EngagementID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *EngagementID) UnmarshalText(data []byte) error {
	parsed, err := uuid.ParseBytes(data)
	if err != nil {
		return err
	}
	*id = EngagementID(parsed)
	return nil
}

// Value implements driver.Valuer so IDs bind as uuid text in SQL queries.
func (id EngagementID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }

// Scan implements sql.Scanner.
func (id *EngagementID) Scan(src any) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		return err
	}
	*id = EngagementID(u)
	return nil
}
