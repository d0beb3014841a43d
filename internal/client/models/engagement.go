package models

import (
	"time"

	"caoffice/pkg/domain"
	dErrors "caoffice/pkg/domain-errors"
)

// Engagement is a client's case file, identified within the client by a
// file number.
//
// Invariants:
//   - ClientID references an existing client and is immutable (no re-parenting)
//   - FileNumber is a positive integer
//   - (ClientID, FileNumber) is unique across all engagements
//   - Type and Status are non-empty and at most 100 characters
//   - Status is free-form text, unlike Client.Status which is an enum
type Engagement struct {
	ID              domain.EngagementID `json:"id"`
	ClientID        domain.ClientID     `json:"client_id"`
	FileNumber      int                 `json:"file_number"`
	FileNumberAsPer string              `json:"file_number_as_per"`
	Type            string              `json:"type"`
	Type2           string              `json:"type2"`
	Senior          string              `json:"senior"`
	Assistant       string              `json:"assistant"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewEngagement validates the given fields and builds an engagement with
// server-assigned identity and timestamps.
func NewEngagement(
	id domain.EngagementID,
	clientID domain.ClientID,
	fileNumber int,
	fileNumberAsPer, engagementType, type2, senior, assistant, status string,
	now time.Time,
) (*Engagement, error) {
	if clientID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client_id is required")
	}
	if err := validateEngagementFields(fileNumber, fileNumberAsPer, engagementType, type2, senior, assistant, status); err != nil {
		return nil, err
	}
	return &Engagement{
		ID:              id,
		ClientID:        clientID,
		FileNumber:      fileNumber,
		FileNumberAsPer: fileNumberAsPer,
		Type:            engagementType,
		Type2:           type2,
		Senior:          senior,
		Assistant:       assistant,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Validate re-checks the engagement invariants. Used after partial updates so
// a merged record can never persist in an invalid state.
func (e *Engagement) Validate() error {
	return validateEngagementFields(e.FileNumber, e.FileNumberAsPer, e.Type, e.Type2, e.Senior, e.Assistant, e.Status)
}

func validateEngagementFields(fileNumber int, fileNumberAsPer, engagementType, type2, senior, assistant, status string) error {
	if fileNumber < 1 {
		return dErrors.New(dErrors.CodeInvariantViolation, "file_number must be a positive integer")
	}
	if len(fileNumberAsPer) > 50 {
		return dErrors.New(dErrors.CodeInvariantViolation, "file_number_as_per must be 50 characters or less")
	}
	if engagementType == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement type cannot be empty")
	}
	if len(engagementType) > 100 {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement type must be 100 characters or less")
	}
	if len(type2) > 100 {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement type2 must be 100 characters or less")
	}
	if len(senior) > 100 {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement senior must be 100 characters or less")
	}
	if len(assistant) > 100 {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement assistant must be 100 characters or less")
	}
	if status == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement status cannot be empty")
	}
	if len(status) > 100 {
		return dErrors.New(dErrors.CodeInvariantViolation, "engagement status must be 100 characters or less")
	}
	return nil
}
