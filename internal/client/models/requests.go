package models

import (
	"strings"

	"caoffice/pkg/domain"
)

// ClientCreate is the payload for creating a client. Validation happens in
// NewClient so the stored-entity invariants and the request constraints can
// never drift apart.
type ClientCreate struct {
	Name    string       `json:"name"`
	PAN     string       `json:"pan"`
	Email   string       `json:"email"`
	Phone   string       `json:"phone"`
	Address string       `json:"address"`
	Status  ClientStatus `json:"status"`
}

// Normalize trims surrounding whitespace from identifying fields.
func (r *ClientCreate) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.PAN = strings.TrimSpace(r.PAN)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// ClientUpdate is the partial-update payload for a client. Nil fields were
// absent from the payload and must leave the stored value untouched; non-nil
// fields replace it, including explicit empty strings.
type ClientUpdate struct {
	Name    *string       `json:"name"`
	PAN     *string       `json:"pan"`
	Email   *string       `json:"email"`
	Phone   *string       `json:"phone"`
	Address *string       `json:"address"`
	Status  *ClientStatus `json:"status"`
}

// Normalize trims surrounding whitespace from fields present in the payload.
func (r *ClientUpdate) Normalize() {
	trim(r.Name)
	trim(r.PAN)
	trim(r.Email)
	trim(r.Phone)
}

// IsEmpty reports whether the payload carries no fields at all.
func (r *ClientUpdate) IsEmpty() bool {
	return r.Name == nil && r.PAN == nil && r.Email == nil &&
		r.Phone == nil && r.Address == nil && r.Status == nil
}

// Apply copies the fields present in the payload onto the client. The merged
// result must be re-validated before persisting.
func (r *ClientUpdate) Apply(c *Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.PAN != nil {
		c.PAN = *r.PAN
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.Status != nil {
		c.Status = *r.Status
	}
}

// EngagementCreate is the payload for creating an engagement.
type EngagementCreate struct {
	ClientID        domain.ClientID `json:"client_id"`
	FileNumber      int             `json:"file_number"`
	FileNumberAsPer string          `json:"file_number_as_per"`
	Type            string          `json:"type"`
	Type2           string          `json:"type2"`
	Senior          string          `json:"senior"`
	Assistant       string          `json:"assistant"`
	Status          string          `json:"status"`
}

// Normalize trims surrounding whitespace from text fields.
func (r *EngagementCreate) Normalize() {
	r.FileNumberAsPer = strings.TrimSpace(r.FileNumberAsPer)
	r.Type = strings.TrimSpace(r.Type)
	r.Type2 = strings.TrimSpace(r.Type2)
	r.Senior = strings.TrimSpace(r.Senior)
	r.Assistant = strings.TrimSpace(r.Assistant)
	r.Status = strings.TrimSpace(r.Status)
}

// EngagementUpdate is the partial-update payload for an engagement. There is
// deliberately no client_id field: engagements cannot be re-parented.
type EngagementUpdate struct {
	FileNumber      *int    `json:"file_number"`
	FileNumberAsPer *string `json:"file_number_as_per"`
	Type            *string `json:"type"`
	Type2           *string `json:"type2"`
	Senior          *string `json:"senior"`
	Assistant       *string `json:"assistant"`
	Status          *string `json:"status"`
}

// Normalize trims surrounding whitespace from fields present in the payload.
func (r *EngagementUpdate) Normalize() {
	trim(r.FileNumberAsPer)
	trim(r.Type)
	trim(r.Type2)
	trim(r.Senior)
	trim(r.Assistant)
	trim(r.Status)
}

// IsEmpty reports whether the payload carries no fields at all.
func (r *EngagementUpdate) IsEmpty() bool {
	return r.FileNumber == nil && r.FileNumberAsPer == nil && r.Type == nil &&
		r.Type2 == nil && r.Senior == nil && r.Assistant == nil && r.Status == nil
}

// Apply copies the fields present in the payload onto the engagement. The
// merged result must be re-validated before persisting.
func (r *EngagementUpdate) Apply(e *Engagement) {
	if r.FileNumber != nil {
		e.FileNumber = *r.FileNumber
	}
	if r.FileNumberAsPer != nil {
		e.FileNumberAsPer = *r.FileNumberAsPer
	}
	if r.Type != nil {
		e.Type = *r.Type
	}
	if r.Type2 != nil {
		e.Type2 = *r.Type2
	}
	if r.Senior != nil {
		e.Senior = *r.Senior
	}
	if r.Assistant != nil {
		e.Assistant = *r.Assistant
	}
	if r.Status != nil {
		e.Status = *r.Status
	}
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
