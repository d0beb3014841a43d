package models

import (
	"strings"

	"caoffice/pkg/domain"
	dErrors "caoffice/pkg/domain-errors"
)

// SortOrder is the direction of a list ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder normalizes a raw sort_order value. Empty defaults to asc.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch strings.ToLower(raw) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "sort_order must be asc or desc")
	}
}

// Sortable column allow-lists. Sort fields arriving from callers are resolved
// through these maps before they ever reach a query, so an unrecognized name
// is rejected instead of being passed to the storage layer.
var (
	clientSortColumns = map[string]string{
		"id":         "id",
		"name":       "name",
		"pan":        "pan",
		"email":      "email",
		"phone":      "phone",
		"address":    "address",
		"status":     "status",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	engagementSortColumns = map[string]string{
		"id":                 "id",
		"client_id":          "client_id",
		"file_number":        "file_number",
		"file_number_as_per": "file_number_as_per",
		"type":               "type",
		"type2":              "type2",
		"senior":             "senior",
		"assistant":          "assistant",
		"status":             "status",
		"created_at":         "created_at",
		"updated_at":         "updated_at",
	}
)

// ClientSortColumn resolves a caller-supplied sort field to a clients column.
func ClientSortColumn(field string) (string, bool) {
	col, ok := clientSortColumns[field]
	return col, ok
}

// EngagementSortColumn resolves a caller-supplied sort field to an
// engagements column.
func EngagementSortColumn(field string) (string, bool) {
	col, ok := engagementSortColumns[field]
	return col, ok
}

// ClientListQuery carries validated listing parameters for clients.
// Search matches name, PAN, or email as a case-insensitive substring.
type ClientListQuery struct {
	Page      int
	PageSize  int
	Search    string
	Status    string
	SortBy    string
	SortOrder SortOrder
}

// Offset computes the row offset for the requested page.
func (q ClientListQuery) Offset() int { return (q.Page - 1) * q.PageSize }

// EngagementListQuery carries validated listing parameters for engagements.
// ClientID, Status, and Type are exact-match filters; Senior is a
// case-insensitive substring match.
type EngagementListQuery struct {
	Page      int
	PageSize  int
	ClientID  domain.ClientID
	Status    string
	Type      string
	Senior    string
	SortBy    string
	SortOrder SortOrder
}

// Offset computes the row offset for the requested page.
func (q EngagementListQuery) Offset() int { return (q.Page - 1) * q.PageSize }

// Page is the pagination envelope every listing endpoint returns.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage assembles a pagination envelope. TotalPages is ceil(total/pageSize),
// or 0 when the filtered set is empty.
func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
