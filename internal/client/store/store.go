// Package store persists clients and engagements. Stores are interface-driven
// so the service layer stays testable against in-memory twins while production
// runs on PostgreSQL.
package store

import (
	"context"

	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
)

// ClientStore persists client records.
//
// Delete removes the client and all of its engagements; the postgres
// implementation relies on the foreign-key cascade, the in-memory one deletes
// both under a single lock.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	FindByID(ctx context.Context, id domain.ClientID) (*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id domain.ClientID) error
	List(ctx context.Context, q models.ClientListQuery) ([]*models.Client, int, error)
}

// EngagementStore persists engagement records.
//
// Create and Update surface sentinel.ErrConflict when the
// (client_id, file_number) pair is already taken and sentinel.ErrInvalidReference
// when the referenced client does not exist.
type EngagementStore interface {
	Create(ctx context.Context, e *models.Engagement) error
	FindByID(ctx context.Context, id domain.EngagementID) (*models.Engagement, error)
	Update(ctx context.Context, e *models.Engagement) error
	Delete(ctx context.Context, id domain.EngagementID) error
	List(ctx context.Context, q models.EngagementListQuery) ([]*models.Engagement, int, error)
	ListByClient(ctx context.Context, clientID domain.ClientID, page, pageSize int) ([]*models.Engagement, int, error)
}
