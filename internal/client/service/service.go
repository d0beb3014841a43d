// Package service holds the business logic for clients and engagements:
// validation, partial-update merging, referential checks, and translation of
// storage sentinels into coded domain errors.
package service

import (
	"context"
	"io"
	"log/slog"

	"caoffice/internal/client/metrics"
	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
)

// ClientStore is the client persistence surface the service consumes.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	FindByID(ctx context.Context, id domain.ClientID) (*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id domain.ClientID) error
	List(ctx context.Context, q models.ClientListQuery) ([]*models.Client, int, error)
}

// EngagementStore is the engagement persistence surface the service consumes.
type EngagementStore interface {
	Create(ctx context.Context, e *models.Engagement) error
	FindByID(ctx context.Context, id domain.EngagementID) (*models.Engagement, error)
	Update(ctx context.Context, e *models.Engagement) error
	Delete(ctx context.Context, id domain.EngagementID) error
	List(ctx context.Context, q models.EngagementListQuery) ([]*models.Engagement, int, error)
	ListByClient(ctx context.Context, clientID domain.ClientID, page, pageSize int) ([]*models.Engagement, int, error)
}

// Service coordinates client and engagement operations.
type Service struct {
	clients     ClientStore
	engagements EngagementStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service over the given stores.
func New(clients ClientStore, engagements EngagementStore, opts ...Option) *Service {
	s := &Service{
		clients:     clients,
		engagements: engagements,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
