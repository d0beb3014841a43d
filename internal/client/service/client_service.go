package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
	dErrors "caoffice/pkg/domain-errors"
	"caoffice/pkg/platform/sentinel"
	"caoffice/pkg/requestcontext"
)

// invariantToValidation downgrades constructor invariant errors to validation
// errors: at this boundary a broken invariant means the caller sent bad data,
// not that stored state is corrupt.
func invariantToValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
	}
	return err
}

// ListClients returns a page of clients matching the query filters.
func (s *Service) ListClients(ctx context.Context, q models.ClientListQuery) (models.Page[*models.Client], error) {
	if q.SortBy == "" {
		q.SortBy = "name"
	}
	if _, ok := models.ClientSortColumn(q.SortBy); !ok {
		return models.Page[*models.Client]{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown sort field: %s", q.SortBy)
	}

	start := time.Now()
	clients, total, err := s.clients.List(ctx, q)
	if err != nil {
		return models.Page[*models.Client]{}, dErrors.Wrap(err, dErrors.CodeInternal, "list clients")
	}
	s.metrics.ObserveListDuration("clients", time.Since(start))

	return models.NewPage(clients, total, q.Page, q.PageSize), nil
}

// GetClient fetches a single client by ID.
func (s *Service) GetClient(ctx context.Context, id domain.ClientID) (*models.Client, error) {
	c, err := s.clients.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find client")
	}
	return c, nil
}

// CreateClient validates the payload and persists a new client.
func (s *Service) CreateClient(ctx context.Context, req models.ClientCreate) (*models.Client, error) {
	req.Normalize()

	c, err := models.NewClient(
		domain.NewClientID(),
		req.Name, req.PAN, req.Email, req.Phone, req.Address, req.Status,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, invariantToValidation(err)
	}

	if err := s.clients.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create client")
	}

	s.metrics.ClientCreated()
	s.logger.InfoContext(ctx, "client created", slog.String("client_id", c.ID.String()))
	return c, nil
}

// UpdateClient applies a partial update to an existing client. An empty
// payload is a no-op that returns the stored record unchanged.
func (s *Service) UpdateClient(ctx context.Context, id domain.ClientID, req *models.ClientUpdate) (*models.Client, error) {
	c, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return c, nil
	}

	req.Normalize()
	req.Apply(c)
	if err := c.Validate(); err != nil {
		return nil, invariantToValidation(err)
	}
	c.UpdatedAt = requestcontext.Now(ctx)

	if err := s.clients.Update(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update client")
	}
	return c, nil
}

// DeleteClient removes a client and, through the storage cascade, all of its
// engagements.
func (s *Service) DeleteClient(ctx context.Context, id domain.ClientID) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete client")
	}

	s.metrics.ClientDeleted()
	s.logger.InfoContext(ctx, "client deleted", slog.String("client_id", id.String()))
	return nil
}

// ListClientEngagements returns a page of the client's engagements ordered by
// file number. The client must exist.
func (s *Service) ListClientEngagements(ctx context.Context, clientID domain.ClientID, page, pageSize int) (models.Page[*models.Engagement], error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return models.Page[*models.Engagement]{}, err
	}

	engagements, total, err := s.engagements.ListByClient(ctx, clientID, page, pageSize)
	if err != nil {
		return models.Page[*models.Engagement]{}, dErrors.Wrap(err, dErrors.CodeInternal, "list client engagements")
	}
	return models.NewPage(engagements, total, page, pageSize), nil
}
