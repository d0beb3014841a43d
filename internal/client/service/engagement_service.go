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

// ListEngagements returns a page of engagements matching the query filters.
func (s *Service) ListEngagements(ctx context.Context, q models.EngagementListQuery) (models.Page[*models.Engagement], error) {
	if q.SortBy == "" {
		q.SortBy = "file_number"
	}
	if _, ok := models.EngagementSortColumn(q.SortBy); !ok {
		return models.Page[*models.Engagement]{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown sort field: %s", q.SortBy)
	}

	start := time.Now()
	engagements, total, err := s.engagements.List(ctx, q)
	if err != nil {
		return models.Page[*models.Engagement]{}, dErrors.Wrap(err, dErrors.CodeInternal, "list engagements")
	}
	s.metrics.ObserveListDuration("engagements", time.Since(start))

	return models.NewPage(engagements, total, q.Page, q.PageSize), nil
}

// GetEngagement fetches a single engagement by ID.
func (s *Service) GetEngagement(ctx context.Context, id domain.EngagementID) (*models.Engagement, error) {
	e, err := s.engagements.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "engagement not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find engagement")
	}
	return e, nil
}

// CreateEngagement validates the payload and persists a new engagement. The
// referenced client must exist, and the (client_id, file_number) pair must be
// unused.
func (s *Service) CreateEngagement(ctx context.Context, req models.EngagementCreate) (*models.Engagement, error) {
	req.Normalize()

	e, err := models.NewEngagement(
		domain.NewEngagementID(),
		req.ClientID,
		req.FileNumber,
		req.FileNumberAsPer, req.Type, req.Type2, req.Senior, req.Assistant, req.Status,
		requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, invariantToValidation(err)
	}

	if err := s.engagements.Create(ctx, e); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidReference):
			return nil, dErrors.New(dErrors.CodeValidation, "client does not exist")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "file_number already exists for this client")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create engagement")
		}
	}

	s.metrics.EngagementCreated()
	s.logger.InfoContext(ctx, "engagement created",
		slog.String("engagement_id", e.ID.String()),
		slog.String("client_id", e.ClientID.String()),
		slog.Int("file_number", e.FileNumber))
	return e, nil
}

// UpdateEngagement applies a partial update to an existing engagement. An
// empty payload is a no-op that returns the stored record unchanged. The
// client_id is immutable: engagements cannot move between clients.
func (s *Service) UpdateEngagement(ctx context.Context, id domain.EngagementID, req *models.EngagementUpdate) (*models.Engagement, error) {
	e, err := s.GetEngagement(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return e, nil
	}

	req.Normalize()
	req.Apply(e)
	if err := e.Validate(); err != nil {
		return nil, invariantToValidation(err)
	}
	e.UpdatedAt = requestcontext.Now(ctx)

	if err := s.engagements.Update(ctx, e); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "engagement not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "file_number already exists for this client")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update engagement")
		}
	}
	return e, nil
}

// DeleteEngagement removes a single engagement.
func (s *Service) DeleteEngagement(ctx context.Context, id domain.EngagementID) error {
	if err := s.engagements.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "engagement not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete engagement")
	}

	s.metrics.EngagementDeleted()
	s.logger.InfoContext(ctx, "engagement deleted", slog.String("engagement_id", id.String()))
	return nil
}
