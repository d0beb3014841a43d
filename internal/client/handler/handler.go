// Package handler exposes the client and engagement REST endpoints.
package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"caoffice/internal/client/models"
	"caoffice/internal/client/service"
	"caoffice/pkg/domain"
	dErrors "caoffice/pkg/domain-errors"
	"caoffice/pkg/platform/httputil"
)

// Handler serves the /clients and /engagements routes.
type Handler struct {
	service         *service.Service
	logger          *slog.Logger
	defaultPageSize int
	maxPageSize     int
}

// Option configures optional handler collaborators.
type Option func(*Handler)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// New creates a Handler over the given service. Page size limits guard the
// listing endpoints; requests above maxPageSize are rejected.
func New(svc *service.Service, defaultPageSize, maxPageSize int, opts ...Option) *Handler {
	h := &Handler{
		service:         svc,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts all client and engagement routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.listClients)
		r.Post("/", h.createClient)
		r.Route("/{clientID}", func(r chi.Router) {
			r.Get("/", h.getClient)
			r.Put("/", h.updateClient)
			r.Delete("/", h.deleteClient)
			r.Get("/engagements", h.listClientEngagements)
		})
	})
	r.Route("/engagements", func(r chi.Router) {
		r.Get("/", h.listEngagements)
		r.Post("/", h.createEngagement)
		r.Route("/{engagementID}", func(r chi.Router) {
			r.Get("/", h.getEngagement)
			r.Put("/", h.updateEngagement)
			r.Delete("/", h.deleteEngagement)
		})
	})
}

// pageParams parses page and page_size, applying defaults and the maximum
// page size limit.
func (h *Handler) pageParams(r *http.Request) (page, pageSize int, err error) {
	page = 1
	pageSize = h.defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, dErrors.New(dErrors.CodeBadRequest, "page must be a positive integer")
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			return 0, 0, dErrors.New(dErrors.CodeBadRequest, "page_size must be a positive integer")
		}
		if pageSize > h.maxPageSize {
			return 0, 0, dErrors.Newf(dErrors.CodeBadRequest, "page_size must not exceed %d", h.maxPageSize)
		}
	}
	return page, pageSize, nil
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := h.pageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	order, err := models.ParseSortOrder(r.URL.Query().Get("sort_order"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.ListClients(r.Context(), models.ClientListQuery{
		Page:      page,
		PageSize:  pageSize,
		Search:    r.URL.Query().Get("search"),
		Status:    r.URL.Query().Get("status"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: order,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.ClientCreate](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.CreateClient(r.Context(), *req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[models.ClientUpdate](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	c, err := h.service.UpdateClient(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteClient(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listClientEngagements(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseClientID(chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, pageSize, err := h.pageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.ListClientEngagements(r.Context(), id, page, pageSize)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) listEngagements(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := h.pageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	order, err := models.ParseSortOrder(r.URL.Query().Get("sort_order"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	q := models.EngagementListQuery{
		Page:      page,
		PageSize:  pageSize,
		Status:    r.URL.Query().Get("status"),
		Type:      r.URL.Query().Get("type"),
		Senior:    r.URL.Query().Get("senior"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: order,
	}
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		clientID, err := domain.ParseClientID(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "client_id must be a valid UUID"))
			return
		}
		q.ClientID = clientID
	}

	result, err := h.service.ListEngagements(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) createEngagement(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.EngagementCreate](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.service.CreateEngagement(r.Context(), *req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) getEngagement(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseEngagementID(chi.URLParam(r, "engagementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.service.GetEngagement(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) updateEngagement(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseEngagementID(chi.URLParam(r, "engagementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[models.EngagementUpdate](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, err := h.service.UpdateEngagement(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) deleteEngagement(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseEngagementID(chi.URLParam(r, "engagementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeleteEngagement(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError logs internal failures before handing the error to the shared
// envelope writer.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	httputil.WriteError(w, err)
}
