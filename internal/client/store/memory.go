package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
	"caoffice/pkg/platform/sentinel"
)

// In-memory stores keep unit tests fast and deterministic. They share one
// data set so the client cascade delete behaves like the database
// foreign-key rule, and they intentionally favor clarity over performance.
type memoryData struct {
	mu          sync.RWMutex
	clients     map[domain.ClientID]*models.Client
	engagements map[domain.EngagementID]*models.Engagement
}

// InMemoryClientStore implements ClientStore over shared in-process maps.
type InMemoryClientStore struct {
	d *memoryData
}

// InMemoryEngagementStore implements EngagementStore over shared in-process maps.
type InMemoryEngagementStore struct {
	d *memoryData
}

// NewInMemory builds the paired in-memory stores over one shared data set.
func NewInMemory() (*InMemoryClientStore, *InMemoryEngagementStore) {
	d := &memoryData{
		clients:     make(map[domain.ClientID]*models.Client),
		engagements: make(map[domain.EngagementID]*models.Engagement),
	}
	return &InMemoryClientStore{d: d}, &InMemoryEngagementStore{d: d}
}

func (s *InMemoryClientStore) Create(_ context.Context, c *models.Client) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	cp := *c
	s.d.clients[c.ID] = &cp
	return nil
}

func (s *InMemoryClientStore) FindByID(_ context.Context, id domain.ClientID) (*models.Client, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	c, ok := s.d.clients[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryClientStore) Update(_ context.Context, c *models.Client) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.clients[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *c
	s.d.clients[c.ID] = &cp
	return nil
}

func (s *InMemoryClientStore) Delete(_ context.Context, id domain.ClientID) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.clients[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.d.clients, id)
	for eid, e := range s.d.engagements {
		if e.ClientID == id {
			delete(s.d.engagements, eid)
		}
	}
	return nil
}

func (s *InMemoryClientStore) List(_ context.Context, q models.ClientListQuery) ([]*models.Client, int, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	matched := make([]*models.Client, 0, len(s.d.clients))
	search := strings.ToLower(q.Search)
	for _, c := range s.d.clients {
		if search != "" {
			if !strings.Contains(strings.ToLower(c.Name), search) &&
				!strings.Contains(strings.ToLower(c.PAN), search) &&
				!strings.Contains(strings.ToLower(c.Email), search) {
				continue
			}
		}
		if q.Status != "" && string(c.Status) != q.Status {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}

	total := len(matched)
	sortClients(matched, q.SortBy, q.SortOrder)
	return pageOf(matched, q.Page, q.PageSize), total, nil
}

func sortClients(items []*models.Client, sortBy string, order models.SortOrder) {
	less := func(a, b *models.Client) bool {
		switch sortBy {
		case "id":
			return a.ID.String() < b.ID.String()
		case "pan":
			return a.PAN < b.PAN
		case "email":
			return a.Email < b.Email
		case "phone":
			return a.Phone < b.Phone
		case "address":
			return a.Address < b.Address
		case "status":
			return a.Status < b.Status
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == models.SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (s *InMemoryEngagementStore) Create(_ context.Context, e *models.Engagement) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.clients[e.ClientID]; !ok {
		return sentinel.ErrInvalidReference
	}
	for _, existing := range s.d.engagements {
		if existing.ClientID == e.ClientID && existing.FileNumber == e.FileNumber {
			return sentinel.ErrConflict
		}
	}
	cp := *e
	s.d.engagements[e.ID] = &cp
	return nil
}

func (s *InMemoryEngagementStore) FindByID(_ context.Context, id domain.EngagementID) (*models.Engagement, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	e, ok := s.d.engagements[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *InMemoryEngagementStore) Update(_ context.Context, e *models.Engagement) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.engagements[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	for _, existing := range s.d.engagements {
		if existing.ID != e.ID && existing.ClientID == e.ClientID && existing.FileNumber == e.FileNumber {
			return sentinel.ErrConflict
		}
	}
	cp := *e
	s.d.engagements[e.ID] = &cp
	return nil
}

func (s *InMemoryEngagementStore) Delete(_ context.Context, id domain.EngagementID) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.engagements[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.d.engagements, id)
	return nil
}

func (s *InMemoryEngagementStore) List(_ context.Context, q models.EngagementListQuery) ([]*models.Engagement, int, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	matched := make([]*models.Engagement, 0, len(s.d.engagements))
	senior := strings.ToLower(q.Senior)
	for _, e := range s.d.engagements {
		if !q.ClientID.IsZero() && e.ClientID != q.ClientID {
			continue
		}
		if q.Status != "" && e.Status != q.Status {
			continue
		}
		if q.Type != "" && e.Type != q.Type {
			continue
		}
		if senior != "" && !strings.Contains(strings.ToLower(e.Senior), senior) {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}

	total := len(matched)
	sortEngagements(matched, q.SortBy, q.SortOrder)
	return pageOf(matched, q.Page, q.PageSize), total, nil
}

func (s *InMemoryEngagementStore) ListByClient(ctx context.Context, clientID domain.ClientID, page, pageSize int) ([]*models.Engagement, int, error) {
	return s.List(ctx, models.EngagementListQuery{
		Page:      page,
		PageSize:  pageSize,
		ClientID:  clientID,
		SortBy:    "file_number",
		SortOrder: models.SortAsc,
	})
}

func sortEngagements(items []*models.Engagement, sortBy string, order models.SortOrder) {
	less := func(a, b *models.Engagement) bool {
		switch sortBy {
		case "id":
			return a.ID.String() < b.ID.String()
		case "client_id":
			return a.ClientID.String() < b.ClientID.String()
		case "file_number_as_per":
			return a.FileNumberAsPer < b.FileNumberAsPer
		case "type":
			return a.Type < b.Type
		case "type2":
			return a.Type2 < b.Type2
		case "senior":
			return a.Senior < b.Senior
		case "assistant":
			return a.Assistant < b.Assistant
		case "status":
			return a.Status < b.Status
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.FileNumber < b.FileNumber
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == models.SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func pageOf[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
