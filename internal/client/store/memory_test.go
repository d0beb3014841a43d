package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
	"caoffice/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx         context.Context
	clients     *InMemoryClientStore
	engagements *InMemoryEngagementStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.clients, s.engagements = NewInMemory()
}

func (s *MemoryStoreSuite) newClient(name, pan string, status models.ClientStatus) *models.Client {
	c, err := models.NewClient(domain.NewClientID(), name, pan, "", "", "", status, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.clients.Create(s.ctx, c))
	return c
}

func (s *MemoryStoreSuite) newEngagement(clientID domain.ClientID, fileNumber int, status string) *models.Engagement {
	e, err := models.NewEngagement(domain.NewEngagementID(), clientID, fileNumber, "", "Audit", "", "", "", status, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.engagements.Create(s.ctx, e))
	return e
}

func (s *MemoryStoreSuite) TestClientRoundTrip() {
	c := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)

	found, err := s.clients.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.Name, found.Name)

	found.Name = "Mutated"
	again, err := s.clients.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Acme", again.Name, "store must hand out copies, not shared pointers")
}

func (s *MemoryStoreSuite) TestClientNotFound() {
	_, err := s.clients.FindByID(s.ctx, domain.NewClientID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.clients.Delete(s.ctx, domain.NewClientID()), sentinel.ErrNotFound)

	ghost := &models.Client{ID: domain.NewClientID(), Name: "Ghost", PAN: "ABCDE1234F", Status: models.ClientStatusActive}
	s.ErrorIs(s.clients.Update(s.ctx, ghost), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestClientDeleteCascades() {
	c := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)
	e1 := s.newEngagement(c.ID, 1, "open")
	e2 := s.newEngagement(c.ID, 2, "open")

	other := s.newClient("Other", "FGHIJ5678K", models.ClientStatusActive)
	kept := s.newEngagement(other.ID, 1, "open")

	s.Require().NoError(s.clients.Delete(s.ctx, c.ID))

	_, err := s.engagements.FindByID(s.ctx, e1.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.engagements.FindByID(s.ctx, e2.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.engagements.FindByID(s.ctx, kept.ID)
	s.NoError(err, "other clients' engagements must survive the cascade")
}

func (s *MemoryStoreSuite) TestClientListSearchAndStatus() {
	s.newClient("Acme Traders", "ABCDE1234F", models.ClientStatusActive)
	s.newClient("Globex", "FGHIJ5678K", models.ClientStatusInactive)
	s.newClient("Acme Mills", "KLMNO9012P", models.ClientStatusActive)

	list, total, err := s.clients.List(s.ctx, models.ClientListQuery{Page: 1, PageSize: 50, Search: "acme", SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Len(list, 2)
	s.Equal("Acme Mills", list[0].Name)
	s.Equal("Acme Traders", list[1].Name)

	_, total, err = s.clients.List(s.ctx, models.ClientListQuery{Page: 1, PageSize: 50, Search: "FGHIJ", SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(1, total, "search must also match PAN")

	_, total, err = s.clients.List(s.ctx, models.ClientListQuery{Page: 1, PageSize: 50, Status: "inactive", SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(1, total)
}

func (s *MemoryStoreSuite) TestClientListPagination() {
	for i := 0; i < 5; i++ {
		s.newClient(fmt.Sprintf("Client %d", i), "ABCDE1234F", models.ClientStatusActive)
	}

	page1, total, err := s.clients.List(s.ctx, models.ClientListQuery{Page: 1, PageSize: 2, SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Len(page1, 2)

	page3, total, err := s.clients.List(s.ctx, models.ClientListQuery{Page: 3, PageSize: 2, SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(5, total, "total must be invariant under paging")
	s.Len(page3, 1)

	beyond, total, err := s.clients.List(s.ctx, models.ClientListQuery{Page: 10, PageSize: 2, SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Empty(beyond, "out-of-range page yields empty items but a correct total")
}

func (s *MemoryStoreSuite) TestClientListSortDesc() {
	s.newClient("Alpha", "ABCDE1234F", models.ClientStatusActive)
	s.newClient("Beta", "FGHIJ5678K", models.ClientStatusActive)

	list, _, err := s.clients.List(s.ctx, models.ClientListQuery{Page: 1, PageSize: 50, SortBy: "name", SortOrder: models.SortDesc})
	s.Require().NoError(err)
	s.Equal("Beta", list[0].Name)
	s.Equal("Alpha", list[1].Name)
}

func (s *MemoryStoreSuite) TestEngagementCreateRequiresClient() {
	e, err := models.NewEngagement(domain.NewEngagementID(), domain.NewClientID(), 1, "", "Audit", "", "", "", "open", time.Now())
	s.Require().NoError(err)
	s.ErrorIs(s.engagements.Create(s.ctx, e), sentinel.ErrInvalidReference)
}

func (s *MemoryStoreSuite) TestEngagementFileNumberConflict() {
	c := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)
	s.newEngagement(c.ID, 1, "open")

	dup, err := models.NewEngagement(domain.NewEngagementID(), c.ID, 1, "", "Audit", "", "", "", "open", time.Now())
	s.Require().NoError(err)
	s.ErrorIs(s.engagements.Create(s.ctx, dup), sentinel.ErrConflict)

	// Same file number under a different client is fine.
	other := s.newClient("Other", "FGHIJ5678K", models.ClientStatusActive)
	s.newEngagement(other.ID, 1, "open")
}

func (s *MemoryStoreSuite) TestEngagementUpdateConflict() {
	c := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)
	s.newEngagement(c.ID, 1, "open")
	e2 := s.newEngagement(c.ID, 2, "open")

	e2.FileNumber = 1
	s.ErrorIs(s.engagements.Update(s.ctx, e2), sentinel.ErrConflict)

	e2.FileNumber = 3
	s.NoError(s.engagements.Update(s.ctx, e2))
}

func (s *MemoryStoreSuite) TestEngagementListFilters() {
	c1 := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)
	c2 := s.newClient("Globex", "FGHIJ5678K", models.ClientStatusActive)

	e1, err := models.NewEngagement(domain.NewEngagementID(), c1.ID, 1, "", "Audit", "", "R. Mehta", "", "open", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.engagements.Create(s.ctx, e1))
	e2, err := models.NewEngagement(domain.NewEngagementID(), c1.ID, 2, "", "Tax", "", "K. Shah", "", "closed", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.engagements.Create(s.ctx, e2))
	e3, err := models.NewEngagement(domain.NewEngagementID(), c2.ID, 1, "", "Audit", "", "R. Mehta", "", "open", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.engagements.Create(s.ctx, e3))

	_, total, err := s.engagements.List(s.ctx, models.EngagementListQuery{Page: 1, PageSize: 50, ClientID: c1.ID, SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(2, total)

	_, total, err = s.engagements.List(s.ctx, models.EngagementListQuery{Page: 1, PageSize: 50, Status: "open", SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(2, total)

	_, total, err = s.engagements.List(s.ctx, models.EngagementListQuery{Page: 1, PageSize: 50, Type: "Tax", SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(1, total)

	_, total, err = s.engagements.List(s.ctx, models.EngagementListQuery{Page: 1, PageSize: 50, Senior: "mehta", SortOrder: models.SortAsc})
	s.Require().NoError(err)
	s.Equal(2, total, "senior filter is a case-insensitive substring match")
}

func (s *MemoryStoreSuite) TestListByClientOrdersByFileNumber() {
	c := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)
	s.newEngagement(c.ID, 3, "open")
	s.newEngagement(c.ID, 1, "open")
	s.newEngagement(c.ID, 2, "open")

	list, total, err := s.engagements.ListByClient(s.ctx, c.ID, 1, 50)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Require().Len(list, 3)
	s.Equal(1, list[0].FileNumber)
	s.Equal(2, list[1].FileNumber)
	s.Equal(3, list[2].FileNumber)
}

func (s *MemoryStoreSuite) TestEngagementDelete() {
	c := s.newClient("Acme", "ABCDE1234F", models.ClientStatusActive)
	e := s.newEngagement(c.ID, 1, "open")

	s.Require().NoError(s.engagements.Delete(s.ctx, e.ID))
	_, err := s.engagements.FindByID(s.ctx, e.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.engagements.Delete(s.ctx, e.ID), sentinel.ErrNotFound)
}
