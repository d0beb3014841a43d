package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "caoffice/pkg/domain-errors"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortOrder
		wantErr bool
	}{
		{raw: "", want: SortAsc},
		{raw: "asc", want: SortAsc},
		{raw: "ASC", want: SortAsc},
		{raw: "desc", want: SortDesc},
		{raw: "Desc", want: SortDesc},
		{raw: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSortOrder(tt.raw)
		if tt.wantErr {
			require.Error(t, err, "raw=%q", tt.raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			continue
		}
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestSortColumnAllowLists(t *testing.T) {
	_, ok := ClientSortColumn("name")
	assert.True(t, ok)
	_, ok = ClientSortColumn("file_number")
	assert.False(t, ok, "engagement columns must not leak into the client allow-list")
	_, ok = ClientSortColumn("name; DROP TABLE clients")
	assert.False(t, ok)

	_, ok = EngagementSortColumn("file_number")
	assert.True(t, ok)
	_, ok = EngagementSortColumn("nonexistent")
	assert.False(t, ok)
}

func TestNewPage(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		p := NewPage([]int{1, 2, 3}, 101, 1, 50)
		assert.Equal(t, 101, p.Total)
		assert.Equal(t, 3, p.TotalPages)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := NewPage([]int{1}, 100, 2, 50)
		assert.Equal(t, 2, p.TotalPages)
	})

	t.Run("zero total means zero pages", func(t *testing.T) {
		p := NewPage[int](nil, 0, 1, 50)
		assert.Equal(t, 0, p.TotalPages)
		assert.NotNil(t, p.Items, "items must serialize as [] not null")
		assert.Empty(t, p.Items)
	})
}

func TestQueryOffset(t *testing.T) {
	assert.Equal(t, 0, ClientListQuery{Page: 1, PageSize: 50}.Offset())
	assert.Equal(t, 100, ClientListQuery{Page: 3, PageSize: 50}.Offset())
	assert.Equal(t, 20, EngagementListQuery{Page: 3, PageSize: 10}.Offset())
}
