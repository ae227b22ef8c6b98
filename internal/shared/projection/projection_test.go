package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		want        PageRequest
	}{
		{name: "defaults", page: 0, limit: 0, want: PageRequest{Page: 1, Limit: 10}},
		{name: "negative", page: -3, limit: -1, want: PageRequest{Page: 1, Limit: 10}},
		{name: "capped", page: 2, limit: 500, want: PageRequest{Page: 2, Limit: 100}},
		{name: "kept", page: 3, limit: 25, want: PageRequest{Page: 3, Limit: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPageRequest(tc.page, tc.limit))
		})
	}
	assert.Equal(t, 50, NewPageRequest(3, 25).Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage[string](nil, NewPageRequest(1, 10), 21)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, int64(21), page.Pagination.Total)

	empty := NewPage([]int{}, NewPageRequest(1, 10), 0)
	assert.Equal(t, 0, empty.Pagination.TotalPages)
}
