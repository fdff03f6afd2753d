package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		page  int
		limit int
		pages int
	}{
		{"exact multiple", 20, 1, 10, 2},
		{"partial last page", 21, 1, 10, 3},
		{"single short page", 3, 1, 10, 1},
		{"empty", 0, 1, 10, 0},
		{"limit one", 5, 2, 1, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPagination(c.total, c.page, c.limit)
			assert.Equal(t, c.pages, p.Pages)
			assert.Equal(t, c.total, p.Total)
			assert.Equal(t, c.page, p.Page)
			assert.Equal(t, c.limit, p.Limit)
		})
	}
}

func TestNewPaginationZeroLimit(t *testing.T) {
	p := NewPagination(10, 1, 0)
	assert.Equal(t, 0, p.Pages)
}
