package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults for zero values", 0, 0, 1, 5},
		{"defaults for negative values", -3, -1, 1, 5},
		{"valid values pass through", 3, 20, 3, 20},
		{"limit clamped to maximum", 1, 500, 1, 100},
		{"limit at maximum untouched", 1, 100, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePageLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		limit          int
		total          int
		wantOffset     int
		wantTotalPages int
	}{
		{"first page", 1, 5, 12, 0, 3},
		{"third page", 3, 5, 12, 10, 3},
		{"exact multiple", 2, 5, 10, 5, 2},
		{"empty collection", 1, 5, 0, 0, 0},
		{"single item", 1, 5, 1, 0, 1},
		{"page past the end still computes offset", 10, 5, 12, 45, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, totalPages := Paginate(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantTotalPages, totalPages)
		})
	}
}
