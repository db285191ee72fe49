package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		perPage   int
		wantPages int
	}{
		{"exact division", 40, 1, 20, 2},
		{"partial last page", 41, 1, 20, 3},
		{"empty list still has one page", 0, 1, 20, 1},
		{"single item", 1, 1, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
		})
	}
}
