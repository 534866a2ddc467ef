package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back", 0, 10, 0, 10},
		{"oversized page size capped", 1, 500, 0, DefaultPageSize},
		{"zero size falls back", 2, 0, 10, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		info := NewPaginationInfo(25, 1, 10)
		if info.TotalPages != 3 {
			t.Errorf("TotalPages = %d, want 3", info.TotalPages)
		}
		if info.TotalItems != 25 {
			t.Errorf("TotalItems = %d, want 25", info.TotalItems)
		}
	})

	t.Run("empty result keeps one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		if info.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", info.TotalPages)
		}
		if info.CurrentPage != 1 {
			t.Errorf("CurrentPage = %d, want 1", info.CurrentPage)
		}
	})

	t.Run("page clamped to last", func(t *testing.T) {
		info := NewPaginationInfo(15, 9, 10)
		if info.CurrentPage != 2 {
			t.Errorf("CurrentPage = %d, want 2", info.CurrentPage)
		}
	})
}
