package pagination

import (
	"math"
	"reflect"
	"testing"
)

func TestSlice(t *testing.T) {
	ids := []int{10, 9, 8, 7, 6, 5, 4}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{"first page", 1, 3, []int{10, 9, 8}},
		{"middle page", 2, 3, []int{7, 6, 5}},
		{"partial last page", 3, 3, []int{4}},
		{"past the end", 4, 3, []int{}},
		{"far past the end", 1000, 20, []int{}},
		{"page larger than list", 1, 50, ids},
		{"exact fit", 1, 7, ids},
		{"page zero behaves as first", 0, 2, []int{10, 9}},
		{"negative page behaves as first", -3, 2, []int{10, 9}},
		{"zero page size", 1, 0, []int{}},
		{"negative page size", 2, -5, []int{}},
		{"overflowing page", math.MaxInt, math.MaxInt, []int{}},
		{"huge page size", 1, math.MaxInt, ids},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slice(ids, tt.page, tt.pageSize)
			if got == nil {
				t.Fatal("Slice returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Slice(page=%d, size=%d) = %v, want %v", tt.page, tt.pageSize, got, tt.want)
			}
			if tt.pageSize > 0 && len(got) > tt.pageSize {
				t.Errorf("len = %d exceeds page size %d", len(got), tt.pageSize)
			}
		})
	}
}

func TestSlice_EmptyInput(t *testing.T) {
	if got := Slice(nil, 1, 20); got == nil || len(got) != 0 {
		t.Errorf("Slice(nil) = %#v, want empty slice", got)
	}
}

func TestSlice_AppendDoesNotClobberSource(t *testing.T) {
	ids := []int{1, 2, 3, 4}
	page := Slice(ids, 1, 2)
	_ = append(page, 99)

	if ids[2] != 3 {
		t.Errorf("append on page modified source: %v", ids)
	}
}
