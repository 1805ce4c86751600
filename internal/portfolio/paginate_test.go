package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
		meta   PageMeta
	}{
		{
			name: "whole sequence",
			offset: 0, limit: 5,
			want: []int{1, 2, 3, 4, 5},
			meta: PageMeta{Total: 5, Returned: 5, Offset: 0, Limit: 5, HasMore: false, TotalPages: 1},
		},
		{
			name: "no limit",
			offset: 0, limit: 0,
			want: []int{1, 2, 3, 4, 5},
			meta: PageMeta{Total: 5, Returned: 5, Offset: 0, Limit: 5, HasMore: false, TotalPages: 1},
		},
		{
			name: "first page",
			offset: 0, limit: 2,
			want: []int{1, 2},
			meta: PageMeta{Total: 5, Returned: 2, Offset: 0, Limit: 2, HasMore: true, TotalPages: 3},
		},
		{
			name: "last partial page",
			offset: 4, limit: 2,
			want: []int{5},
			meta: PageMeta{Total: 5, Returned: 1, Offset: 4, Limit: 2, HasMore: false, TotalPages: 3},
		},
		{
			name: "negative offset clamps",
			offset: -3, limit: 1,
			want: []int{1},
			meta: PageMeta{Total: 5, Returned: 1, Offset: 0, Limit: 1, HasMore: true, TotalPages: 5},
		},
		{
			name: "offset past end",
			offset: 10, limit: 2,
			want: []int{},
			meta: PageMeta{Total: 5, Returned: 0, Offset: 10, Limit: 2, HasMore: false, TotalPages: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, meta := Paginate(items, tt.offset, tt.limit)
			assert.Equal(t, tt.want, page)
			assert.Equal(t, tt.meta, meta)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page, meta := Paginate([]string{}, 0, 0)
	assert.Empty(t, page)
	assert.Equal(t, PageMeta{}, meta)
}

func TestPaginate_ExtremeBounds(t *testing.T) {
	page, meta := Paginate([]int{1, 2, 3, 4, 5}, 2, math.MaxInt)
	assert.Equal(t, []int{3, 4, 5}, page)
	assert.Equal(t, PageMeta{Total: 5, Returned: 3, Offset: 2, Limit: math.MaxInt, HasMore: false, TotalPages: 1}, meta)

	page, meta = Paginate([]int{1, 2, 3}, math.MaxInt, 10)
	assert.Empty(t, page)
	assert.Equal(t, PageMeta{Total: 3, Returned: 0, Offset: math.MaxInt, Limit: 10, HasMore: false, TotalPages: 1}, meta)

	page, meta = Paginate([]int{1, 2, 3}, math.MaxInt, math.MaxInt)
	assert.Empty(t, page)
	assert.False(t, meta.HasMore)
}
