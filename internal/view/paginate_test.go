package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	p := Paginate(numbers(47), 2, 20)

	assert.Equal(t, 20, p.StartIndex)
	assert.Equal(t, 40, p.EndIndex)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 47, p.TotalItems)
	assert.Len(t, p.Items, 20)
	assert.Equal(t, 21, p.Items[0])
	assert.Equal(t, 40, p.Items[19])
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
}

func TestPaginate_Edges(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		page      int
		size      int
		wantLen   int
		wantPages int
		wantStart int
	}{
		{"last partial page", 47, 3, 20, 7, 3, 40},
		{"past the end", 47, 9, 20, 0, 3, 160},
		{"empty", 0, 1, 20, 0, 0, 0},
		{"page below one", 5, 0, 2, 2, 3, 0},
		{"default size", 25, 1, 0, 20, 2, 0},
		{"exact multiple", 40, 2, 20, 20, 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(numbers(tt.n), tt.page, tt.size)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantStart, p.StartIndex)
		})
	}
}

func TestPaginate_DoesNotAliasAppend(t *testing.T) {
	items := numbers(10)
	p := Paginate(items, 1, 5)
	_ = append(p.Items, 99)
	assert.Equal(t, 6, items[5])
}
