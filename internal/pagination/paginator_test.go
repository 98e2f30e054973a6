package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageLen(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perPage int
		number  int
		want    int
	}{
		{name: "full first page", total: 11, perPage: 10, number: 1, want: 10},
		{name: "trailing partial page", total: 11, perPage: 10, number: 2, want: 1},
		{name: "beyond last page", total: 11, perPage: 10, number: 3, want: 0},
		{name: "far beyond last page", total: 11, perPage: 10, number: 50, want: 0},
		{name: "empty collection", total: 0, perPage: 10, number: 1, want: 0},
		{name: "exact multiple", total: 20, perPage: 10, number: 2, want: 10},
		{name: "huge page number", total: 11, perPage: 10, number: 922337203685477582, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.number, tt.perPage, tt.total)
			assert.Equal(t, tt.want, p.Len())
		})
	}
}

func TestPageLenProperty(t *testing.T) {
	for total := int64(0); total <= 25; total++ {
		for perPage := 1; perPage <= 7; perPage++ {
			for number := 1; number <= 30; number++ {
				want := int(total) - (number-1)*perPage
				if want < 0 {
					want = 0
				}
				if want > perPage {
					want = perPage
				}
				assert.Equal(t, want, New(number, perPage, total).Len(), "N=%d P=%d k=%d", total, perPage, number)
			}
		}
	}
}

func TestPageNavigation(t *testing.T) {
	first := New(1, 10, 11)
	assert.Equal(t, 2, first.NumPages)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasOtherPages())
	assert.Equal(t, []int{1, 2}, first.Range())

	last := New(2, 10, 11)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 1, last.PreviousNumber())
	assert.Equal(t, 10, last.Offset())

	past := New(9, 10, 11)
	assert.Equal(t, 3, past.Number)
	assert.Equal(t, 2, past.PreviousNumber())

	huge := New(922337203685477582, 10, 11)
	assert.Equal(t, 3, huge.Number)
	assert.Equal(t, 20, huge.Offset())

	empty := New(1, 10, 0)
	assert.Equal(t, 1, empty.NumPages)
	assert.False(t, empty.HasOtherPages())
}

func TestParseNumber(t *testing.T) {
	tests := map[string]int{
		"":     1,
		"1":    1,
		"2":    2,
		"0":    1,
		"-4":   1,
		"abc":  1,
		"3.5":  1,
		"1000": 1000,

		"922337203685477582":   922337203685477582,
		"99999999999999999999": 1,
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ParseNumber(input))
		})
	}
}
