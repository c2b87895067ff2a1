package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(prefix string, n int) []DiscoverRow {
	out := make([]DiscoverRow, n)
	for i := range out {
		out[i] = DiscoverRow{"Composite Resource", fmt.Sprintf("%s-%d", prefix, i), "id"}
	}
	return out
}

func TestNewDiscoverRow(t *testing.T) {
	row, ok := NewDiscoverRow(SearchResult{
		ResourceType: "Composite Resource",
		Text:         "\n 0a1b2c \n\n  Snow Depth Survey  \nabstract",
	})
	require.True(t, ok)
	assert.Equal(t, DiscoverRow{"Composite Resource", "Snow Depth Survey", "0a1b2c"}, row)
}

func TestNewDiscoverRow_TooFewLines(t *testing.T) {
	_, ok := NewDiscoverRow(SearchResult{ResourceType: "Composite Resource", Text: "a\nb"})
	assert.False(t, ok)
}

func TestDiscoverWindow(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		length     int
		wantPage   int
		wantOffset int
	}{
		{"first page", 0, 10, 1, 0},
		{"aligned page", 20, 10, 3, 0},
		{"unaligned", 25, 10, 3, 5},
		{"offset inside first page", 3, 10, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, offset, err := DiscoverWindow(tt.start, tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestDiscoverWindow_Invalid(t *testing.T) {
	_, _, err := DiscoverWindow(0, 0)
	assert.ErrorIs(t, err, ErrInvalidPageLength)

	_, _, err = DiscoverWindow(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestMergeDiscoverPages(t *testing.T) {
	upper := rows("u", 10)
	lower := rows("l", 10)

	merged := MergeDiscoverPages(upper, lower, 4)
	require.Len(t, merged, 10)
	assert.Equal(t, "u-4", merged[0][1])
	assert.Equal(t, "u-9", merged[5][1])
	assert.Equal(t, "l-0", merged[6][1])
	assert.Equal(t, "l-3", merged[9][1])
}

func TestMergeDiscoverPages_NoOffset(t *testing.T) {
	merged := MergeDiscoverPages(rows("u", 10), rows("l", 10), 0)
	assert.Len(t, merged, 10)
	assert.Equal(t, "u-0", merged[0][1])
}

func TestMergeDiscoverPages_ShortLowerPage(t *testing.T) {
	merged := MergeDiscoverPages(rows("u", 10), rows("l", 2), 5)
	assert.Len(t, merged, 7)
}

func TestMergeDiscoverPages_OffsetPastUpper(t *testing.T) {
	merged := MergeDiscoverPages(rows("u", 3), nil, 5)
	assert.Empty(t, merged)
}
