package domain

import (
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureSuffix(t *testing.T) {
	assert.Equal(t, "42", FeatureSuffix("roads.42"))
	assert.Equal(t, "7", FeatureSuffix("a.b.7"))
	assert.Equal(t, "9", FeatureSuffix("9"))
}

func TestAlphabeticalFeatureIndex(t *testing.T) {
	// ids 1..12 sorted as strings: 1 10 11 12 2 3 4 5 6 7 8 9
	tests := []struct {
		fid   string
		index int
	}{
		{"layer.1", 0},
		{"layer.10", 1},
		{"layer.12", 3},
		{"layer.2", 4},
		{"layer.9", 11},
	}

	for _, tt := range tests {
		t.Run(tt.fid, func(t *testing.T) {
			index, ok := AlphabeticalFeatureIndex(tt.fid, 12)
			assert.True(t, ok)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestAlphabeticalFeatureIndex_OutOfRange(t *testing.T) {
	_, ok := AlphabeticalFeatureIndex("layer.13", 12)
	assert.False(t, ok)

	_, ok = AlphabeticalFeatureIndex("layer.1", 0)
	assert.False(t, ok)

	_, ok = AlphabeticalFeatureIndex("layer.0", 12)
	assert.False(t, ok)

	_, ok = AlphabeticalFeatureIndex("layer.07", 12)
	assert.False(t, ok)

	_, ok = AlphabeticalFeatureIndex("layer.abc", 12)
	assert.False(t, ok)

	_, ok = AlphabeticalFeatureIndex("layer.1", maxIndexedFeatures+1)
	assert.False(t, ok)
}

func TestAlphabeticalFeatureIndex_MatchesStringSort(t *testing.T) {
	for _, count := range []int{1, 9, 10, 11, 99, 100, 101, 250, 1000, 1234} {
		ids := make([]string, count)
		for i := range ids {
			ids[i] = strconv.Itoa(i + 1)
		}
		sort.Strings(ids)

		for want, id := range ids {
			index, ok := AlphabeticalFeatureIndex("layer."+id, count)
			if !assert.True(t, ok, "count %d id %s", count, id) {
				continue
			}
			assert.Equal(t, want, index, "count %d id %s", count, id)
		}
	}
}

func TestAlphabeticalFeatureIndex_LargeLayer(t *testing.T) {
	// 1, 10, 100, ..., 10000000 lead a layer of ten million features.
	index, ok := AlphabeticalFeatureIndex("layer.10000000", 10_000_000)
	assert.True(t, ok)
	assert.Equal(t, 7, index)

	index, ok = AlphabeticalFeatureIndex("layer.9999999", 10_000_000)
	assert.True(t, ok)
	assert.Equal(t, 9_999_999, index)
}

func TestFeature_Values(t *testing.T) {
	f := Feature{ID: "x.1", Properties: map[string]any{"a": 1.0, "b": "two"}}
	assert.Equal(t, []any{"two", 1.0, nil}, f.Values([]string{"b", "a", "c"}))
}
