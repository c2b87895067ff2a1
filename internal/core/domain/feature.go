package domain

import (
	"math"
	"strconv"
	"strings"
)

// Feature is one GeoJSON feature returned by a WFS GetFeature request.
type Feature struct {
	ID         string
	Properties map[string]any
}

// Values returns the feature's properties in the given field order. Missing
// properties become nil.
func (f Feature) Values(fields []string) []any {
	values := make([]any, len(fields))
	for i, name := range fields {
		values[i] = f.Properties[name]
	}
	return values
}

// FeatureSuffix returns the numeric part of a GeoServer feature id such as
// "layer.42".
func FeatureSuffix(fid string) string {
	if i := strings.LastIndex(fid, "."); i >= 0 {
		return fid[i+1:]
	}
	return fid
}

// maxIndexedFeatures bounds the layer size AlphabeticalFeatureIndex accepts.
const maxIndexedFeatures = math.MaxInt32

// AlphabeticalFeatureIndex returns the position of a feature in a layer of
// count features when ids 1..count are sorted as strings. That is the row
// order the attribute table shows. ok is false when the id is out of range
// or not in canonical decimal form.
func AlphabeticalFeatureIndex(fid string, count int) (index int, ok bool) {
	suffix := FeatureSuffix(fid)
	v, err := strconv.Atoi(suffix)
	if err != nil || count <= 0 || count > maxIndexedFeatures || v < 1 || v > count || strconv.Itoa(v) != suffix {
		return 0, false
	}

	// Count the ids that sort before suffix, one digit length at a time.
	var rank int64
	lo, n := int64(1), int64(count)
	for length := 1; length <= len(strconv.Itoa(count)); length++ {
		hi := min(lo*10-1, n)

		var bound int64
		if length <= len(suffix) {
			prefix, _ := strconv.ParseInt(suffix[:length], 10, 64)
			bound = prefix
			if length < len(suffix) {
				bound++
			}
		} else {
			bound = int64(v)
			for range length - len(suffix) {
				bound *= 10
			}
		}

		if bound > lo {
			rank += min(bound, hi+1) - lo
		}
		lo *= 10
	}
	return int(rank), true
}
