package domain

import "strings"

// CompositeResourceType is the only resource type the discover table lists.
const CompositeResourceType = "Composite Resource"

// SearchResult is one hit of the HydroShare resource search. Text is the
// indexed document: the resource id sits on line 1 and the title on line 3.
type SearchResult struct {
	ResourceType string
	Text         string
}

// SearchPage is one page of HydroShare search results.
type SearchPage struct {
	Count   any
	Results []SearchResult
}

// DiscoverRow is a discover table row: resource type, title, resource id.
type DiscoverRow []string

// NewDiscoverRow extracts the table columns from a search hit. Hits whose
// text does not carry the expected lines are rejected.
func NewDiscoverRow(r SearchResult) (DiscoverRow, bool) {
	lines := strings.Split(r.Text, "\n")
	if len(lines) < 4 {
		return nil, false
	}
	return DiscoverRow{r.ResourceType, strings.TrimSpace(lines[3]), strings.TrimSpace(lines[1])}, true
}

// DiscoverRows converts a whole search page, skipping malformed hits.
func DiscoverRows(results []SearchResult) []DiscoverRow {
	rows := make([]DiscoverRow, 0, len(results))
	for _, r := range results {
		if row, ok := NewDiscoverRow(r); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// DiscoverWindow maps a Datatables (start, length) request onto upstream
// search pages. The window starts at offset within 1-based page and spills
// into page+1 when offset is non-zero.
func DiscoverWindow(start, length int) (page, offset int, err error) {
	if length <= 0 {
		return 0, 0, ErrInvalidPageLength
	}
	if start < 0 {
		return 0, 0, ErrInvalidRequest
	}
	return start/length + 1, start % length, nil
}

// MergeDiscoverPages stitches the tail of the upper page to the head of the
// lower page so the result starts exactly at the requested record.
func MergeDiscoverPages(upper, lower []DiscoverRow, offset int) []DiscoverRow {
	rows := make([]DiscoverRow, 0, len(upper))
	if offset < len(upper) {
		rows = append(rows, upper[offset:]...)
	}
	if offset > len(lower) {
		offset = len(lower)
	}
	return append(rows, lower[:offset]...)
}
