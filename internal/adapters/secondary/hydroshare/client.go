// Package hydroshare reads the HydroShare REST API.
package hydroshare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/proxy"
)

type client struct {
	baseURL string
	http    *proxy.Client
}

// NewHydroShareClient creates a HydroShare adapter rooted at baseURL
// (for example https://www.hydroshare.org).
func NewHydroShareClient(baseURL string, httpClient *proxy.Client) ports.HydroShareClient {
	return &client{baseURL: baseURL, http: httpClient}
}

type searchJSON struct {
	Count   any `json:"count"`
	Results []struct {
		ResourceType string `json:"resource_type"`
		Text         string `json:"text"`
	} `json:"results"`
}

// SearchResources reads one page of the resource search.
func (c *client) SearchResources(ctx context.Context, q ports.SearchQuery) (*domain.SearchPage, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	params := url.Values{}
	params.Set("resource_type", q.ResourceType)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("count", strconv.Itoa(q.Count))
	if q.Text != "" {
		params.Set("text", q.Text)
	}

	var resp searchJSON
	if err := c.http.GetJSON(ctx, c.baseURL+"/hsapi/resource/search?"+params.Encode(), false, &resp); err != nil {
		return nil, err
	}

	page := &domain.SearchPage{Count: resp.Count, Results: make([]domain.SearchResult, 0, len(resp.Results))}
	for _, r := range resp.Results {
		page.Results = append(page.Results, domain.SearchResult{ResourceType: r.ResourceType, Text: r.Text})
	}
	return page, nil
}

// flexFloat accepts a JSON number or a numeric string. HydroShare stores
// coverage values as entered, so both appear.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("coverage value %q: %w", s, err)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type sysmetaJSON struct {
	ResourceTitle   string `json:"resource_title"`
	Abstract        string `json:"abstract"`
	Creator         string `json:"creator"`
	DateCreated     string `json:"date_created"`
	DateLastUpdated string `json:"date_last_updated"`
	ResourceURL     string `json:"resource_url"`
	ResourceType    string `json:"resource_type"`
	Public          bool   `json:"public"`
	Discoverable    bool   `json:"discoverable"`
	Coverages       []struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"coverages"`
}

type spatialValueJSON struct {
	East       flexFloat `json:"east"`
	North      flexFloat `json:"north"`
	WestLimit  flexFloat `json:"westlimit"`
	SouthLimit flexFloat `json:"southlimit"`
	EastLimit  flexFloat `json:"eastlimit"`
	NorthLimit flexFloat `json:"northlimit"`
}

// GetSystemMetadata reads a resource's system metadata. Only point and box
// coverages are kept.
func (c *client) GetSystemMetadata(ctx context.Context, resourceID string) (*domain.SystemMetadata, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	rawURL := fmt.Sprintf("%s/hsapi/resource/%s/sysmeta/", c.baseURL, url.PathEscape(resourceID))

	var resp sysmetaJSON
	if err := c.http.GetJSON(ctx, rawURL, false, &resp); err != nil {
		return nil, err
	}

	meta := &domain.SystemMetadata{
		ResourceTitle:   resp.ResourceTitle,
		Abstract:        resp.Abstract,
		Creator:         resp.Creator,
		DateCreated:     resp.DateCreated,
		DateLastUpdated: resp.DateLastUpdated,
		ResourceURL:     resp.ResourceURL,
		ResourceType:    resp.ResourceType,
		Public:          resp.Public,
		Discoverable:    resp.Discoverable,
	}
	for _, cov := range resp.Coverages {
		if cov.Type != domain.CoverageTypePoint && cov.Type != domain.CoverageTypeBox {
			continue
		}
		var v spatialValueJSON
		if err := json.Unmarshal(cov.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: %s coverage of %s: %v", domain.ErrUpstreamMalformed, cov.Type, resourceID, err)
		}
		meta.Coverages = append(meta.Coverages, domain.ResourceCoverage{
			Type:       cov.Type,
			East:       float64(v.East),
			North:      float64(v.North),
			WestLimit:  float64(v.WestLimit),
			SouthLimit: float64(v.SouthLimit),
			EastLimit:  float64(v.EastLimit),
			NorthLimit: float64(v.NorthLimit),
		})
	}
	return meta, nil
}
