// Package geoserver reads layers published on GeoServer through its WFS, WCS
// and WMS endpoints and its REST API.
package geoserver

import (
	"context"
	"net/url"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/proxy"
)

// Protocol versions. Capabilities and GML requests use WFS 1.1.0, whose
// documents are in the plain wfs namespace; paged JSON reads use WFS 2.0.0
// for startIndex/count.
const (
	wfsCapabilitiesVersion = "1.1.0"
	wfsPagingVersion       = "2.0.0"
	wcsSummaryVersion      = "1.1.1"
	wcsCatalogVersion      = "2.0.1"
	wmsVersion             = "1.3.0"

	jsonOutputFormat = "application/json"
)

type client struct {
	baseURL string
	http    *proxy.Client
}

// NewGeoServerClient creates a GeoServer adapter rooted at baseURL
// (for example https://host/geoserver).
func NewGeoServerClient(baseURL string, httpClient *proxy.Client) ports.GeoServerClient {
	return &client{baseURL: baseURL, http: httpClient}
}

func (c *client) BaseURL() string { return c.baseURL }

func (c *client) endpoint(service string, params url.Values) string {
	return c.baseURL + "/" + service + "?" + params.Encode()
}

func (c *client) get(ctx context.Context, rawURL string, cacheable bool) ([]byte, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}
	return c.http.Get(ctx, rawURL, cacheable)
}

func (c *client) getJSON(ctx context.Context, rawURL string, cacheable bool, v any) error {
	if c.baseURL == "" {
		return domain.ErrServiceDisabled
	}
	return c.http.GetJSON(ctx, rawURL, cacheable, v)
}
