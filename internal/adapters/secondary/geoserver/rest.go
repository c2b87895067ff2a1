package geoserver

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"hydroshare-viewer-service/internal/core/domain"
)

type layerJSON struct {
	Layer struct {
		DefaultStyle struct {
			Name string `json:"name"`
		} `json:"defaultStyle"`
	} `json:"layer"`
}

type colorMapEntry struct {
	Quantity string `xml:"quantity,attr"`
}

// GetLayerStyleName returns the name of a layer's default style. HydroShare
// publishes vector layers with a style named after the geometry type.
func (c *client) GetLayerStyleName(ctx context.Context, layerCode string) (string, error) {
	rawURL := fmt.Sprintf("%s/rest/layers/%s.json", c.baseURL, url.PathEscape(layerCode))

	var resp layerJSON
	if err := c.getJSON(ctx, rawURL, true, &resp); err != nil {
		return "", err
	}
	if resp.Layer.DefaultStyle.Name == "" {
		return "", fmt.Errorf("%w: layer %s has no default style", domain.ErrUpstreamMalformed, layerCode)
	}
	return resp.Layer.DefaultStyle.Name, nil
}

// GetStyleColorMap returns the color map quantities of an SLD style in
// document order.
func (c *client) GetStyleColorMap(ctx context.Context, workspace, style string) ([]float64, error) {
	rawURL := fmt.Sprintf("%s/rest/workspaces/%s/styles/%s.sld", c.baseURL, url.PathEscape(workspace), url.PathEscape(style))

	body, err := c.get(ctx, rawURL, true)
	if err != nil {
		return nil, err
	}

	entries, err := decodeAll[colorMapEntry](body, xml.Name{Space: nsSLD, Local: "ColorMapEntry"})
	if err != nil {
		return nil, err
	}

	quantities := make([]float64, 0, len(entries))
	for _, e := range entries {
		q, err := strconv.ParseFloat(strings.TrimSpace(e.Quantity), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: color map quantity %q", domain.ErrUpstreamMalformed, e.Quantity)
		}
		quantities = append(quantities, q)
	}
	return quantities, nil
}
