package geoserver

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
)

type wmsGeographicBBox struct {
	West  float64 `xml:"http://www.opengis.net/wms westBoundLongitude"`
	East  float64 `xml:"http://www.opengis.net/wms eastBoundLongitude"`
	South float64 `xml:"http://www.opengis.net/wms southBoundLatitude"`
	North float64 `xml:"http://www.opengis.net/wms northBoundLatitude"`
}

type wmsStyle struct {
	Title string `xml:"http://www.opengis.net/wms Title"`
}

type wmsLayer struct {
	Name   string             `xml:"http://www.opengis.net/wms Name"`
	BBox   *wmsGeographicBBox `xml:"http://www.opengis.net/wms EX_GeographicBoundingBox"`
	Styles []wmsStyle         `xml:"http://www.opengis.net/wms Style"`
	Layers []wmsLayer         `xml:"http://www.opengis.net/wms Layer"`
}

// flatten appends the layer and its descendants in document order.
func (l wmsLayer) flatten(out []wmsLayer) []wmsLayer {
	out = append(out, l)
	for _, child := range l.Layers {
		out = child.flatten(out)
	}
	return out
}

// ListMapLayers returns the named layers of a workspace from WMS 1.3.0
// capabilities. The root layer, which only groups the others, is skipped.
func (c *client) ListMapLayers(ctx context.Context, namespace string) ([]ports.MapLayerSummary, error) {
	params := url.Values{}
	params.Set("service", "WMS")
	params.Set("version", wmsVersion)
	params.Set("request", "GetCapabilities")
	params.Set("namespace", namespace)

	body, err := c.get(ctx, c.endpoint("wms", params), true)
	if err != nil {
		return nil, err
	}

	roots, err := decodeAll[wmsLayer](body, xml.Name{Space: nsWMS, Local: "Layer"})
	if err != nil {
		return nil, err
	}

	var all []wmsLayer
	for _, root := range roots {
		all = root.flatten(all)
	}
	if len(all) > 0 {
		all = all[1:]
	}

	out := make([]ports.MapLayerSummary, 0, len(all))
	for _, l := range all {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		summary := ports.MapLayerSummary{Name: name}
		if len(l.Styles) > 0 {
			summary.StyleTitle = strings.TrimSpace(l.Styles[0].Title)
		}
		if l.BBox != nil {
			summary.Extent = domain.Extent{MinX: l.BBox.West, MinY: l.BBox.South, MaxX: l.BBox.East, MaxY: l.BBox.North}
		}
		out = append(out, summary)
	}
	return out, nil
}
