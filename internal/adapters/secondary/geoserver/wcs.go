package geoserver

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	ports "hydroshare-viewer-service/internal/core/ports/output"
)

type wcsCoverageSummary struct {
	Identifier string         `xml:"http://www.opengis.net/wcs/1.1.1 Identifier"`
	BBox       owsBoundingBox `xml:"http://www.opengis.net/ows/1.1 WGS84BoundingBox"`
}

// ListCoverages returns the coverages of a workspace from WCS 1.1.1
// capabilities.
func (c *client) ListCoverages(ctx context.Context, namespace string) ([]ports.CoverageSummary, error) {
	params := url.Values{}
	params.Set("service", "WCS")
	params.Set("version", wcsSummaryVersion)
	params.Set("request", "GetCapabilities")
	params.Set("namespace", namespace)

	body, err := c.get(ctx, c.endpoint("wcs", params), true)
	if err != nil {
		return nil, err
	}

	summaries, err := decodeAll[wcsCoverageSummary](body, xml.Name{Space: nsWCS11, Local: "CoverageSummary"})
	if err != nil {
		return nil, err
	}

	out := make([]ports.CoverageSummary, 0, len(summaries))
	for _, s := range summaries {
		id := strings.TrimSpace(s.Identifier)
		if id == "" {
			continue
		}
		coverage, err := s.BBox.coverage()
		if err != nil {
			log.WithError(err).WithField("layer", id).Warn("coverage has no usable bounding box")
		}
		out = append(out, ports.CoverageSummary{Identifier: id, Coverage: coverage})
	}
	return out, nil
}

// ListCoverageIDs returns every coverage id from WCS 2.0.1 capabilities.
// Ids join workspace and name with "__".
func (c *client) ListCoverageIDs(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("service", "WCS")
	params.Set("version", wcsCatalogVersion)
	params.Set("request", "GetCapabilities")

	body, err := c.get(ctx, c.endpoint("wcs", params), true)
	if err != nil {
		return nil, err
	}

	ids, err := decodeAll[string](body, xml.Name{Space: nsWCS20, Local: "CoverageId"})
	if err != nil {
		return nil, err
	}
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	return ids, nil
}
