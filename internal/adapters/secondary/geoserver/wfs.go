package geoserver

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
)

type wfsFeatureType struct {
	Name string         `xml:"http://www.opengis.net/wfs Name"`
	BBox owsBoundingBox `xml:"http://www.opengis.net/ows WGS84BoundingBox"`
}

type xsdSequence struct {
	Elements []struct {
		Name string `xml:"name,attr"`
		Type string `xml:"type,attr"`
	} `xml:"http://www.w3.org/2001/XMLSchema element"`
}

type wfsFeatureCollection struct {
	NumberOfFeatures string `xml:"numberOfFeatures,attr"`
}

type featureCollectionJSON struct {
	Features []struct {
		ID         string         `json:"id"`
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

type describeFeatureTypeJSON struct {
	FeatureTypes []struct {
		Properties []struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"featureTypes"`
}

func (c *client) capabilitiesURL(namespace string) string {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", wfsCapabilitiesVersion)
	params.Set("request", "GetCapabilities")
	if namespace != "" {
		params.Set("namespace", namespace)
	}
	return c.endpoint("wfs", params)
}

// ListFeatureTypes returns the feature types of a workspace with their
// WGS84 bounding boxes.
func (c *client) ListFeatureTypes(ctx context.Context, namespace string) ([]ports.FeatureTypeSummary, error) {
	body, err := c.get(ctx, c.capabilitiesURL(namespace), true)
	if err != nil {
		return nil, err
	}

	types, err := decodeAll[wfsFeatureType](body, xml.Name{Space: nsWFS, Local: "FeatureType"})
	if err != nil {
		return nil, err
	}

	out := make([]ports.FeatureTypeSummary, 0, len(types))
	for _, ft := range types {
		name := strings.TrimSpace(ft.Name)
		if name == "" {
			continue
		}
		coverage, err := ft.BBox.coverage()
		if err != nil {
			log.WithError(err).WithField("layer", name).Warn("feature type has no usable bounding box")
		}
		out = append(out, ports.FeatureTypeSummary{Name: name, Coverage: coverage})
	}
	return out, nil
}

// ListFeatureTypeNames returns every wfs:Name in the server capabilities.
func (c *client) ListFeatureTypeNames(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.capabilitiesURL(""), true)
	if err != nil {
		return nil, err
	}

	names, err := decodeAll[string](body, xml.Name{Space: nsWFS, Local: "Name"})
	if err != nil {
		return nil, err
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names, nil
}

// DescribeFeatureType returns the attribute fields of a feature type. The
// first schema element is the geometry and is dropped.
func (c *client) DescribeFeatureType(ctx context.Context, typeName string) ([]ports.SchemaField, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", wfsCapabilitiesVersion)
	params.Set("request", "DescribeFeatureType")
	params.Set("typename", typeName)

	body, err := c.get(ctx, c.endpoint("wfs", params), true)
	if err != nil {
		return nil, err
	}

	seq, err := decodeFirst[xsdSequence](body, xml.Name{Space: nsXSD, Local: "sequence"})
	if err != nil {
		return nil, err
	}

	fields := make([]ports.SchemaField, 0, len(seq.Elements))
	for i, el := range seq.Elements {
		if i == 0 {
			continue
		}
		fields = append(fields, ports.SchemaField{Name: el.Name, Type: el.Type})
	}
	return fields, nil
}

// ListFeatureProperties returns the JSON schema property names of a feature
// type, geometry included.
func (c *client) ListFeatureProperties(ctx context.Context, typeName string) ([]string, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", wfsPagingVersion)
	params.Set("request", "DescribeFeatureType")
	params.Set("typeNames", typeName)
	params.Set("outputFormat", jsonOutputFormat)

	var resp describeFeatureTypeJSON
	if err := c.getJSON(ctx, c.endpoint("wfs", params), true, &resp); err != nil {
		return nil, err
	}
	if len(resp.FeatureTypes) == 0 {
		return nil, fmt.Errorf("%w: no feature type %s", domain.ErrUpstreamMalformed, typeName)
	}

	props := make([]string, 0, len(resp.FeatureTypes[0].Properties))
	for _, p := range resp.FeatureTypes[0].Properties {
		props = append(props, p.Name)
	}
	return props, nil
}

// CountFeatures asks for the hit count of a feature type.
func (c *client) CountFeatures(ctx context.Context, typeName string) (int, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", wfsCapabilitiesVersion)
	params.Set("request", "GetFeature")
	params.Set("typeName", typeName)
	params.Set("resultType", "hits")

	body, err := c.get(ctx, c.endpoint("wfs", params), false)
	if err != nil {
		return 0, err
	}

	fc, err := decodeFirst[wfsFeatureCollection](body, xml.Name{Space: nsWFS, Local: "FeatureCollection"})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(fc.NumberOfFeatures))
	if err != nil {
		return 0, fmt.Errorf("%w: numberOfFeatures %q", domain.ErrUpstreamMalformed, fc.NumberOfFeatures)
	}
	return n, nil
}

// GetFeatures reads one page of features as GeoJSON.
func (c *client) GetFeatures(ctx context.Context, q ports.FeatureQuery) ([]domain.Feature, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", wfsPagingVersion)
	params.Set("request", "GetFeature")
	params.Set("typeNames", q.TypeName)
	params.Set("outputFormat", jsonOutputFormat)
	params.Set("startIndex", strconv.Itoa(q.StartIndex))
	if q.Count > 0 {
		params.Set("count", strconv.Itoa(q.Count))
	}
	if len(q.PropertyNames) > 0 {
		params.Set("propertyName", strings.Join(q.PropertyNames, ","))
	}

	return c.readFeatures(ctx, c.endpoint("wfs", params))
}

// GetFeaturesByURL runs a GetFeature request built by the map UI. The URL
// must point at this GeoServer.
func (c *client) GetFeaturesByURL(ctx context.Context, featureURL string, propertyNames []string) ([]domain.Feature, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	u, err := url.Parse(featureURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeatureURLNotAllowed, err)
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse geoserver url: %w", err)
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return nil, domain.ErrFeatureURLNotAllowed
	}

	if len(propertyNames) > 0 {
		query := u.Query()
		query.Set("propertyName", strings.Join(propertyNames, ","))
		u.RawQuery = query.Encode()
	}

	return c.readFeatures(ctx, u.String())
}

func (c *client) readFeatures(ctx context.Context, rawURL string) ([]domain.Feature, error) {
	var resp featureCollectionJSON
	if err := c.getJSON(ctx, rawURL, false, &resp); err != nil {
		return nil, err
	}

	features := make([]domain.Feature, 0, len(resp.Features))
	for _, f := range resp.Features {
		features = append(features, domain.Feature{ID: f.ID, Properties: f.Properties})
	}
	return features, nil
}

// GetFirstPropertyValue returns the property of the first feature in the
// given sort order, which is the minimum or maximum of that property.
func (c *client) GetFirstPropertyValue(ctx context.Context, typeName, property string, order ports.SortOrder) (string, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", wfsCapabilitiesVersion)
	params.Set("request", "GetFeature")
	params.Set("typename", typeName)
	params.Set("maxFeatures", "1")
	params.Set("sortBy", property+" "+string(order))
	params.Set("propertyName", property)

	body, err := c.get(ctx, c.endpoint("wfs", params), false)
	if err != nil {
		return "", err
	}

	value, found, err := firstTextByLocalName(body, property)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: no %s value in %s", domain.ErrUpstreamMalformed, property, typeName)
	}
	return value, nil
}
