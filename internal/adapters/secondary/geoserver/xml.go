package geoserver

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hydroshare-viewer-service/internal/core/domain"
)

// XML namespaces of the OGC documents GeoServer returns.
const (
	nsWFS   = "http://www.opengis.net/wfs"
	nsWMS   = "http://www.opengis.net/wms"
	nsWCS11 = "http://www.opengis.net/wcs/1.1.1"
	nsWCS20 = "http://www.opengis.net/wcs/2.0"
	nsOWS   = "http://www.opengis.net/ows"
	nsOWS11 = "http://www.opengis.net/ows/1.1"
	nsSLD   = "http://www.opengis.net/sld"
	nsXSD   = "http://www.w3.org/2001/XMLSchema"
	nsGML   = "http://www.opengis.net/gml"
)

// decodeAll decodes every element called name, at any depth, into a T.
// Matched elements are consumed whole, so a match nested inside another
// match is only seen through the outer value.
func decodeAll[T any](body []byte, name xml.Name) ([]T, error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	var out []T
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name != name {
			continue
		}
		var v T
		if err := d.DecodeElement(&v, &se); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrUpstreamMalformed, name.Local, err)
		}
		out = append(out, v)
	}
}

// decodeFirst decodes the first element called name. It fails when the
// document has none.
func decodeFirst[T any](body []byte, name xml.Name) (T, error) {
	var zero T
	d := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return zero, fmt.Errorf("%w: no %s element", domain.ErrUpstreamMalformed, name.Local)
		}
		if err != nil {
			return zero, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name != name {
			continue
		}
		var v T
		if err := d.DecodeElement(&v, &se); err != nil {
			return zero, fmt.Errorf("%w: decode %s: %v", domain.ErrUpstreamMalformed, name.Local, err)
		}
		return v, nil
	}
}

// firstTextByLocalName returns the text of the first element whose local
// name matches outside the GML and WFS namespaces. Feature members are
// qualified with the workspace namespace URI, which the client does not know.
func firstTextByLocalName(body []byte, local string) (string, bool, error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("%w: %v", domain.ErrUpstreamMalformed, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != local || se.Name.Space == nsGML || se.Name.Space == nsWFS {
			continue
		}
		var text string
		if err := d.DecodeElement(&text, &se); err != nil {
			return "", false, fmt.Errorf("%w: decode %s: %v", domain.ErrUpstreamMalformed, local, err)
		}
		return strings.TrimSpace(text), true, nil
	}
}

// owsBoundingBox is an OWS WGS84BoundingBox with "x y" corner strings.
type owsBoundingBox struct {
	LowerCorner string `xml:"LowerCorner"`
	UpperCorner string `xml:"UpperCorner"`
}

func (b owsBoundingBox) coverage() (domain.LayerCoverage, error) {
	minX, minY, err := parseCorner(b.LowerCorner)
	if err != nil {
		return domain.LayerCoverage{}, err
	}
	maxX, maxY, err := parseCorner(b.UpperCorner)
	if err != nil {
		return domain.LayerCoverage{}, err
	}
	return domain.LayerCoverage{MaxX: maxX, MaxY: maxY, MinX: minX, MinY: minY}, nil
}

func parseCorner(s string) (x, y float64, err error) {
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: corner %q", domain.ErrUpstreamMalformed, s)
	}
	if x, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, fmt.Errorf("%w: corner %q", domain.ErrUpstreamMalformed, s)
	}
	if y, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, fmt.Errorf("%w: corner %q", domain.ErrUpstreamMalformed, s)
	}
	return x, y, nil
}
