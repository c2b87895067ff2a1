package domain

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ============================================================================
// Map Layers
// ============================================================================

type Extent struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// RasterProperty carries the color ramp bounds of a raster layer.
type RasterProperty struct {
	Property string  `json:"property"`
	NDV      float64 `json:"ndv_value"`
	Min      float64 `json:"min_value"`
	Max      float64 `json:"max_value"`
}

// NewRasterProperty reads ramp bounds from the quantities of a raster
// style's color map: no-data, minimum, maximum.
func NewRasterProperty(quantities []float64) (RasterProperty, bool) {
	if len(quantities) < 3 {
		return RasterProperty{}, false
	}
	return RasterProperty{
		Property: "raster",
		NDV:      quantities[0],
		Min:      quantities[1],
		Max:      quantities[2],
	}, true
}

// MapLayer is a layer entry in the GIS viewer's layer list.
type MapLayer struct {
	LayerName       string             `json:"layerName"`
	LayerID         string             `json:"layerId"`
	LayerType       LayerType          `json:"layerType"`
	LayerGeometry   *FeatureCollection `json:"layerGeometry,omitempty"`
	LayerExtent     Extent             `json:"layerExtent"`
	LayerProperties []RasterProperty   `json:"layerProperties"`
}

var styleTitleTypes = map[string]LayerType{
	"Default Point":        LayerTypePoint,
	"Default Line":         LayerTypeLine,
	"Default Polygon":      LayerTypePolygon,
	"Default raster style": LayerTypeRaster,
}

// LayerTypeFromStyleTitle maps the title of a layer's default WMS style to
// its layer type. Unknown titles map to the empty type.
func LayerTypeFromStyleTitle(title string) LayerType {
	return styleTitleTypes[title]
}

// ============================================================================
// GeoJSON
// ============================================================================

type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type GeoFeature struct {
	Type     string        `json:"type"`
	Geometry PointGeometry `json:"geometry"`
}

type FeatureCollection struct {
	Type     string       `json:"type"`
	Features []GeoFeature `json:"features"`
}

// SiteFeatureCollection places every catalog site as a point.
func SiteFeatureCollection(series []ReferencedTimeSeries) *FeatureCollection {
	fc := &FeatureCollection{Type: "FeatureCollection", Features: make([]GeoFeature, 0, len(series))}
	for _, s := range series {
		fc.Features = append(fc.Features, GeoFeature{
			Type: "Feature",
			Geometry: PointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{s.Site.Longitude, s.Site.Latitude},
			},
		})
	}
	return fc
}

// SiteExtent is the bounding box of all catalog sites. An empty catalog has a
// zero extent.
func SiteExtent(series []ReferencedTimeSeries) Extent {
	if len(series) == 0 {
		return Extent{}
	}
	lons := make([]float64, len(series))
	lats := make([]float64, len(series))
	for i, s := range series {
		lons[i] = s.Site.Longitude
		lats[i] = s.Site.Latitude
	}
	return Extent{
		MinX: floats.Min(lons),
		MinY: floats.Min(lats),
		MaxX: floats.Max(lons),
		MaxY: floats.Max(lats),
	}
}

// ============================================================================
// Discovery
// ============================================================================

const (
	DiscoveryVector     = "VECTOR"
	DiscoveryRaster     = "RASTER"
	DiscoveryTimeSeries = "TIMESERIES"
)

type DiscoveryLayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ResourceID string `json:"resource_id"`
	Type       string `json:"type"`
}

// VectorDiscoveryLayer builds a catalog entry from a WFS type name. Layers in
// the shared workspace and names without a resource workspace are skipped.
func VectorDiscoveryLayer(typeName string) (DiscoveryLayer, bool) {
	workspace, name, found := strings.Cut(typeName, ":")
	if !found || workspace == SharedWorkspace {
		return DiscoveryLayer{}, false
	}
	resourceID, err := WorkspaceID(workspace)
	if err != nil {
		return DiscoveryLayer{}, false
	}
	return DiscoveryLayer{ID: typeName, Name: name, ResourceID: resourceID, Type: DiscoveryVector}, true
}

// RasterDiscoveryLayer builds a catalog entry from a WCS 2.0 coverage id,
// which joins workspace and name with a double underscore.
func RasterDiscoveryLayer(coverageID string) (DiscoveryLayer, bool) {
	workspace, name, found := strings.Cut(coverageID, "__")
	if !found || workspace == SharedWorkspace {
		return DiscoveryLayer{}, false
	}
	resourceID, err := WorkspaceID(workspace)
	if err != nil {
		return DiscoveryLayer{}, false
	}
	return DiscoveryLayer{
		ID:         workspace + ":" + name,
		Name:       name,
		ResourceID: resourceID,
		Type:       DiscoveryRaster,
	}, true
}

// TimeSeriesDiscoveryLayer builds a catalog entry from a HydroServer database.
func TimeSeriesDiscoveryLayer(db Database) DiscoveryLayer {
	return DiscoveryLayer{ID: db.DatabaseID, Name: db.DatabaseName, ResourceID: db.NetworkID, Type: DiscoveryTimeSeries}
}

// ============================================================================
// Attribute Tables
// ============================================================================

type AttributeTable struct {
	Properties []string `json:"properties"`
	Values     [][]any  `json:"values"`
}

// TransposeColumns turns per-property columns into rows. Rows stop at the
// shortest column.
func TransposeColumns(columns [][]any) [][]any {
	if len(columns) == 0 {
		return [][]any{}
	}
	n := len(columns[0])
	for _, col := range columns[1:] {
		if len(col) < n {
			n = len(col)
		}
	}
	rows := make([][]any, n)
	for i := range rows {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = col[i]
		}
		rows[i] = row
	}
	return rows
}

var timeSeriesTableColumns = []string{
	"Site Name",
	"Site Code",
	"Variable Name",
	"Variable Code",
	"Sample Medium",
	"Start Date",
	"End Date",
	"Value Count",
	"Method Link",
	"Method Description",
	"Latitude",
	"Longitude",
}

// TimeSeriesAttributeTable lists one catalog entry per row.
func TimeSeriesAttributeTable(series []ReferencedTimeSeries) AttributeTable {
	table := AttributeTable{
		Properties: append([]string(nil), timeSeriesTableColumns...),
		Values:     make([][]any, 0, len(series)),
	}
	for _, s := range series {
		table.Values = append(table.Values, []any{
			s.Site.SiteName,
			s.Site.SiteCode,
			s.VariableName,
			s.VariableCode,
			s.SampleMedium,
			s.BeginDate,
			s.EndDate,
			s.ValueCount,
			s.MethodLink,
			s.MethodDescription,
			s.Site.Latitude,
			s.Site.Longitude,
		})
	}
	return table
}
