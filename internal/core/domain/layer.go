package domain

// ============================================================================
// Value Objects
// ============================================================================

// LayerType is the geometry family of a published layer. GeoServer reports
// vector types through the name of the layer's default style.
type LayerType string

const (
	LayerTypePoint      LayerType = "point"
	LayerTypeLine       LayerType = "line"
	LayerTypePolygon    LayerType = "polygon"
	LayerTypeRaster     LayerType = "raster"
	LayerTypeTimeSeries LayerType = "timeseries"
)

// IsVector reports whether the layer is served through WFS as features.
func (t LayerType) IsVector() bool {
	return t == LayerTypePoint || t == LayerTypeLine || t == LayerTypePolygon
}

// IsValid checks if the type is one of the known layer families
func (t LayerType) IsValid() bool {
	return t.IsVector() || t == LayerTypeRaster || t == LayerTypeTimeSeries
}

type FieldType string

const (
	FieldTypeNumerical   FieldType = "numerical"
	FieldTypeCategorical FieldType = "categorical"
)

var numericalSchemaTypes = map[string]bool{
	"xsd:long":   true,
	"xsd:int":    true,
	"xsd:double": true,
	"xsd:float":  true,
}

// ClassifyFieldType maps an XML schema type from DescribeFeatureType to a
// field type. Only integer and floating point types are numerical.
func ClassifyFieldType(schemaType string) FieldType {
	if numericalSchemaTypes[schemaType] {
		return FieldTypeNumerical
	}
	return FieldTypeCategorical
}

// ============================================================================
// Entities
// ============================================================================

// FieldStats holds the value range of a field. NoData is only known for
// raster coverages, where it comes from the first color map entry.
type FieldStats struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	NoData *float64 `json:"ndv,omitempty"`
}

type LayerField struct {
	FieldName  string      `json:"fieldName"`
	FieldType  FieldType   `json:"fieldType"`
	FieldStats *FieldStats `json:"fieldStats"`
}

// RasterField is the single pseudo-field every coverage exposes.
func RasterField(stats *FieldStats) LayerField {
	return LayerField{
		FieldName:  "coverage",
		FieldType:  FieldTypeNumerical,
		FieldStats: stats,
	}
}

// FirstNumericalField returns the name of the first numerical field, or nil.
func FirstNumericalField(fields []LayerField) *string {
	for _, f := range fields {
		if f.FieldType == FieldTypeNumerical {
			name := f.FieldName
			return &name
		}
	}
	return nil
}

type LayerCoverage struct {
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
}

// Layer is one map layer of a HydroShare resource as shown by the data viewer.
type Layer struct {
	LayerCode      string        `json:"layerCode"`
	LayerName      string        `json:"layerName"`
	ResourceID     string        `json:"resourceId"`
	LayerCoverage  LayerCoverage `json:"layerCoverage"`
	LayerType      LayerType     `json:"layerType"`
	LayerFields    []LayerField  `json:"layerFields"`
	LayerSymbology Symbology     `json:"layerSymbology"`
	LayerVisible   bool          `json:"layerVisible"`
	LayerOrder     *int          `json:"layerOrder,omitempty"`
}
