package domain

import "math/rand/v2"

// Palette is the set of colors new layers are drawn from.
var Palette = []string{
	"#f4cccc", "#fce5cd", "#fff2cc", "#d9ead3", "#d0e0e3", "#cfe2f3", "#d9d2e9", "#ead1dc",
	"#ea9999", "#f9cb9c", "#ffe599", "#b6d7a8", "#a2c4c9", "#9fc5e8", "#b4a7d6", "#d5a6bd",
	"#e06666", "#f6b26b", "#ffd966", "#93c47d", "#76a5af", "#6fa8dc", "#8e7cc3", "#c27ba0",
	"#c00", "#e69138", "#f1c232", "#6aa84f", "#45818e", "#3d85c6", "#674ea7", "#a64d79",
}

// ColorPicker chooses one color out of a palette.
type ColorPicker func(palette []string) string

// RandomColor picks uniformly from the palette.
func RandomColor(palette []string) string {
	return palette[rand.IntN(len(palette))]
}

// Symbology is the default drawing style the UI applies to a new layer. The
// concrete type depends on the layer type.
type Symbology interface {
	symbology()
}

type LabelStyle struct {
	LabelField   string  `json:"labelField"`
	LabelColor   string  `json:"labelColor"`
	LabelSize    int     `json:"labelSize"`
	LabelOpacity float64 `json:"labelOpacity"`
	LabelFont    string  `json:"labelFont"`
}

var defaultLabel = LabelStyle{
	LabelField:   "none",
	LabelColor:   "#000000",
	LabelSize:    12,
	LabelOpacity: 1,
	LabelFont:    "SansSerif",
}

type PointSymbology struct {
	FillType      string  `json:"fillType"`
	FillShape     string  `json:"fillShape"`
	FillColor     string  `json:"fillColor"`
	FillOpacity   float64 `json:"fillOpacity"`
	FillField     *string `json:"fillField"`
	FillGradient  string  `json:"fillGradient"`
	FillSize      int     `json:"fillSize"`
	StrokeColor   string  `json:"strokeColor"`
	StrokeOpacity float64 `json:"strokeOpacity"`
	StrokeSize    int     `json:"strokeSize"`
	LabelStyle
}

type LineSymbology struct {
	StrokeType     string  `json:"strokeType"`
	StrokeField    *string `json:"strokeField"`
	StrokeGradient string  `json:"strokeGradient"`
	StrokeColor    string  `json:"strokeColor"`
	StrokeOpacity  float64 `json:"strokeOpacity"`
	StrokeSize     int     `json:"strokeSize"`
	LabelStyle
}

type PolygonSymbology struct {
	FillType      string  `json:"fillType"`
	FillColor     string  `json:"fillColor"`
	FillOpacity   float64 `json:"fillOpacity"`
	FillField     *string `json:"fillField"`
	FillGradient  string  `json:"fillGradient"`
	StrokeColor   string  `json:"strokeColor"`
	StrokeOpacity float64 `json:"strokeOpacity"`
	StrokeSize    int     `json:"strokeSize"`
	LabelStyle
}

type RasterSymbology struct {
	FillType     string  `json:"fillType"`
	FillOpacity  float64 `json:"fillOpacity"`
	FillField    string  `json:"fillField"`
	FillGradient string  `json:"fillGradient"`
	LabelField   string  `json:"labelField"`
}

func (PointSymbology) symbology()   {}
func (LineSymbology) symbology()    {}
func (PolygonSymbology) symbology() {}
func (RasterSymbology) symbology()  {}

// DefaultSymbology builds the initial style for a layer. Vector styles are
// keyed on the first numerical field; unknown layer types get no style.
func DefaultSymbology(layerType LayerType, fields []LayerField, pick ColorPicker) Symbology {
	if pick == nil {
		pick = RandomColor
	}

	switch layerType {
	case LayerTypePoint, LayerTypeTimeSeries:
		return PointSymbology{
			FillType:      "simple",
			FillShape:     "circle",
			FillColor:     pick(Palette),
			FillOpacity:   1,
			FillField:     FirstNumericalField(fields),
			FillGradient:  "gray",
			FillSize:      10,
			StrokeColor:   "#000000",
			StrokeOpacity: 1,
			StrokeSize:    1,
			LabelStyle:    defaultLabel,
		}
	case LayerTypeLine:
		return LineSymbology{
			StrokeType:     "simple",
			StrokeField:    FirstNumericalField(fields),
			StrokeGradient: "gray",
			StrokeColor:    pick(Palette),
			StrokeOpacity:  1,
			StrokeSize:     1,
			LabelStyle:     defaultLabel,
		}
	case LayerTypePolygon:
		return PolygonSymbology{
			FillType:      "simple",
			FillColor:     pick(Palette),
			FillOpacity:   1,
			FillField:     FirstNumericalField(fields),
			FillGradient:  "gray",
			StrokeColor:   "#000000",
			StrokeOpacity: 1,
			StrokeSize:    1,
			LabelStyle:    defaultLabel,
		}
	case LayerTypeRaster:
		return RasterSymbology{
			FillType:     "gradient",
			FillOpacity:  1,
			FillField:    "coverage",
			FillGradient: "gray",
			LabelField:   "none",
		}
	}
	return nil
}
