package domain

import "encoding/json"

// TimeSeriesPoint is one observation. A nil Value marks a no-data reading.
type TimeSeriesPoint struct {
	DateTime string
	Value    *string
}

// NewTimeSeriesPoint masks readings equal to the series' no-data value.
func NewTimeSeriesPoint(dateTime, raw, noDataValue string) TimeSeriesPoint {
	p := TimeSeriesPoint{DateTime: dateTime}
	if raw != "" && raw != noDataValue {
		v := raw
		p.Value = &v
	}
	return p
}

// MarshalJSON encodes the point as the [dateTime, value] pair the charts
// consume.
func (p TimeSeriesPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.DateTime, p.Value})
}

// TimeSeries is a decoded WaterML 1.1 values response.
type TimeSeries struct {
	NoDataValue string
	UnitName    *string
	Points      []TimeSeriesPoint
}

// Database is a HydroServer database; each one is a time series layer.
type Database struct {
	DatabaseID   string
	DatabaseName string
	NetworkID    string
}

type Site struct {
	SiteName  string
	SiteCode  string
	Latitude  float64
	Longitude float64
}

// ReferencedTimeSeries is one entry of a HydroServer ReFTS catalog.
type ReferencedTimeSeries struct {
	Site              Site
	VariableName      string
	VariableCode      string
	SampleMedium      string
	BeginDate         string
	EndDate           string
	ValueCount        int
	MethodLink        string
	MethodDescription string
}
