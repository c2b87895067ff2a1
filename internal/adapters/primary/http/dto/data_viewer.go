package dto

import (
	"encoding/json"
	"fmt"

	"hydroshare-viewer-service/internal/core/domain"
	"hydroshare-viewer-service/internal/core/services"
)

// ============================================================================
// Requests
// ============================================================================

type DiscoverTableRequest struct {
	Draw        int    `form:"draw"`
	SearchValue string `form:"searchValue"`
	Length      int    `form:"length"`
	Start       int    `form:"start"`
}

func (r DiscoverTableRequest) ToQuery() services.DiscoverQuery {
	return services.DiscoverQuery{Draw: r.Draw, Search: r.SearchValue, Start: r.Start, Length: r.Length}
}

type ResourceMetadataRequest struct {
	ResourceID string `form:"resourceId"`
}

type FieldStatisticsRequest struct {
	LayerType  string `form:"layer_type"`
	LayerCode  string `form:"layer_code"`
	ResourceID string `form:"resource_id"`
	FieldName  string `form:"field_name"`
	FieldType  string `form:"field_type"`
}

func (r FieldStatisticsRequest) ToQuery() services.FieldStatisticsQuery {
	return services.FieldStatisticsQuery{
		LayerType:  domain.LayerType(r.LayerType),
		LayerCode:  r.LayerCode,
		ResourceID: r.ResourceID,
		FieldName:  r.FieldName,
	}
}

type AttributeTableRequest struct {
	Draw        int      `form:"draw"`
	Length      int      `form:"length"`
	Start       int      `form:"start"`
	LayerFields []string `form:"layer_fields[]"`
	LayerCode   string   `form:"layer_code"`
}

func (r AttributeTableRequest) ToQuery() services.AttributeTableQuery {
	return services.AttributeTableQuery{
		Draw:      r.Draw,
		Start:     r.Start,
		Length:    r.Length,
		Fields:    r.LayerFields,
		LayerCode: r.LayerCode,
	}
}

type SelectFeatureRequest struct {
	FeatureURL string `form:"feature_url"`
	FieldList  string `form:"field_list"`
	LayerCode  string `form:"layer_code"`
}

// FieldNames decodes the {"fields":[{"fieldName":...}]} document the map UI
// sends with a selection.
func (r SelectFeatureRequest) FieldNames() ([]string, error) {
	if r.FieldList == "" {
		return nil, nil
	}
	var doc struct {
		Fields []struct {
			FieldName string `json:"fieldName"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(r.FieldList), &doc); err != nil {
		return nil, fmt.Errorf("%w: field_list: %v", domain.ErrInvalidRequest, err)
	}
	names := make([]string, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		names = append(names, f.FieldName)
	}
	return names, nil
}

type TimeSeriesRequest struct {
	LayerCode string `form:"layer_code"`
	LayerID   string `form:"layer_id"`
	SiteCode  string `form:"site_code"`
	VarCode   string `form:"var_code"`
	SiteName  string `form:"site_name"`
	VarName   string `form:"var_name"`
}

func (r TimeSeriesRequest) ToQuery(source domain.TimeSeriesSource) services.TimeSeriesQuery {
	return services.TimeSeriesQuery{
		Source:       source,
		SiteCode:     r.SiteCode,
		VariableCode: r.VarCode,
		SiteName:     r.SiteName,
		VariableName: r.VarName,
	}
}

// ============================================================================
// Responses
// ============================================================================

type HomeContext struct {
	ResourceID     *string `json:"resource_id"`
	AggregationID  *string `json:"aggregation_id"`
	GeoServerURL   string  `json:"geoserver_url"`
	HydroServerURL string  `json:"hydroserver_url"`
	MaxLayers      int     `json:"max_layers"`
}

// TableResponse is a Datatables server-side processing answer. Draw is
// echoed as a one-element list.
type TableResponse struct {
	Draw            []int `json:"draw"`
	RecordsTotal    any   `json:"recordsTotal"`
	RecordsFiltered any   `json:"recordsFiltered"`
	Data            any   `json:"data"`
}

func NewDiscoverTableResponse(t *services.DiscoverTable) TableResponse {
	rows := t.Rows
	if rows == nil {
		rows = []domain.DiscoverRow{}
	}
	return TableResponse{Draw: []int{t.Draw}, RecordsTotal: t.Records, RecordsFiltered: t.Records, Data: rows}
}

func NewAttributeTableResponse(p *services.AttributeTablePage) TableResponse {
	return TableResponse{Draw: []int{p.Draw}, RecordsTotal: p.Records, RecordsFiltered: p.Records, Data: p.Rows}
}

type FieldStatisticsResponse struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	LayerCode string  `json:"layer_code"`
	FieldName string  `json:"field_name"`
}

type SelectFeatureResponse struct {
	FID     *string `json:"fid"`
	Feature *int    `json:"feature"`
	Row     []any   `json:"row"`
}

func NewSelectFeatureResponse(s *services.FeatureSelection) SelectFeatureResponse {
	return SelectFeatureResponse{FID: s.FID, Feature: s.Feature, Row: s.Row}
}

// TimeSeriesResult is the chart payload shared by both viewers.
type TimeSeriesResult struct {
	TimeSeriesData []domain.TimeSeriesPoint `json:"timeseries_data"`
	NoDataValue    string                   `json:"no_data_value"`
	SiteName       string                   `json:"site_name"`
	VariableName   string                   `json:"variable_name"`
	UnitName       *string                  `json:"unit_name"`
}

func NewTimeSeriesResult(d *services.TimeSeriesData) TimeSeriesResult {
	points := d.Series.Points
	if points == nil {
		points = []domain.TimeSeriesPoint{}
	}
	return TimeSeriesResult{
		TimeSeriesData: points,
		NoDataValue:    d.Series.NoDataValue,
		SiteName:       d.SiteName,
		VariableName:   d.VariableName,
		UnitName:       d.Series.UnitName,
	}
}

type DataViewerTimeSeriesResponse struct {
	TimeSeriesResult
	VariableCode string `json:"variable_code"`
	SiteCode     string `json:"site_code"`
	LayerCode    string `json:"layer_code"`
}

func NewDataViewerTimeSeriesResponse(d *services.TimeSeriesData, layerCode string) DataViewerTimeSeriesResponse {
	return DataViewerTimeSeriesResponse{
		TimeSeriesResult: NewTimeSeriesResult(d),
		VariableCode:     d.VariableCode,
		SiteCode:         d.SiteCode,
		LayerCode:        layerCode,
	}
}
