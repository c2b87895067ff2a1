package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/testutil"
)

func newDataViewer(opts LayerOptions) (*DataViewerService, *testutil.MockHydroShareClient, *testutil.MockGeoServerClient, *testutil.MockHydroServerClient) {
	hs := new(testutil.MockHydroShareClient)
	gs := new(testutil.MockGeoServerClient)
	hsrv := new(testutil.MockHydroServerClient)
	if opts.PickColor == nil {
		opts.PickColor = testutil.FixedColor("#c00")
	}
	return NewDataViewerService(hs, gs, hsrv, opts), hs, gs, hsrv
}

func searchHit(id, title string) domain.SearchResult {
	return domain.SearchResult{ResourceType: "CompositeResource", Text: "\n" + id + "\n\n" + title + "\n"}
}

func TestDataViewerService_UpdateDiscoverTable_AlignedPage(t *testing.T) {
	svc, hs, _, _ := newDataViewer(LayerOptions{})

	hs.On("SearchResources", mock.Anything, ports.SearchQuery{ResourceType: "Composite Resource", Text: "river", Page: 3, Count: 10}).
		Return(&domain.SearchPage{Count: float64(42), Results: []domain.SearchResult{searchHit("r1", "One"), searchHit("r2", "Two")}}, nil)

	table, err := svc.UpdateDiscoverTable(context.Background(), DiscoverQuery{Draw: 4, Search: "river", Start: 20, Length: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, table.Draw)
	assert.Equal(t, float64(42), table.Records)
	assert.Equal(t, []domain.DiscoverRow{
		{"CompositeResource", "One", "r1"},
		{"CompositeResource", "Two", "r2"},
	}, table.Rows)
	hs.AssertNumberOfCalls(t, "SearchResources", 1)
}

func TestDataViewerService_UpdateDiscoverTable_StraddlesPages(t *testing.T) {
	svc, hs, _, _ := newDataViewer(LayerOptions{})

	upper := []domain.SearchResult{searchHit("a", "A"), searchHit("b", "B"), searchHit("c", "C")}
	lower := []domain.SearchResult{searchHit("d", "D"), searchHit("e", "E"), searchHit("f", "F")}
	hs.On("SearchResources", mock.Anything, mock.MatchedBy(func(q ports.SearchQuery) bool { return q.Page == 2 })).
		Return(&domain.SearchPage{Count: float64(9), Results: upper}, nil)
	hs.On("SearchResources", mock.Anything, mock.MatchedBy(func(q ports.SearchQuery) bool { return q.Page == 3 })).
		Return(&domain.SearchPage{Count: float64(9), Results: lower}, nil)

	table, err := svc.UpdateDiscoverTable(context.Background(), DiscoverQuery{Draw: 1, Start: 4, Length: 3})
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "b", table.Rows[0][2])
	assert.Equal(t, "c", table.Rows[1][2])
	assert.Equal(t, "d", table.Rows[2][2])
}

func TestDataViewerService_UpdateDiscoverTable_UpstreamFailure(t *testing.T) {
	svc, hs, _, _ := newDataViewer(LayerOptions{})

	hs.On("SearchResources", mock.Anything, mock.Anything).Return(nil, domain.ErrUpstreamUnavailable)

	table, err := svc.UpdateDiscoverTable(context.Background(), DiscoverQuery{Draw: 2, Start: 5, Length: 10})
	require.NoError(t, err)
	assert.Equal(t, "0", table.Records)
	assert.Empty(t, table.Rows)
}

func TestDataViewerService_UpdateDiscoverTable_InvalidLength(t *testing.T) {
	svc, _, _, _ := newDataViewer(LayerOptions{})

	_, err := svc.UpdateDiscoverTable(context.Background(), DiscoverQuery{Start: 0, Length: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPageLength)
}

func TestDataViewerService_GetLayers(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{
		HydroServerEnabled: true,
		IncludeFeature:     true,
		IncludeRaster:      true,
		IncludeTimeSeries:  true,
	})
	ctx := context.Background()

	gs.On("BaseURL").Return("https://geoserver.example/geoserver")
	gs.On("ListFeatureTypes", ctx, "HS-abc").Return([]ports.FeatureTypeSummary{
		{Name: "HS-abc:wells", Coverage: domain.LayerCoverage{MinX: -1, MinY: -2, MaxX: 3, MaxY: 4}},
		{Name: "HS-abc:broken"},
	}, nil)
	gs.On("GetLayerStyleName", ctx, "HS-abc:wells").Return("point", nil)
	gs.On("GetLayerStyleName", ctx, "HS-abc:broken").Return("", domain.ErrResourceNotFound)
	gs.On("DescribeFeatureType", ctx, "HS-abc:wells").Return([]ports.SchemaField{
		{Name: "NAME", Type: "xsd:string"},
		{Name: "DEPTH", Type: "xsd:double"},
	}, nil)

	gs.On("ListCoverages", ctx, "HS-abc").Return([]ports.CoverageSummary{{Identifier: "HS-abc:dem"}}, nil)
	gs.On("GetStyleColorMap", ctx, "HS-abc", "dem").Return([]float64{-9999, 10, 20}, nil)

	gs.On("ListFeatureTypes", ctx, "TS-abc").Return([]ports.FeatureTypeSummary{{Name: "TS-abc:db1"}}, nil)
	gs.On("DescribeFeatureType", ctx, "TS-abc:db1").Return([]ports.SchemaField{{Name: "SiteCode", Type: "xsd:string"}}, nil)

	layers, err := svc.GetLayers(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, layers, 3)

	wells := layers[0]
	assert.Equal(t, "wells", wells.LayerName)
	assert.Equal(t, domain.LayerTypePoint, wells.LayerType)
	require.NotNil(t, wells.LayerOrder)
	assert.Equal(t, 0, *wells.LayerOrder)
	assert.Equal(t, domain.FieldTypeNumerical, wells.LayerFields[1].FieldType)
	sym, ok := wells.LayerSymbology.(domain.PointSymbology)
	require.True(t, ok)
	assert.Equal(t, "#c00", sym.FillColor)
	require.NotNil(t, sym.FillField)
	assert.Equal(t, "DEPTH", *sym.FillField)

	dem := layers[1]
	assert.Equal(t, domain.LayerTypeRaster, dem.LayerType)
	require.Len(t, dem.LayerFields, 1)
	stats := dem.LayerFields[0].FieldStats
	require.NotNil(t, stats)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)
	assert.Equal(t, -9999.0, *stats.NoData)
	assert.Nil(t, dem.LayerOrder)

	assert.Equal(t, domain.LayerTypeTimeSeries, layers[2].LayerType)
	assert.IsType(t, domain.PointSymbology{}, layers[2].LayerSymbology)
}

func TestDataViewerService_GetLayers_GeoServerDisabled(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{IncludeFeature: true, IncludeRaster: true})
	gs.On("BaseURL").Return("")

	layers, err := svc.GetLayers(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, layers)
	gs.AssertNotCalled(t, "ListFeatureTypes", mock.Anything, mock.Anything)
}

func TestDataViewerService_GetLayers_CapabilitiesFailure(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{IncludeFeature: true})
	gs.On("BaseURL").Return("https://geoserver.example/geoserver")
	gs.On("ListFeatureTypes", mock.Anything, "HS-abc").Return(nil, domain.ErrUpstreamUnavailable)

	_, err := svc.GetLayers(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestDataViewerService_GetResourceMetadata(t *testing.T) {
	svc, hs, gs, _ := newDataViewer(LayerOptions{})
	gs.On("BaseURL").Return("")
	hs.On("GetSystemMetadata", mock.Anything, "abc").Return(&domain.SystemMetadata{
		ResourceTitle: "Logan River",
		Public:        true,
		Coverages: []domain.ResourceCoverage{
			{Type: domain.CoverageTypePoint, East: -111.8, North: 41.7},
		},
	}, nil)

	meta, err := svc.GetResourceMetadata(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Logan River", meta.ResourceTitle)
	assert.Equal(t, domain.SharingPublic, meta.SharingStatus)
	assert.Equal(t, &domain.BoundingBox{MinX: -111.8, MinY: 41.7, MaxX: -111.8, MaxY: 41.7}, meta.BoundingBox)
	assert.NotNil(t, meta.LayerList)
}

func TestDataViewerService_GetResourceMetadata_NotFound(t *testing.T) {
	svc, hs, _, _ := newDataViewer(LayerOptions{})
	hs.On("GetSystemMetadata", mock.Anything, "missing").Return(nil, domain.ErrResourceNotFound)

	_, err := svc.GetResourceMetadata(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)
}

func TestDataViewerService_GetFieldStatistics_Vector(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	gs.On("GetFirstPropertyValue", mock.Anything, "HS-abc:wells", "DEPTH", ports.SortDescending).Return("120.5", nil)
	gs.On("GetFirstPropertyValue", mock.Anything, "HS-abc:wells", "DEPTH", ports.SortAscending).Return("3", nil)

	stats, err := svc.GetFieldStatistics(context.Background(), FieldStatisticsQuery{
		LayerType: domain.LayerTypePoint,
		LayerCode: "HS-abc:wells",
		FieldName: "DEPTH",
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.FieldStats{Min: 3, Max: 120.5}, stats)
}

func TestDataViewerService_GetFieldStatistics_NonNumeric(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	gs.On("GetFirstPropertyValue", mock.Anything, "HS-abc:wells", "NAME", ports.SortDescending).Return("Zion", nil)

	_, err := svc.GetFieldStatistics(context.Background(), FieldStatisticsQuery{
		LayerType: domain.LayerTypePoint,
		LayerCode: "HS-abc:wells",
		FieldName: "NAME",
	})
	assert.ErrorIs(t, err, domain.ErrUpstreamMalformed)
}

func TestDataViewerService_GetFieldStatistics_Raster(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	gs.On("GetStyleColorMap", mock.Anything, "HS-abc", "dem").Return([]float64{-9999, 1280, 3410}, nil)

	stats, err := svc.GetFieldStatistics(context.Background(), FieldStatisticsQuery{
		LayerType:  domain.LayerTypeRaster,
		LayerCode:  "HS-abc:dem",
		ResourceID: "abc",
		FieldName:  "coverage",
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.FieldStats{Min: 1280, Max: 3410}, stats)
}

func TestDataViewerService_GetFieldStatistics_ShortColorMap(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	gs.On("GetStyleColorMap", mock.Anything, "HS-abc", "dem").Return([]float64{-9999}, nil)

	_, err := svc.GetFieldStatistics(context.Background(), FieldStatisticsQuery{
		LayerType:  domain.LayerTypeRaster,
		LayerCode:  "HS-abc:dem",
		ResourceID: "abc",
		FieldName:  "coverage",
	})
	assert.ErrorIs(t, err, domain.ErrUpstreamMalformed)
}

func TestDataViewerService_GetFieldStatistics_UnknownLayerType(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})

	_, err := svc.GetFieldStatistics(context.Background(), FieldStatisticsQuery{
		LayerType: domain.LayerType("bogus"),
		LayerCode: "HS-abc:wells",
		FieldName: "DEPTH",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	gs.AssertNotCalled(t, "GetFirstPropertyValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDataViewerService_UpdateAttributeTable(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	fields := []string{"NAME", "DEPTH"}

	gs.On("CountFeatures", mock.Anything, "HS-abc:wells").Return(57, nil)
	gs.On("GetFeatures", mock.Anything, ports.FeatureQuery{
		TypeName:      "HS-abc:wells",
		PropertyNames: fields,
		StartIndex:    20,
		Count:         10,
	}).Return([]domain.Feature{
		{ID: "wells.21", Properties: map[string]any{"DEPTH": 12.5, "NAME": "W21"}},
		{ID: "wells.22", Properties: map[string]any{"NAME": "W22"}},
	}, nil)

	page, err := svc.UpdateAttributeTable(context.Background(), AttributeTableQuery{
		Draw: 3, Start: 20, Length: 10, Fields: fields, LayerCode: "HS-abc:wells",
	})
	require.NoError(t, err)
	assert.Equal(t, 57, page.Records)
	assert.Equal(t, [][]any{
		{"wells.21", 21, "W21", 12.5},
		{"wells.22", 22, "W22", nil},
	}, page.Rows)
}

func TestDataViewerService_SelectFeature(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	fields := []string{"NAME"}

	gs.On("GetFeaturesByURL", mock.Anything, "https://geoserver.example/wfs?bbox=1", fields).
		Return([]domain.Feature{{ID: "wells.10", Properties: map[string]any{"NAME": "W10"}}}, nil)
	gs.On("CountFeatures", mock.Anything, "HS-abc:wells").Return(12, nil)

	sel, err := svc.SelectFeature(context.Background(), "https://geoserver.example/wfs?bbox=1", "HS-abc:wells", fields)
	require.NoError(t, err)
	require.NotNil(t, sel.FID)
	assert.Equal(t, "wells.10", *sel.FID)
	require.NotNil(t, sel.Feature)
	// "1", "10", "11", "12", "2", ...
	assert.Equal(t, 1, *sel.Feature)
	assert.Equal(t, []any{"W10"}, sel.Row)
}

func TestDataViewerService_SelectFeature_NoFeature(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	gs.On("GetFeaturesByURL", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Feature{}, nil)

	sel, err := svc.SelectFeature(context.Background(), "https://geoserver.example/wfs", "HS-abc:wells", nil)
	require.NoError(t, err)
	assert.Nil(t, sel.FID)
	assert.Nil(t, sel.Feature)
	assert.Nil(t, sel.Row)
	gs.AssertNotCalled(t, "CountFeatures", mock.Anything, mock.Anything)
}

func TestDataViewerService_SelectFeature_ForeignURL(t *testing.T) {
	svc, _, gs, _ := newDataViewer(LayerOptions{})
	gs.On("GetFeaturesByURL", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrFeatureURLNotAllowed)

	_, err := svc.SelectFeature(context.Background(), "http://169.254.169.254/", "HS-abc:wells", nil)
	assert.ErrorIs(t, err, domain.ErrFeatureURLNotAllowed)
}

func TestDataViewerService_GetTimeSeriesData(t *testing.T) {
	svc, _, _, hsrv := newDataViewer(LayerOptions{})
	source := domain.TimeSeriesSource{NetworkID: "abc", DatabaseID: "db1"}
	unit := "degC"
	v := "1.5"
	series := &domain.TimeSeries{
		NoDataValue: "-9999",
		UnitName:    &unit,
		Points:      []domain.TimeSeriesPoint{{DateTime: "2020-01-01T00:00:00", Value: &v}},
	}
	hsrv.On("GetValues", mock.Anything, ports.ValuesQuery{Source: source, SiteCode: "S1", VariableCode: "V1"}).Return(series, nil)

	data, err := svc.GetTimeSeriesData(context.Background(), TimeSeriesQuery{
		Source: source, SiteCode: "S1", VariableCode: "V1", SiteName: "Site", VariableName: "Temp",
	})
	require.NoError(t, err)
	assert.Same(t, series, data.Series)
	assert.Equal(t, "Site", data.SiteName)
	assert.Equal(t, "Temp", data.VariableName)
}

func TestDataViewerService_GetTimeSeriesData_Upstream(t *testing.T) {
	svc, _, _, hsrv := newDataViewer(LayerOptions{})
	upstream := &domain.UpstreamError{Service: "hydroserver", URL: "x", StatusCode: 502}
	hsrv.On("GetValues", mock.Anything, mock.Anything).Return(nil, upstream)

	_, err := svc.GetTimeSeriesData(context.Background(), TimeSeriesQuery{SiteCode: "S1", VariableCode: "V1"})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	var upErr *domain.UpstreamError
	assert.True(t, errors.As(err, &upErr))
}
