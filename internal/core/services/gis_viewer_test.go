package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/testutil"
)

func newGISViewer() (*GISViewerService, *testutil.MockGeoServerClient, *testutil.MockHydroServerClient) {
	gs := new(testutil.MockGeoServerClient)
	hsrv := new(testutil.MockHydroServerClient)
	svc := NewGISViewerService(gs, hsrv)

	n := 0
	svc.newKey = func() string {
		n++
		return fmt.Sprintf("KEY%07d", n)
	}
	return svc, gs, hsrv
}

var loganCatalog = []domain.ReferencedTimeSeries{
	{Site: domain.Site{SiteName: "Upper", SiteCode: "S1", Latitude: 41.9, Longitude: -111.6}, VariableName: "Temp", ValueCount: 10},
	{Site: domain.Site{SiteName: "Lower", SiteCode: "S2", Latitude: 41.7, Longitude: -111.9}, VariableName: "Temp", ValueCount: 20},
}

func TestGISViewerService_GetHydroShareLayers(t *testing.T) {
	svc, gs, hsrv := newGISViewer()
	ctx := context.Background()

	gs.On("ListMapLayers", ctx, "HS-abc").Return([]ports.MapLayerSummary{
		{Name: "HS-abc:rivers", StyleTitle: "Default Line", Extent: domain.Extent{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}},
		{Name: "HS-abc:dem", StyleTitle: "Default raster style"},
	}, nil)
	gs.On("GetStyleColorMap", ctx, "HS-abc", "dem").Return([]float64{-9999, 5, 50}, nil)
	hsrv.On("ListNetworkDatabases", ctx, "abc").Return([]domain.Database{{DatabaseID: "db1", DatabaseName: "Logan"}}, nil)
	hsrv.On("GetCatalog", ctx, domain.TimeSeriesSource{NetworkID: "abc", DatabaseID: "db1"}).Return(loganCatalog, nil)

	layers, err := svc.GetHydroShareLayers(ctx, ResourceLayersQuery{ResourceIDs: []string{"abc"}})
	require.NoError(t, err)
	require.Len(t, layers, 3)

	rivers := layers["KEY0000001"]
	assert.Equal(t, "rivers", rivers.LayerName)
	assert.Equal(t, domain.LayerTypeLine, rivers.LayerType)
	assert.Empty(t, rivers.LayerProperties)

	dem := layers["KEY0000002"]
	assert.Equal(t, domain.LayerTypeRaster, dem.LayerType)
	assert.Equal(t, []domain.RasterProperty{{Property: "raster", NDV: -9999, Min: 5, Max: 50}}, dem.LayerProperties)

	logan := layers["KEY0000003"]
	assert.Equal(t, "Logan", logan.LayerName)
	assert.Equal(t, "abc:db1", logan.LayerID)
	assert.Equal(t, domain.LayerTypeTimeSeries, logan.LayerType)
	require.NotNil(t, logan.LayerGeometry)
	assert.Len(t, logan.LayerGeometry.Features, 2)
	assert.Equal(t, domain.Extent{MinX: -111.9, MinY: 41.7, MaxX: -111.6, MaxY: 41.9}, logan.LayerExtent)
}

func TestGISViewerService_GetHydroShareLayers_FiltersByLayerID(t *testing.T) {
	svc, gs, hsrv := newGISViewer()
	ctx := context.Background()

	gs.On("ListMapLayers", ctx, "HS-abc").Return([]ports.MapLayerSummary{
		{Name: "HS-abc:rivers", StyleTitle: "Default Line"},
		{Name: "HS-abc:wells", StyleTitle: "Default Point"},
	}, nil)
	hsrv.On("ListNetworkDatabases", ctx, "abc").Return([]domain.Database{{DatabaseID: "db1"}}, nil)

	layers, err := svc.GetHydroShareLayers(ctx, ResourceLayersQuery{ResourceIDs: []string{"abc"}, LayerID: "abc:wells"})
	require.NoError(t, err)
	require.Len(t, layers, 1)
	for _, l := range layers {
		assert.Equal(t, "HS-abc:wells", l.LayerID)
		assert.Equal(t, domain.LayerTypePoint, l.LayerType)
	}
	hsrv.AssertNotCalled(t, "GetCatalog", mock.Anything, mock.Anything)
}

func TestGISViewerService_GetHydroShareLayers_UpstreamsDisabled(t *testing.T) {
	svc, gs, hsrv := newGISViewer()
	gs.On("ListMapLayers", mock.Anything, "HS-abc").Return(nil, domain.ErrServiceDisabled)
	hsrv.On("ListNetworkDatabases", mock.Anything, "abc").Return(nil, domain.ErrServiceDisabled)

	layers, err := svc.GetHydroShareLayers(context.Background(), ResourceLayersQuery{ResourceIDs: []string{"abc"}})
	require.NoError(t, err)
	assert.Empty(t, layers)
}

func TestGISViewerService_GetHydroShareLayers_RandomKeys(t *testing.T) {
	gs := new(testutil.MockGeoServerClient)
	hsrv := new(testutil.MockHydroServerClient)
	svc := NewGISViewerService(gs, hsrv)

	gs.On("ListMapLayers", mock.Anything, "HS-abc").Return([]ports.MapLayerSummary{{Name: "HS-abc:rivers"}}, nil)
	hsrv.On("ListNetworkDatabases", mock.Anything, "abc").Return([]domain.Database{}, nil)

	layers, err := svc.GetHydroShareLayers(context.Background(), ResourceLayersQuery{ResourceIDs: []string{"abc"}})
	require.NoError(t, err)
	for key := range layers {
		assert.Regexp(t, `^[A-Z0-9]{10}$`, key)
	}
}

func TestGISViewerService_GetDiscoveryLayerList(t *testing.T) {
	svc, gs, hsrv := newGISViewer()

	gs.On("ListFeatureTypeNames", mock.Anything).Return([]string{"HS-abc:rivers", "hydroshare:states", "nocolon"}, nil)
	gs.On("ListCoverageIDs", mock.Anything).Return([]string{"HS-abc__dem", "hydroshare__base"}, nil)
	hsrv.On("ListDatabases", mock.Anything).Return([]domain.Database{{DatabaseID: "db1", DatabaseName: "Logan", NetworkID: "def"}}, nil)

	layers, err := svc.GetDiscoveryLayerList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.DiscoveryLayer{
		{ID: "HS-abc:rivers", Name: "rivers", ResourceID: "abc", Type: domain.DiscoveryVector},
		{ID: "HS-abc:dem", Name: "dem", ResourceID: "abc", Type: domain.DiscoveryRaster},
		{ID: "db1", Name: "Logan", ResourceID: "def", Type: domain.DiscoveryTimeSeries},
	}, layers)
}

func TestGISViewerService_GetDiscoveryLayerList_HydroServerDisabled(t *testing.T) {
	svc, gs, hsrv := newGISViewer()

	gs.On("ListFeatureTypeNames", mock.Anything).Return([]string{}, nil)
	gs.On("ListCoverageIDs", mock.Anything).Return([]string{}, nil)
	hsrv.On("ListDatabases", mock.Anything).Return(nil, domain.ErrServiceDisabled)

	layers, err := svc.GetDiscoveryLayerList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, layers)
	assert.Empty(t, layers)
}

func TestGISViewerService_GetDiscoveryLayerList_Failure(t *testing.T) {
	svc, gs, _ := newGISViewer()
	gs.On("ListFeatureTypeNames", mock.Anything).Return(nil, domain.ErrUpstreamUnavailable)

	_, err := svc.GetDiscoveryLayerList(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGISViewerService_GetAttributeTable_Vector(t *testing.T) {
	svc, gs, _ := newGISViewer()
	ctx := context.Background()

	gs.On("ListFeatureProperties", ctx, "HS-abc:wells").Return([]string{"the_geom", "NAME", "DEPTH"}, nil)
	gs.On("GetFeatures", ctx, ports.FeatureQuery{TypeName: "HS-abc:wells", PropertyNames: []string{"NAME"}, Count: 100000}).
		Return([]domain.Feature{
			{ID: "wells.1", Properties: map[string]any{"NAME": "W1"}},
			{ID: "wells.2", Properties: map[string]any{"NAME": "W2"}},
		}, nil)
	gs.On("GetFeatures", ctx, ports.FeatureQuery{TypeName: "HS-abc:wells", PropertyNames: []string{"DEPTH"}, Count: 100000}).
		Return([]domain.Feature{
			{ID: "wells.1", Properties: map[string]any{"DEPTH": 10.0}},
			{ID: "wells.2", Properties: map[string]any{"DEPTH": 20.0}},
		}, nil)

	table, err := svc.GetAttributeTable(ctx, "HS-abc:wells", domain.LayerTypePoint)
	require.NoError(t, err)
	assert.Equal(t, []string{"NAME", "DEPTH"}, table.Properties)
	assert.Equal(t, [][]any{{"W1", 10.0}, {"W2", 20.0}}, table.Values)
}

func TestGISViewerService_GetAttributeTable_TimeSeries(t *testing.T) {
	svc, _, hsrv := newGISViewer()
	hsrv.On("GetCatalog", mock.Anything, domain.TimeSeriesSource{NetworkID: "abc", DatabaseID: "db1"}).Return(loganCatalog, nil)

	table, err := svc.GetAttributeTable(context.Background(), "abc:db1", domain.LayerTypeTimeSeries)
	require.NoError(t, err)
	assert.Len(t, table.Properties, 12)
	require.Len(t, table.Values, 2)
	assert.Equal(t, "Upper", table.Values[0][0])
	assert.Equal(t, -111.6, table.Values[0][11])
}

func TestGISViewerService_GetAttributeTable_UnsupportedType(t *testing.T) {
	svc, _, _ := newGISViewer()

	_, err := svc.GetAttributeTable(context.Background(), "HS-abc:dem", domain.LayerTypeRaster)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestGISViewerService_GetAttributeTable_BadLayerID(t *testing.T) {
	svc, _, _ := newGISViewer()

	_, err := svc.GetAttributeTable(context.Background(), "nocolon", domain.LayerTypeTimeSeries)
	assert.ErrorIs(t, err, domain.ErrInvalidLayerCode)
}

func TestGISViewerService_GetTimeSeriesData(t *testing.T) {
	svc, _, hsrv := newGISViewer()
	source := domain.TimeSeriesSource{NetworkID: "abc", DatabaseID: "db1"}
	series := &domain.TimeSeries{NoDataValue: "-9999", Points: []domain.TimeSeriesPoint{}}
	hsrv.On("GetValues", mock.Anything, ports.ValuesQuery{Source: source, SiteCode: "S1", VariableCode: "V1"}).Return(series, nil)

	data, err := svc.GetTimeSeriesData(context.Background(), TimeSeriesQuery{Source: source, SiteCode: "S1", VariableCode: "V1"})
	require.NoError(t, err)
	assert.Nil(t, data.Series.UnitName)
}

func TestGISViewerService_GetTimeSeriesData_MissingCodes(t *testing.T) {
	svc, _, _ := newGISViewer()

	_, err := svc.GetTimeSeriesData(context.Background(), TimeSeriesQuery{SiteCode: "S1"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
