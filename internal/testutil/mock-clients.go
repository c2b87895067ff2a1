package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
)

// MockGeoServerClient is a mock of GeoServerClient.
type MockGeoServerClient struct {
	mock.Mock
}

func (m *MockGeoServerClient) ListFeatureTypes(ctx context.Context, namespace string) ([]ports.FeatureTypeSummary, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.FeatureTypeSummary), args.Error(1)
}

func (m *MockGeoServerClient) ListFeatureTypeNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGeoServerClient) DescribeFeatureType(ctx context.Context, typeName string) ([]ports.SchemaField, error) {
	args := m.Called(ctx, typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.SchemaField), args.Error(1)
}

func (m *MockGeoServerClient) ListFeatureProperties(ctx context.Context, typeName string) ([]string, error) {
	args := m.Called(ctx, typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGeoServerClient) CountFeatures(ctx context.Context, typeName string) (int, error) {
	args := m.Called(ctx, typeName)
	return args.Int(0), args.Error(1)
}

func (m *MockGeoServerClient) GetFeatures(ctx context.Context, q ports.FeatureQuery) ([]domain.Feature, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feature), args.Error(1)
}

func (m *MockGeoServerClient) GetFeaturesByURL(ctx context.Context, featureURL string, propertyNames []string) ([]domain.Feature, error) {
	args := m.Called(ctx, featureURL, propertyNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feature), args.Error(1)
}

func (m *MockGeoServerClient) GetFirstPropertyValue(ctx context.Context, typeName, property string, order ports.SortOrder) (string, error) {
	args := m.Called(ctx, typeName, property, order)
	return args.String(0), args.Error(1)
}

func (m *MockGeoServerClient) ListCoverages(ctx context.Context, namespace string) ([]ports.CoverageSummary, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.CoverageSummary), args.Error(1)
}

func (m *MockGeoServerClient) ListCoverageIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGeoServerClient) ListMapLayers(ctx context.Context, namespace string) ([]ports.MapLayerSummary, error) {
	args := m.Called(ctx, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.MapLayerSummary), args.Error(1)
}

func (m *MockGeoServerClient) GetLayerStyleName(ctx context.Context, layerCode string) (string, error) {
	args := m.Called(ctx, layerCode)
	return args.String(0), args.Error(1)
}

func (m *MockGeoServerClient) GetStyleColorMap(ctx context.Context, workspace, style string) ([]float64, error) {
	args := m.Called(ctx, workspace, style)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockGeoServerClient) BaseURL() string {
	args := m.Called()
	return args.String(0)
}

// MockHydroServerClient is a mock of HydroServerClient.
type MockHydroServerClient struct {
	mock.Mock
}

func (m *MockHydroServerClient) ListDatabases(ctx context.Context) ([]domain.Database, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Database), args.Error(1)
}

func (m *MockHydroServerClient) ListNetworkDatabases(ctx context.Context, networkID string) ([]domain.Database, error) {
	args := m.Called(ctx, networkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Database), args.Error(1)
}

func (m *MockHydroServerClient) GetCatalog(ctx context.Context, source domain.TimeSeriesSource) ([]domain.ReferencedTimeSeries, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferencedTimeSeries), args.Error(1)
}

func (m *MockHydroServerClient) GetValues(ctx context.Context, q ports.ValuesQuery) (*domain.TimeSeries, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSeries), args.Error(1)
}

// MockHydroShareClient is a mock of HydroShareClient.
type MockHydroShareClient struct {
	mock.Mock
}

func (m *MockHydroShareClient) SearchResources(ctx context.Context, q ports.SearchQuery) (*domain.SearchPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchPage), args.Error(1)
}

func (m *MockHydroShareClient) GetSystemMetadata(ctx context.Context, resourceID string) (*domain.SystemMetadata, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemMetadata), args.Error(1)
}

// MockResponseCache is a mock of ResponseCache.
type MockResponseCache struct {
	mock.Mock
}

func (m *MockResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockResponseCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// FixedColor returns a color picker that always picks color.
func FixedColor(color string) domain.ColorPicker {
	return func([]string) string { return color }
}
