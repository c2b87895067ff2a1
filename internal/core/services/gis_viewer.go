package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
)

// attributeTableLimit caps the features read per column of a GIS attribute
// table.
const attributeTableLimit = 100000

const geometryProperty = "the_geom"

// GISViewerService backs the HydroShare GIS Data Viewer. An upstream that is
// not configured contributes no layers.
type GISViewerService struct {
	geoServer   ports.GeoServerClient
	hydroServer ports.HydroServerClient
	newKey      func() string
}

func NewGISViewerService(geoServer ports.GeoServerClient, hydroServer ports.HydroServerClient) *GISViewerService {
	return &GISViewerService{
		geoServer:   geoServer,
		hydroServer: hydroServer,
		newKey:      domain.NewLayerKey,
	}
}

// ============================================================================
// Resource Layers
// ============================================================================

type ResourceLayersQuery struct {
	ResourceIDs []string
	// LayerID restricts the result to one layer when set. GeoServer layers
	// match on "HS-<resource>:<name>", HydroServer layers on
	// "<network>:<database>".
	LayerID string
}

// GetHydroShareLayers lists the map layers of the given resources, keyed by
// a fresh random layer key.
func (s *GISViewerService) GetHydroShareLayers(ctx context.Context, q ResourceLayersQuery) (map[string]domain.MapLayer, error) {
	layers := map[string]domain.MapLayer{}

	for _, resourceID := range q.ResourceIDs {
		if resourceID == "" {
			continue
		}

		mapLayers, err := s.resourceMapLayers(ctx, resourceID, domain.NormalizeResourceLayerID(q.LayerID))
		if err != nil {
			return nil, fmt.Errorf("list map layers of %s: %w", resourceID, err)
		}
		for _, l := range mapLayers {
			layers[s.newKey()] = l
		}

		seriesLayers, err := s.resourceTimeSeriesLayers(ctx, resourceID, q.LayerID)
		if err != nil {
			return nil, fmt.Errorf("list time series layers of %s: %w", resourceID, err)
		}
		for _, l := range seriesLayers {
			layers[s.newKey()] = l
		}
	}
	return layers, nil
}

func (s *GISViewerService) resourceMapLayers(ctx context.Context, resourceID, layerID string) ([]domain.MapLayer, error) {
	summaries, err := s.geoServer.ListMapLayers(ctx, domain.ResourceWorkspace(resourceID))
	if errors.Is(err, domain.ErrServiceDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	layers := make([]domain.MapLayer, 0, len(summaries))
	for _, summary := range summaries {
		if layerID != "" && layerID != summary.Name {
			continue
		}

		layerType := domain.LayerTypeFromStyleTitle(summary.StyleTitle)
		properties := []domain.RasterProperty{}
		if layerType == domain.LayerTypeRaster {
			prop, err := s.rasterProperty(ctx, summary.Name)
			if err != nil {
				log.WithError(err).WithField("layer_id", summary.Name).Warn("skipping raster without readable style")
				continue
			}
			properties = append(properties, prop)
		}

		layers = append(layers, domain.MapLayer{
			LayerName:       domain.LayerName(summary.Name),
			LayerID:         summary.Name,
			LayerType:       layerType,
			LayerExtent:     summary.Extent,
			LayerProperties: properties,
		})
	}
	return layers, nil
}

func (s *GISViewerService) rasterProperty(ctx context.Context, layerID string) (domain.RasterProperty, error) {
	workspace, name, err := domain.SplitLayerCode(layerID)
	if err != nil {
		return domain.RasterProperty{}, err
	}
	quantities, err := s.geoServer.GetStyleColorMap(ctx, workspace, name)
	if err != nil {
		return domain.RasterProperty{}, err
	}
	prop, ok := domain.NewRasterProperty(quantities)
	if !ok {
		return domain.RasterProperty{}, fmt.Errorf("%w: style of %s has %d color map entries", domain.ErrUpstreamMalformed, layerID, len(quantities))
	}
	return prop, nil
}

func (s *GISViewerService) resourceTimeSeriesLayers(ctx context.Context, resourceID, layerID string) ([]domain.MapLayer, error) {
	databases, err := s.hydroServer.ListNetworkDatabases(ctx, resourceID)
	if errors.Is(err, domain.ErrServiceDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	layers := make([]domain.MapLayer, 0, len(databases))
	for _, db := range databases {
		source := domain.TimeSeriesSource{NetworkID: resourceID, DatabaseID: db.DatabaseID}
		if layerID != "" && layerID != source.LayerID() {
			continue
		}

		catalog, err := s.hydroServer.GetCatalog(ctx, source)
		if err != nil {
			log.WithError(err).WithField("layer_id", source.LayerID()).Warn("skipping database without readable catalog")
			continue
		}

		layers = append(layers, domain.MapLayer{
			LayerName:       db.DatabaseName,
			LayerID:         source.LayerID(),
			LayerType:       domain.LayerTypeTimeSeries,
			LayerGeometry:   domain.SiteFeatureCollection(catalog),
			LayerExtent:     domain.SiteExtent(catalog),
			LayerProperties: []domain.RasterProperty{},
		})
	}
	return layers, nil
}

// ============================================================================
// Discovery
// ============================================================================

// GetDiscoveryLayerList catalogs every resource layer on GeoServer and every
// HydroServer database. Layers of the shared workspace are left out.
func (s *GISViewerService) GetDiscoveryLayerList(ctx context.Context) ([]domain.DiscoveryLayer, error) {
	layers := []domain.DiscoveryLayer{}

	names, err := s.geoServer.ListFeatureTypeNames(ctx)
	switch {
	case errors.Is(err, domain.ErrServiceDisabled):
	case err != nil:
		return nil, fmt.Errorf("list feature types: %w", err)
	default:
		for _, name := range names {
			if l, ok := domain.VectorDiscoveryLayer(name); ok {
				layers = append(layers, l)
			}
		}
	}

	ids, err := s.geoServer.ListCoverageIDs(ctx)
	switch {
	case errors.Is(err, domain.ErrServiceDisabled):
	case err != nil:
		return nil, fmt.Errorf("list coverages: %w", err)
	default:
		for _, id := range ids {
			if l, ok := domain.RasterDiscoveryLayer(id); ok {
				layers = append(layers, l)
			}
		}
	}

	databases, err := s.hydroServer.ListDatabases(ctx)
	switch {
	case errors.Is(err, domain.ErrServiceDisabled):
	case err != nil:
		return nil, fmt.Errorf("list databases: %w", err)
	default:
		for _, db := range databases {
			layers = append(layers, domain.TimeSeriesDiscoveryLayer(db))
		}
	}

	return layers, nil
}

// ============================================================================
// Attribute Table
// ============================================================================

// GetAttributeTable returns the full attribute table of a vector or time
// series layer.
func (s *GISViewerService) GetAttributeTable(ctx context.Context, layerID string, layerType domain.LayerType) (*domain.AttributeTable, error) {
	if layerID == "" {
		return nil, fmt.Errorf("%w: layer id is required", domain.ErrInvalidRequest)
	}

	switch {
	case layerType.IsVector():
		return s.vectorAttributeTable(ctx, layerID)
	case layerType == domain.LayerTypeTimeSeries:
		source, err := domain.ParseTimeSeriesLayerID(layerID)
		if err != nil {
			return nil, err
		}
		catalog, err := s.hydroServer.GetCatalog(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("get catalog: %w", err)
		}
		table := domain.TimeSeriesAttributeTable(catalog)
		return &table, nil
	default:
		return nil, fmt.Errorf("%w: no attribute table for layer type %q", domain.ErrInvalidRequest, layerType)
	}
}

func (s *GISViewerService) vectorAttributeTable(ctx context.Context, layerID string) (*domain.AttributeTable, error) {
	props, err := s.geoServer.ListFeatureProperties(ctx, layerID)
	if err != nil {
		return nil, fmt.Errorf("describe feature type: %w", err)
	}

	table := &domain.AttributeTable{Properties: []string{}}
	var columns [][]any
	for _, prop := range props {
		if prop == geometryProperty {
			continue
		}
		features, err := s.geoServer.GetFeatures(ctx, ports.FeatureQuery{
			TypeName:      layerID,
			PropertyNames: []string{prop},
			StartIndex:    0,
			Count:         attributeTableLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("get %s values: %w", prop, err)
		}

		column := make([]any, len(features))
		for i, f := range features {
			column[i] = f.Properties[prop]
		}
		table.Properties = append(table.Properties, prop)
		columns = append(columns, column)
	}
	table.Values = domain.TransposeColumns(columns)
	return table, nil
}

// ============================================================================
// Time Series
// ============================================================================

// GetTimeSeriesData reads one site/variable series from HydroServer.
func (s *GISViewerService) GetTimeSeriesData(ctx context.Context, q TimeSeriesQuery) (*TimeSeriesData, error) {
	return readTimeSeries(ctx, s.hydroServer, q)
}
