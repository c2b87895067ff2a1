package services

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
)

// LayerOptions selects which layer families the data viewer lists.
type LayerOptions struct {
	HydroServerEnabled bool
	IncludeFeature     bool
	IncludeRaster      bool
	IncludeTimeSeries  bool
	// PickColor chooses symbology colors. Nil picks at random.
	PickColor domain.ColorPicker
}

// DataViewerService backs the HydroShare Data Viewer: resource discovery,
// resource layers and their attribute data.
type DataViewerService struct {
	hydroShare  ports.HydroShareClient
	geoServer   ports.GeoServerClient
	hydroServer ports.HydroServerClient
	opts        LayerOptions
}

func NewDataViewerService(
	hydroShare ports.HydroShareClient,
	geoServer ports.GeoServerClient,
	hydroServer ports.HydroServerClient,
	opts LayerOptions,
) *DataViewerService {
	return &DataViewerService{
		hydroShare:  hydroShare,
		geoServer:   geoServer,
		hydroServer: hydroServer,
		opts:        opts,
	}
}

// ============================================================================
// Discover Table
// ============================================================================

type DiscoverQuery struct {
	Draw   int
	Search string
	Start  int
	Length int
}

type DiscoverTable struct {
	Draw    int
	Records any
	Rows    []domain.DiscoverRow
}

// UpdateDiscoverTable serves one Datatables page of composite resources. The
// window may straddle two upstream search pages; a failed page fetch yields
// no rows for that page.
func (s *DataViewerService) UpdateDiscoverTable(ctx context.Context, q DiscoverQuery) (*DiscoverTable, error) {
	page, offset, err := domain.DiscoverWindow(q.Start, q.Length)
	if err != nil {
		return nil, err
	}

	table := &DiscoverTable{Draw: q.Draw, Records: "0"}

	var upper, lower []domain.DiscoverRow
	upperPage, err := s.searchPage(ctx, q, page)
	if err != nil {
		log.WithError(err).WithField("page", page).Warn("discover search page failed")
	} else {
		table.Records = upperPage.Count
		upper = domain.DiscoverRows(upperPage.Results)
	}

	if offset > 0 {
		lowerPage, err := s.searchPage(ctx, q, page+1)
		if err != nil {
			log.WithError(err).WithField("page", page+1).Warn("discover search page failed")
		} else {
			lower = domain.DiscoverRows(lowerPage.Results)
		}
	}

	table.Rows = domain.MergeDiscoverPages(upper, lower, offset)
	return table, nil
}

func (s *DataViewerService) searchPage(ctx context.Context, q DiscoverQuery, page int) (*domain.SearchPage, error) {
	return s.hydroShare.SearchResources(ctx, ports.SearchQuery{
		ResourceType: domain.CompositeResourceType,
		Text:         q.Search,
		Page:         page,
		Count:        q.Length,
	})
}

// ============================================================================
// Resource Metadata and Layers
// ============================================================================

// GetResourceMetadata combines a resource's system metadata with its layers.
func (s *DataViewerService) GetResourceMetadata(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error) {
	if resourceID == "" {
		return nil, fmt.Errorf("%w: resource id is required", domain.ErrInvalidRequest)
	}

	meta, err := s.hydroShare.GetSystemMetadata(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("get system metadata: %w", err)
	}

	layers, err := s.GetLayers(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return domain.NewResourceMetadata(resourceID, meta, layers), nil
}

// GetLayers lists the vector, raster and time series layers GeoServer
// publishes for a resource, in that order.
func (s *DataViewerService) GetLayers(ctx context.Context, resourceID string) ([]domain.Layer, error) {
	if resourceID == "" {
		return nil, fmt.Errorf("%w: resource id is required", domain.ErrInvalidRequest)
	}

	layers := []domain.Layer{}
	geoServerEnabled := s.geoServer.BaseURL() != ""

	if geoServerEnabled && s.opts.IncludeFeature {
		vector, err := s.vectorLayers(ctx, resourceID)
		if err != nil {
			return nil, fmt.Errorf("list vector layers: %w", err)
		}
		layers = append(layers, vector...)
	}

	if geoServerEnabled && s.opts.IncludeRaster {
		raster, err := s.rasterLayers(ctx, resourceID)
		if err != nil {
			return nil, fmt.Errorf("list raster layers: %w", err)
		}
		layers = append(layers, raster...)
	}

	if geoServerEnabled && s.opts.HydroServerEnabled && s.opts.IncludeTimeSeries {
		series, err := s.timeSeriesLayers(ctx, resourceID)
		if err != nil {
			return nil, fmt.Errorf("list time series layers: %w", err)
		}
		layers = append(layers, series...)
	}

	return layers, nil
}

func (s *DataViewerService) vectorLayers(ctx context.Context, resourceID string) ([]domain.Layer, error) {
	types, err := s.geoServer.ListFeatureTypes(ctx, domain.ResourceWorkspace(resourceID))
	if err != nil {
		return nil, err
	}

	layers := make([]domain.Layer, 0, len(types))
	for _, ft := range types {
		logger := log.WithFields(log.Fields{"resource_id": resourceID, "layer_code": ft.Name})

		style, err := s.geoServer.GetLayerStyleName(ctx, ft.Name)
		if err != nil {
			logger.WithError(err).Warn("skipping layer without readable style")
			continue
		}
		layerType := domain.LayerType(style)
		if !layerType.IsVector() {
			logger.WithField("style", style).Warn("vector layer has an unrecognized default style")
		}

		fields, err := s.vectorFields(ctx, ft.Name)
		if err != nil {
			logger.WithError(err).Warn("skipping layer without readable schema")
			continue
		}

		order := 0
		layers = append(layers, domain.Layer{
			LayerCode:      ft.Name,
			LayerName:      domain.LayerName(ft.Name),
			ResourceID:     resourceID,
			LayerCoverage:  ft.Coverage,
			LayerType:      layerType,
			LayerFields:    fields,
			LayerSymbology: domain.DefaultSymbology(layerType, fields, s.opts.PickColor),
			LayerVisible:   true,
			LayerOrder:     &order,
		})
	}
	return layers, nil
}

func (s *DataViewerService) rasterLayers(ctx context.Context, resourceID string) ([]domain.Layer, error) {
	coverages, err := s.geoServer.ListCoverages(ctx, domain.ResourceWorkspace(resourceID))
	if err != nil {
		return nil, err
	}

	layers := make([]domain.Layer, 0, len(coverages))
	for _, cov := range coverages {
		stats, err := s.rasterStats(ctx, resourceID, cov.Identifier)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"resource_id": resourceID,
				"layer_code":  cov.Identifier,
			}).Warn("skipping raster without readable style")
			continue
		}

		fields := []domain.LayerField{domain.RasterField(stats)}
		layers = append(layers, domain.Layer{
			LayerCode:      cov.Identifier,
			LayerName:      domain.LayerName(cov.Identifier),
			ResourceID:     resourceID,
			LayerCoverage:  cov.Coverage,
			LayerType:      domain.LayerTypeRaster,
			LayerFields:    fields,
			LayerSymbology: domain.DefaultSymbology(domain.LayerTypeRaster, fields, s.opts.PickColor),
			LayerVisible:   true,
		})
	}
	return layers, nil
}

func (s *DataViewerService) timeSeriesLayers(ctx context.Context, resourceID string) ([]domain.Layer, error) {
	types, err := s.geoServer.ListFeatureTypes(ctx, domain.TimeSeriesWorkspacePrefix+resourceID)
	if err != nil {
		return nil, err
	}

	layers := make([]domain.Layer, 0, len(types))
	for _, ft := range types {
		fields, err := s.vectorFields(ctx, ft.Name)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"resource_id": resourceID,
				"layer_code":  ft.Name,
			}).Warn("skipping time series layer without readable schema")
			continue
		}

		layers = append(layers, domain.Layer{
			LayerCode:      ft.Name,
			LayerName:      domain.LayerName(ft.Name),
			ResourceID:     resourceID,
			LayerCoverage:  ft.Coverage,
			LayerType:      domain.LayerTypeTimeSeries,
			LayerFields:    fields,
			LayerSymbology: domain.DefaultSymbology(domain.LayerTypeTimeSeries, fields, s.opts.PickColor),
			LayerVisible:   true,
		})
	}
	return layers, nil
}

func (s *DataViewerService) vectorFields(ctx context.Context, layerCode string) ([]domain.LayerField, error) {
	schema, err := s.geoServer.DescribeFeatureType(ctx, layerCode)
	if err != nil {
		return nil, err
	}
	fields := make([]domain.LayerField, 0, len(schema))
	for _, f := range schema {
		fields = append(fields, domain.LayerField{FieldName: f.Name, FieldType: domain.ClassifyFieldType(f.Type)})
	}
	return fields, nil
}

// rasterStats reads the value range of a coverage from its published style,
// whose color map holds no-data, minimum and maximum in that order.
func (s *DataViewerService) rasterStats(ctx context.Context, resourceID, layerCode string) (*domain.FieldStats, error) {
	quantities, err := s.geoServer.GetStyleColorMap(ctx, domain.ResourceWorkspace(resourceID), domain.LayerName(layerCode))
	if err != nil {
		return nil, err
	}
	prop, ok := domain.NewRasterProperty(quantities)
	if !ok {
		return nil, fmt.Errorf("%w: style of %s has %d color map entries", domain.ErrUpstreamMalformed, layerCode, len(quantities))
	}
	ndv := prop.NDV
	return &domain.FieldStats{Min: prop.Min, Max: prop.Max, NoData: &ndv}, nil
}

// ============================================================================
// Field Statistics
// ============================================================================

type FieldStatisticsQuery struct {
	LayerType  domain.LayerType
	LayerCode  string
	ResourceID string
	FieldName  string
}

// GetFieldStatistics returns the value range of a layer field. Raster ranges
// come from the style; vector ranges from sorted single-feature reads.
func (s *DataViewerService) GetFieldStatistics(ctx context.Context, q FieldStatisticsQuery) (*domain.FieldStats, error) {
	if q.LayerCode == "" || q.FieldName == "" {
		return nil, fmt.Errorf("%w: layer code and field name are required", domain.ErrInvalidRequest)
	}
	if q.LayerType != "" && !q.LayerType.IsValid() {
		return nil, fmt.Errorf("%w: layer type %q", domain.ErrInvalidRequest, q.LayerType)
	}

	if q.LayerType == domain.LayerTypeRaster {
		if q.ResourceID == "" {
			return nil, fmt.Errorf("%w: resource id is required", domain.ErrInvalidRequest)
		}
		stats, err := s.rasterStats(ctx, q.ResourceID, q.LayerCode)
		if err != nil {
			return nil, err
		}
		return &domain.FieldStats{Min: stats.Min, Max: stats.Max}, nil
	}

	maxValue, err := s.extremeValue(ctx, q.LayerCode, q.FieldName, ports.SortDescending)
	if err != nil {
		return nil, err
	}
	minValue, err := s.extremeValue(ctx, q.LayerCode, q.FieldName, ports.SortAscending)
	if err != nil {
		return nil, err
	}
	return &domain.FieldStats{Min: minValue, Max: maxValue}, nil
}

func (s *DataViewerService) extremeValue(ctx context.Context, layerCode, field string, order ports.SortOrder) (float64, error) {
	raw, err := s.geoServer.GetFirstPropertyValue(ctx, layerCode, field, order)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s of %s is not numeric: %q", domain.ErrUpstreamMalformed, field, layerCode, raw)
	}
	return v, nil
}

// ============================================================================
// Attribute Table
// ============================================================================

type AttributeTableQuery struct {
	Draw      int
	Start     int
	Length    int
	Fields    []string
	LayerCode string
}

type AttributeTablePage struct {
	Draw    int
	Records int
	Rows    [][]any
}

// UpdateAttributeTable serves one Datatables page of a vector layer. Each row
// is the feature id, its 1-based row number, then the requested fields.
func (s *DataViewerService) UpdateAttributeTable(ctx context.Context, q AttributeTableQuery) (*AttributeTablePage, error) {
	if q.LayerCode == "" {
		return nil, fmt.Errorf("%w: layer code is required", domain.ErrInvalidRequest)
	}
	if q.Length <= 0 {
		return nil, domain.ErrInvalidPageLength
	}
	if q.Start < 0 {
		return nil, fmt.Errorf("%w: start must not be negative", domain.ErrInvalidRequest)
	}

	count, err := s.geoServer.CountFeatures(ctx, q.LayerCode)
	if err != nil {
		return nil, fmt.Errorf("count features: %w", err)
	}

	features, err := s.geoServer.GetFeatures(ctx, ports.FeatureQuery{
		TypeName:      q.LayerCode,
		PropertyNames: q.Fields,
		StartIndex:    q.Start,
		Count:         q.Length,
	})
	if err != nil {
		return nil, fmt.Errorf("get features: %w", err)
	}

	rows := make([][]any, 0, len(features))
	for i, f := range features {
		row := make([]any, 0, len(q.Fields)+2)
		row = append(row, f.ID, q.Start+i+1)
		row = append(row, f.Values(q.Fields)...)
		rows = append(rows, row)
	}
	return &AttributeTablePage{Draw: q.Draw, Records: count, Rows: rows}, nil
}

// ============================================================================
// Feature Selection
// ============================================================================

type FeatureSelection struct {
	FID     *string
	Feature *int
	Row     []any
}

// SelectFeature resolves a map click to an attribute table row. Feature is
// the row index of the feature when the table lists ids in string order.
func (s *DataViewerService) SelectFeature(ctx context.Context, featureURL, layerCode string, fields []string) (*FeatureSelection, error) {
	if featureURL == "" || layerCode == "" {
		return nil, fmt.Errorf("%w: feature url and layer code are required", domain.ErrInvalidRequest)
	}

	features, err := s.geoServer.GetFeaturesByURL(ctx, featureURL, fields)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return &FeatureSelection{}, nil
	}

	count, err := s.geoServer.CountFeatures(ctx, layerCode)
	if err != nil {
		return nil, fmt.Errorf("count features: %w", err)
	}

	first := features[0]
	fid := first.ID
	selection := &FeatureSelection{FID: &fid, Row: first.Values(fields)}
	if idx, ok := domain.AlphabeticalFeatureIndex(first.ID, count); ok {
		selection.Feature = &idx
	} else {
		log.WithFields(log.Fields{"fid": first.ID, "count": count}).Warn("selected feature id outside layer range")
	}
	return selection, nil
}

// ============================================================================
// Time Series
// ============================================================================

type TimeSeriesQuery struct {
	Source       domain.TimeSeriesSource
	SiteCode     string
	VariableCode string
	SiteName     string
	VariableName string
}

type TimeSeriesData struct {
	Series       *domain.TimeSeries
	SiteCode     string
	VariableCode string
	SiteName     string
	VariableName string
}

// GetTimeSeriesData reads one site/variable series from HydroServer.
func (s *DataViewerService) GetTimeSeriesData(ctx context.Context, q TimeSeriesQuery) (*TimeSeriesData, error) {
	return readTimeSeries(ctx, s.hydroServer, q)
}

func readTimeSeries(ctx context.Context, hydroServer ports.HydroServerClient, q TimeSeriesQuery) (*TimeSeriesData, error) {
	if q.SiteCode == "" || q.VariableCode == "" {
		return nil, fmt.Errorf("%w: site code and variable code are required", domain.ErrInvalidRequest)
	}

	series, err := hydroServer.GetValues(ctx, ports.ValuesQuery{
		Source:       q.Source,
		SiteCode:     q.SiteCode,
		VariableCode: q.VariableCode,
	})
	if err != nil {
		return nil, fmt.Errorf("get values: %w", err)
	}

	return &TimeSeriesData{
		Series:       series,
		SiteCode:     q.SiteCode,
		VariableCode: q.VariableCode,
		SiteName:     q.SiteName,
		VariableName: q.VariableName,
	}, nil
}
