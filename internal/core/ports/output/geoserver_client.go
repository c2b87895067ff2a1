package ports

import (
	"context"

	"hydroshare-viewer-service/internal/core/domain"
)

// FeatureTypeSummary is a WFS feature type with its WGS84 bounding box.
type FeatureTypeSummary struct {
	Name     string
	Coverage domain.LayerCoverage
}

// CoverageSummary is a WCS 1.1.1 coverage with its WGS84 bounding box.
type CoverageSummary struct {
	Identifier string
	Coverage   domain.LayerCoverage
}

// SchemaField is one element of a feature type schema.
type SchemaField struct {
	Name string
	Type string
}

// MapLayerSummary is a named WMS layer.
type MapLayerSummary struct {
	Name       string
	StyleTitle string
	Extent     domain.Extent
}

// FeatureQuery selects a page of features from a feature type.
type FeatureQuery struct {
	TypeName      string
	PropertyNames []string
	StartIndex    int
	Count         int
}

type SortOrder string

const (
	SortAscending  SortOrder = "A"
	SortDescending SortOrder = "D"
)

// GeoServerClient reads layers published on GeoServer through its OGC
// services and its REST API.
type GeoServerClient interface {
	// WFS
	ListFeatureTypes(ctx context.Context, namespace string) ([]FeatureTypeSummary, error)
	ListFeatureTypeNames(ctx context.Context) ([]string, error)
	DescribeFeatureType(ctx context.Context, typeName string) ([]SchemaField, error)
	ListFeatureProperties(ctx context.Context, typeName string) ([]string, error)
	CountFeatures(ctx context.Context, typeName string) (int, error)
	GetFeatures(ctx context.Context, q FeatureQuery) ([]domain.Feature, error)
	GetFeaturesByURL(ctx context.Context, featureURL string, propertyNames []string) ([]domain.Feature, error)
	GetFirstPropertyValue(ctx context.Context, typeName, property string, order SortOrder) (string, error)

	// WCS
	ListCoverages(ctx context.Context, namespace string) ([]CoverageSummary, error)
	ListCoverageIDs(ctx context.Context) ([]string, error)

	// WMS
	ListMapLayers(ctx context.Context, namespace string) ([]MapLayerSummary, error)

	// REST
	GetLayerStyleName(ctx context.Context, layerCode string) (string, error)
	GetStyleColorMap(ctx context.Context, workspace, style string) ([]float64, error)

	BaseURL() string
}
