package ports

import (
	"context"

	"hydroshare-viewer-service/internal/core/domain"
)

// ValuesQuery selects one site/variable series of a HydroServer database.
type ValuesQuery struct {
	Source       domain.TimeSeriesSource
	SiteCode     string
	VariableCode string
}

// HydroServerClient reads time series databases from HydroServer (WDS).
type HydroServerClient interface {
	ListDatabases(ctx context.Context) ([]domain.Database, error)
	ListNetworkDatabases(ctx context.Context, networkID string) ([]domain.Database, error)
	GetCatalog(ctx context.Context, source domain.TimeSeriesSource) ([]domain.ReferencedTimeSeries, error)
	GetValues(ctx context.Context, q ValuesQuery) (*domain.TimeSeries, error)
}
