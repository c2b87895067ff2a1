// Package app wires the upstream adapters into the viewer services. The HTTP
// server and the operator CLI share it.
package app

import (
	"hydroshare-viewer-service/internal/adapters/secondary/geoserver"
	"hydroshare-viewer-service/internal/adapters/secondary/hydroserver"
	"hydroshare-viewer-service/internal/adapters/secondary/hydroshare"
	"hydroshare-viewer-service/internal/config"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/core/services"
	"hydroshare-viewer-service/internal/observability"
	"hydroshare-viewer-service/internal/proxy"
)

// Services are the two viewers built over one set of upstream clients.
type Services struct {
	DataViewer *services.DataViewerService
	GISViewer  *services.GISViewerService
}

// New builds the upstream clients and both services. cache and metrics may
// be nil.
func New(cfg *config.Config, cache ports.ResponseCache, metrics *observability.Metrics) *Services {
	newFetcher := func(service string) *proxy.Client {
		return proxy.NewClient(service, proxy.Options{
			Timeout:  cfg.Upstream.Timeout,
			Cache:    cache,
			CacheTTL: cfg.Cache.TTL,
			Metrics:  metrics,
		})
	}

	// Secondary Adapters (Output Ports - Upstream Services)
	geoServer := geoserver.NewGeoServerClient(cfg.Upstream.GeoServerURL, newFetcher("geoserver"))
	hydroServer := hydroserver.NewHydroServerClient(cfg.Upstream.HydroServerURL, newFetcher("hydroserver"))
	hydroShare := hydroshare.NewHydroShareClient(cfg.Upstream.HydroShareURL, newFetcher("hydroshare"))

	// Core Services (Application Layer)
	return &Services{
		DataViewer: services.NewDataViewerService(hydroShare, geoServer, hydroServer, services.LayerOptions{
			HydroServerEnabled: cfg.HydroServerEnabled(),
			IncludeFeature:     cfg.DataViewer.IncludeFeature,
			IncludeRaster:      cfg.DataViewer.IncludeRaster,
			IncludeTimeSeries:  cfg.DataViewer.IncludeTimeSeries,
		}),
		GISViewer: services.NewGISViewerService(geoServer, hydroServer),
	}
}
