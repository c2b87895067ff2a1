package handlers

import (
	"hydroshare-viewer-service/internal/adapters/primary/http/middleware"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

const (
	DataViewerPath = "/hydroshare-data-viewer"
	GISViewerPath  = "/hydroshare-gis-data-viewer"
)

// Settings are the app settings handed to the browser in the home contexts.
type Settings struct {
	GeoServerURL   string
	HydroServerURL string
	MaxLayers      int
}

type Handler struct {
	dataViewerSvc *services.DataViewerService
	gisViewerSvc  *services.GISViewerService
	cache         ports.ResponseCache
	settings      Settings
}

// New builds the HTTP handlers of both viewers. cache may be nil when
// upstream responses are not cached.
func New(
	dataViewerSvc *services.DataViewerService,
	gisViewerSvc *services.GISViewerService,
	cache ports.ResponseCache,
	settings Settings,
) *Handler {
	return &Handler{
		dataViewerSvc: dataViewerSvc,
		gisViewerSvc:  gisViewerSvc,
		cache:         cache,
		settings:      settings,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Data Viewer
	dv := r.Group(DataViewerPath)
	dv.GET("/", h.DataViewerHome)
	dvAJAX := middleware.RequireAJAXPost(rejectDataViewer)
	dv.Any("/ajax/update-discover-table/", dvAJAX, h.UpdateDiscoverTable)
	dv.Any("/ajax/get-resource-metadata/", dvAJAX, h.GetResourceMetadata)
	dv.Any("/ajax/get-field-statistics/", dvAJAX, h.GetFieldStatistics)
	dv.Any("/ajax/update-attribute-table/", dvAJAX, h.UpdateAttributeTable)
	dv.Any("/ajax/select-feature/", dvAJAX, h.SelectFeature)
	dv.Any("/ajax/get-timeseries-data/", dvAJAX, h.GetDataViewerTimeSeries)

	// GIS Data Viewer
	gis := r.Group(GISViewerPath)
	gis.GET("/", h.GISViewerHome)
	gisAJAX := middleware.RequireAJAXPost(rejectGISViewer)
	gis.Any("/get-hydroshare-layers/", gisAJAX, h.GetHydroShareLayers)
	gis.Any("/get-hydroshare-resource-layers/", gisAJAX, h.GetHydroShareLayers)
	gis.Any("/get-discovery-layer-list/", gisAJAX, h.GetDiscoveryLayerList)
	gis.Any("/get-attribute-table/", gisAJAX, h.GetGISAttributeTable)
	gis.Any("/get-timeseries-data/", gisAJAX, h.GetGISTimeSeries)
}

// RegisterHealthRoutes adds the liveness and readiness probes.
func (h *Handler) RegisterHealthRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
}
