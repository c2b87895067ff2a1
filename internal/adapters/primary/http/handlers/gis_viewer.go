package handlers

import (
	"net/http"

	"hydroshare-viewer-service/internal/adapters/primary/http/dto"
	"hydroshare-viewer-service/internal/core/domain"
	"hydroshare-viewer-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GISViewerHome(c *gin.Context) {
	c.JSON(http.StatusOK, dto.GISHomeContext{
		GeoServerURL:   h.settings.GeoServerURL,
		HydroServerURL: h.settings.HydroServerURL,
	})
}

func (h *Handler) GetHydroShareLayers(c *gin.Context) {
	var req dto.ResourceLayersRequest
	if err := c.ShouldBind(&req); err != nil {
		mapGISError(c, bindError(err))
		return
	}

	layers, err := h.gisViewerSvc.GetHydroShareLayers(c.Request.Context(), services.ResourceLayersQuery{
		ResourceIDs: req.ResourceIDList,
		LayerID:     req.LayerID,
	})
	if err != nil {
		log.WithError(err).WithField("resources", req.ResourceIDList).Error("get hydroshare layers failed")
		mapGISError(c, err)
		return
	}

	var message *string
	if req.RequestType != "" {
		message = &req.RequestType
	}
	c.JSON(http.StatusOK, dto.GISSuccess(layers, message))
}

func (h *Handler) GetDiscoveryLayerList(c *gin.Context) {
	layers, err := h.gisViewerSvc.GetDiscoveryLayerList(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("get discovery layer list failed")
		mapGISError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GISSuccess(layers, nil))
}

func (h *Handler) GetGISAttributeTable(c *gin.Context) {
	var req dto.GISAttributeTableRequest
	if err := c.ShouldBind(&req); err != nil {
		mapGISError(c, bindError(err))
		return
	}

	table, err := h.gisViewerSvc.GetAttributeTable(c.Request.Context(), req.LayerID, domain.LayerType(req.LayerType))
	if err != nil {
		log.WithError(err).WithField("layer_id", req.LayerID).Error("get attribute table failed")
		mapGISError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GISSuccess(dto.GISAttributeTableResult{
		LayerProperties: table,
		LayerCode:       req.LayerCode,
	}, nil))
}

func (h *Handler) GetGISTimeSeries(c *gin.Context) {
	var req dto.TimeSeriesRequest
	if err := c.ShouldBind(&req); err != nil {
		mapGISError(c, bindError(err))
		return
	}

	source, err := domain.ParseTimeSeriesLayerID(req.LayerID)
	if err != nil {
		mapGISError(c, err)
		return
	}

	data, err := h.gisViewerSvc.GetTimeSeriesData(c.Request.Context(), req.ToQuery(source))
	if err != nil {
		log.WithError(err).WithField("layer_id", req.LayerID).Error("get timeseries data failed")
		mapGISError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GISSuccess(dto.NewTimeSeriesResult(data), nil))
}
