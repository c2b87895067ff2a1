package handlers

import (
	"net/http"

	"hydroshare-viewer-service/internal/adapters/primary/http/dto"
	"hydroshare-viewer-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func optionalQuery(c *gin.Context, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

func (h *Handler) DataViewerHome(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HomeContext{
		ResourceID:     optionalQuery(c, "resource_id"),
		AggregationID:  optionalQuery(c, "aggregation_path"),
		GeoServerURL:   h.settings.GeoServerURL,
		HydroServerURL: h.settings.HydroServerURL,
		MaxLayers:      h.settings.MaxLayers,
	})
}

func (h *Handler) UpdateDiscoverTable(c *gin.Context) {
	var req dto.DiscoverTableRequest
	if err := c.ShouldBind(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	table, err := h.dataViewerSvc.UpdateDiscoverTable(c.Request.Context(), req.ToQuery())
	if err != nil {
		log.WithError(err).Error("update discover table failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDiscoverTableResponse(table))
}

func (h *Handler) GetResourceMetadata(c *gin.Context) {
	var req dto.ResourceMetadataRequest
	if err := c.ShouldBind(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	meta, err := h.dataViewerSvc.GetResourceMetadata(c.Request.Context(), req.ResourceID)
	if err != nil {
		log.WithError(err).WithField("resource_id", req.ResourceID).Error("get resource metadata failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

func (h *Handler) GetFieldStatistics(c *gin.Context) {
	var req dto.FieldStatisticsRequest
	if err := c.ShouldBind(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	stats, err := h.dataViewerSvc.GetFieldStatistics(c.Request.Context(), req.ToQuery())
	if err != nil {
		log.WithError(err).WithField("layer_code", req.LayerCode).Error("get field statistics failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FieldStatisticsResponse{
		Min:       stats.Min,
		Max:       stats.Max,
		LayerCode: req.LayerCode,
		FieldName: req.FieldName,
	})
}

func (h *Handler) UpdateAttributeTable(c *gin.Context) {
	var req dto.AttributeTableRequest
	if err := c.ShouldBind(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	page, err := h.dataViewerSvc.UpdateAttributeTable(c.Request.Context(), req.ToQuery())
	if err != nil {
		log.WithError(err).WithField("layer_code", req.LayerCode).Error("update attribute table failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttributeTableResponse(page))
}

func (h *Handler) SelectFeature(c *gin.Context) {
	var req dto.SelectFeatureRequest
	if err := c.ShouldBind(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	fields, err := req.FieldNames()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	selection, err := h.dataViewerSvc.SelectFeature(c.Request.Context(), req.FeatureURL, req.LayerCode, fields)
	if err != nil {
		log.WithError(err).WithField("layer_code", req.LayerCode).Error("select feature failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSelectFeatureResponse(selection))
}

func (h *Handler) GetDataViewerTimeSeries(c *gin.Context) {
	var req dto.TimeSeriesRequest
	if err := c.ShouldBind(&req); err != nil {
		mapDomainError(c, bindError(err))
		return
	}

	source, err := domain.ParseTimeSeriesLayerCode(req.LayerCode)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	data, err := h.dataViewerSvc.GetTimeSeriesData(c.Request.Context(), req.ToQuery(source))
	if err != nil {
		log.WithError(err).WithField("layer_code", req.LayerCode).Error("get timeseries data failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataViewerTimeSeriesResponse(data, req.LayerCode))
}
