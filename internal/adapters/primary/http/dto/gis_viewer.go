package dto

import "hydroshare-viewer-service/internal/core/domain"

type ResourceLayersRequest struct {
	ResourceIDList []string `form:"resource_id_list[]"`
	LayerID        string   `form:"layer_id"`
	RequestType    string   `form:"request_type"`
}

type GISAttributeTableRequest struct {
	LayerID   string `form:"layer_id"`
	LayerCode string `form:"layer_code"`
	LayerType string `form:"layer_type"`
}

type GISHomeContext struct {
	GeoServerURL   string `json:"geoserver_url"`
	HydroServerURL string `json:"hydroserver_url"`
}

// GISResponse is the envelope every GIS viewer AJAX call answers with.
type GISResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Results any     `json:"results"`
}

func GISSuccess(results any, message *string) GISResponse {
	return GISResponse{Success: true, Message: message, Results: results}
}

func GISFailure(message string) GISResponse {
	return GISResponse{Success: false, Message: &message, Results: map[string]any{}}
}

type GISAttributeTableResult struct {
	LayerProperties *domain.AttributeTable `json:"layer_properties"`
	LayerCode       string                 `json:"layer_code"`
}
