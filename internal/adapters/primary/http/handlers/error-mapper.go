package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"hydroshare-viewer-service/internal/adapters/primary/http/dto"
	"hydroshare-viewer-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const (
	msgDataViewerRejected = "Unable to establish a secure connection."
	msgGISViewerRejected  = "Unable to communicate with server."
)

func errorStatus(err error) int {
	switch {
	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidLayerCode),
		errors.Is(err, domain.ErrInvalidPageLength),
		errors.Is(err, domain.ErrFeatureURLNotAllowed):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, domain.ErrResourceNotFound):
		return http.StatusNotFound

	// Service unavailable errors
	case errors.Is(err, domain.ErrServiceDisabled):
		return http.StatusServiceUnavailable

	// Upstream errors
	case errors.Is(err, domain.ErrUpstreamUnavailable),
		errors.Is(err, domain.ErrUpstreamMalformed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// mapDomainError answers with the Data Viewer error envelope.
func mapDomainError(c *gin.Context, err error) {
	status := errorStatus(err)
	c.JSON(status, gin.H{"error": errorMessage(status, err)})
}

// mapGISError answers with the GIS Data Viewer envelope.
func mapGISError(c *gin.Context, err error) {
	status := errorStatus(err)
	c.JSON(status, dto.GISFailure(errorMessage(status, err)))
}

func bindError(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
}

func rejectDataViewer(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"error": msgDataViewerRejected})
}

func rejectGISViewer(c *gin.Context) {
	c.JSON(http.StatusOK, dto.GISFailure(msgGISViewerRejected))
}
