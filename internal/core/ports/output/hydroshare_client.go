package ports

import (
	"context"

	"hydroshare-viewer-service/internal/core/domain"
)

// SearchQuery is one page of the HydroShare resource search. Page is 1-based.
type SearchQuery struct {
	ResourceType string
	Text         string
	Page         int
	Count        int
}

// HydroShareClient reads the HydroShare REST API.
type HydroShareClient interface {
	SearchResources(ctx context.Context, q SearchQuery) (*domain.SearchPage, error)
	GetSystemMetadata(ctx context.Context, resourceID string) (*domain.SystemMetadata, error)
}
