package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// ResourceWorkspacePrefix namespaces GeoServer workspaces of HydroShare
	// resources.
	ResourceWorkspacePrefix = "HS-"
	// TimeSeriesWorkspacePrefix namespaces GeoServer workspaces that mirror
	// HydroServer time series databases.
	TimeSeriesWorkspacePrefix = "TS-"
	// SharedWorkspace holds layers that belong to no resource.
	SharedWorkspace = "hydroshare"
)

// SplitLayerCode splits "workspace:name" at the first colon.
func SplitLayerCode(code string) (workspace, name string, err error) {
	workspace, name, found := strings.Cut(code, ":")
	if !found || workspace == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidLayerCode, code)
	}
	return workspace, name, nil
}

// LayerName is the part of a layer code after the workspace.
func LayerName(code string) string {
	_, name, _ := strings.Cut(code, ":")
	return name
}

// WorkspaceID returns the id carried by a workspace name such as
// "HS-<resource id>" or "TS-<network id>".
func WorkspaceID(workspace string) (string, error) {
	parts := strings.Split(workspace, "-")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: workspace %q", ErrInvalidLayerCode, workspace)
	}
	return parts[1], nil
}

// ResourceWorkspace returns the GeoServer workspace of a resource.
func ResourceWorkspace(resourceID string) string {
	return ResourceWorkspacePrefix + resourceID
}

// NormalizeResourceLayerID prefixes a layer id with the resource workspace
// prefix unless it already has it.
func NormalizeResourceLayerID(layerID string) string {
	if layerID == "" || strings.HasPrefix(layerID, ResourceWorkspacePrefix) {
		return layerID
	}
	return ResourceWorkspacePrefix + layerID
}

// TimeSeriesSource identifies a HydroServer database.
type TimeSeriesSource struct {
	NetworkID  string
	DatabaseID string
}

// LayerID is the "network:database" form used by the GIS viewer.
func (s TimeSeriesSource) LayerID() string {
	return s.NetworkID + ":" + s.DatabaseID
}

// ParseTimeSeriesLayerCode reads a GeoServer time series layer code of the
// form "TS-<network>:<database>".
func ParseTimeSeriesLayerCode(code string) (TimeSeriesSource, error) {
	workspace, database, err := SplitLayerCode(code)
	if err != nil {
		return TimeSeriesSource{}, err
	}
	network, err := WorkspaceID(workspace)
	if err != nil {
		return TimeSeriesSource{}, err
	}
	if database == "" {
		return TimeSeriesSource{}, fmt.Errorf("%w: %q", ErrInvalidLayerCode, code)
	}
	return TimeSeriesSource{NetworkID: network, DatabaseID: database}, nil
}

// ParseTimeSeriesLayerID reads a GIS viewer layer id "<network>:<database>".
func ParseTimeSeriesLayerID(id string) (TimeSeriesSource, error) {
	network, database, err := SplitLayerCode(id)
	if err != nil {
		return TimeSeriesSource{}, err
	}
	if database == "" {
		return TimeSeriesSource{}, fmt.Errorf("%w: %q", ErrInvalidLayerCode, id)
	}
	return TimeSeriesSource{NetworkID: network, DatabaseID: database}, nil
}

const layerKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewLayerKey returns a random ten character key used to address a layer in
// the GIS viewer's client-side layer list.
func NewLayerKey() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = layerKeyAlphabet[rand.IntN(len(layerKeyAlphabet))]
	}
	return string(b)
}
