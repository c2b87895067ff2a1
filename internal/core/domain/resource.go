package domain

// SharingStatus is the HydroShare visibility of a resource.
type SharingStatus string

const (
	SharingPublic       SharingStatus = "Public"
	SharingDiscoverable SharingStatus = "Discoverable"
	SharingPrivate      SharingStatus = "Private"
)

// ResolveSharingStatus collapses the public and discoverable flags. Public
// wins over discoverable.
func ResolveSharingStatus(public, discoverable bool) SharingStatus {
	switch {
	case public:
		return SharingPublic
	case discoverable:
		return SharingDiscoverable
	default:
		return SharingPrivate
	}
}

const (
	CoverageTypePoint = "point"
	CoverageTypeBox   = "box"
)

// ResourceCoverage is one spatial coverage entry from resource system
// metadata. Point coverages use East/North; box coverages use the limits.
type ResourceCoverage struct {
	Type       string
	East       float64
	North      float64
	WestLimit  float64
	SouthLimit float64
	EastLimit  float64
	NorthLimit float64
}

type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// BoundingBoxFromCoverages returns the box of the last point or box coverage,
// or nil when the resource has no spatial coverage.
func BoundingBoxFromCoverages(coverages []ResourceCoverage) *BoundingBox {
	var box *BoundingBox
	for _, c := range coverages {
		switch c.Type {
		case CoverageTypePoint:
			box = &BoundingBox{MinX: c.East, MinY: c.North, MaxX: c.East, MaxY: c.North}
		case CoverageTypeBox:
			box = &BoundingBox{MinX: c.WestLimit, MinY: c.SouthLimit, MaxX: c.EastLimit, MaxY: c.NorthLimit}
		}
	}
	return box
}

// SystemMetadata is the subset of a HydroShare sysmeta document the viewer
// reads.
type SystemMetadata struct {
	ResourceTitle   string
	Abstract        string
	Creator         string
	DateCreated     string
	DateLastUpdated string
	ResourceURL     string
	ResourceType    string
	Public          bool
	Discoverable    bool
	Coverages       []ResourceCoverage
}

// ResourceMetadata is the resource info panel of the data viewer.
type ResourceMetadata struct {
	ResourceTitle    string        `json:"resourceTitle"`
	ResourceAbstract string        `json:"resourceAbstract"`
	Creator          string        `json:"creator"`
	DateCreated      string        `json:"dateCreated"`
	LastUpdated      string        `json:"lastUpdated"`
	ResourceID       string        `json:"resourceId"`
	ResourceLink     string        `json:"resourceLink"`
	SharingStatus    SharingStatus `json:"sharingStatus"`
	ResourceType     string        `json:"resourceType"`
	LayerList        []Layer       `json:"layerList"`
	BoundingBox      *BoundingBox  `json:"boundingBox"`
}

// NewResourceMetadata combines system metadata with the resource's layers.
func NewResourceMetadata(resourceID string, meta *SystemMetadata, layers []Layer) *ResourceMetadata {
	if layers == nil {
		layers = []Layer{}
	}
	return &ResourceMetadata{
		ResourceTitle:    meta.ResourceTitle,
		ResourceAbstract: meta.Abstract,
		Creator:          meta.Creator,
		DateCreated:      meta.DateCreated,
		LastUpdated:      meta.DateLastUpdated,
		ResourceID:       resourceID,
		ResourceLink:     meta.ResourceURL,
		SharingStatus:    ResolveSharingStatus(meta.Public, meta.Discoverable),
		ResourceType:     meta.ResourceType,
		LayerList:        layers,
		BoundingBox:      BoundingBoxFromCoverages(meta.Coverages),
	}
}
