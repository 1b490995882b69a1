package reference

import "github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"

// Resource names one of the reference collections held per session
type Resource string

const (
	ResourceItemTypes  Resource = "item_types"
	ResourceColors     Resource = "colors"
	ResourceParties    Resource = "parties"
	ResourceDesigns    Resource = "designs"
	ResourceTransports Resource = "transport"
)

// AllResources returns every reference resource in a stable order
func AllResources() []Resource {
	return []Resource{ResourceItemTypes, ResourceColors, ResourceParties, ResourceDesigns, ResourceTransports}
}

// IsValid reports whether r is a known resource
func (r Resource) IsValid() bool {
	switch r {
	case ResourceItemTypes, ResourceColors, ResourceParties, ResourceDesigns, ResourceTransports:
		return true
	}
	return false
}

// String returns the string representation of Resource
func (r Resource) String() string {
	return string(r)
}

// ParseResource parses a resource name
func ParseResource(v string) (Resource, error) {
	r := Resource(v)
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_RESOURCE", "Unknown reference resource: "+v)
	}
	return r, nil
}
