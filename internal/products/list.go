package products

import "github.com/RedaKaafarani1/ecomwebsite/pkg/pagination"

// ListFilters describe the supported filter knobs for the browse endpoint.
// Query is matched against name, description, and short description after
// sanitization; Tag narrows to listings carrying the tag.
type ListFilters struct {
	Query string `json:"q,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// ListInput captures the inputs needed to paginate and filter the catalog.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}
