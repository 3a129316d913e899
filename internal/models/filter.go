package models

// SortKey selects the attribute the sort engine orders by.
type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByDate      SortKey = "date"
	SortByArea      SortKey = "area"
	SortByRelevance SortKey = "relevance" // view count
)

// SortOrder selects the sort direction. Ascending is the default.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchFilters is the set of optional search constraints supplied by a
// caller. Every field uses a pointer (or nil slice) so that "not provided"
// stays distinct from a legitimate zero value such as MinPrice = 0.
// A nil field imposes no constraint on its dimension.
type SearchFilters struct {
	Query        *string        `json:"query,omitempty" form:"query"`
	Operation    *OperationType `json:"operation,omitempty" form:"operation"`
	Type         *PropertyType  `json:"type,omitempty" form:"type"`
	City         *string        `json:"city,omitempty" form:"city"`
	Zone         *string        `json:"zone,omitempty" form:"zone"`
	MinPrice     *float64       `json:"min_price,omitempty" form:"min_price"`
	MaxPrice     *float64       `json:"max_price,omitempty" form:"max_price"`
	MinBedrooms  *int           `json:"min_bedrooms,omitempty" form:"min_bedrooms"`
	MaxBedrooms  *int           `json:"max_bedrooms,omitempty" form:"max_bedrooms"`
	MinBathrooms *int           `json:"min_bathrooms,omitempty" form:"min_bathrooms"`
	MaxBathrooms *int           `json:"max_bathrooms,omitempty" form:"max_bathrooms"`
	MinArea      *float64       `json:"min_area,omitempty" form:"min_area"`
	MaxArea      *float64       `json:"max_area,omitempty" form:"max_area"`
	Features     []string       `json:"features,omitempty" form:"features"`
	SortBy       *SortKey       `json:"sort_by,omitempty" form:"sort_by"`
	SortOrder    *SortOrder     `json:"sort_order,omitempty" form:"sort_order"`
}
