package models

import (
	"time"

	"github.com/jhosasa/Real-State/internal/utils"
)

// PropertyType enumerates the kinds of properties the marketplace lists.
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeOffice     PropertyType = "office"
	PropertyTypeCommercial PropertyType = "commercial"
)

// OperationType defines whether a property is offered for sale or rent.
type OperationType string

const (
	OperationSale OperationType = "sale"
	OperationRent OperationType = "rent"
)

// PropertyStatus tracks the lifecycle of a listing on the market.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusRented    PropertyStatus = "rented"
	StatusPending   PropertyStatus = "pending"
)

// Coordinates holds a geographic point for a property.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Property represents a real-estate listing.
// Views is mutated only through the store's increment path; everything else
// is immutable after seeding (status changes come from outside the core).
type Property struct {
	ID          utils.SixID    `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Type        PropertyType   `json:"type"`
	Operation   OperationType  `json:"operation"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Area        float64        `json:"area"` // square meters
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Zone        string         `json:"zone"`
	Coordinates Coordinates    `json:"coordinates"`
	Images      []string       `json:"images"`
	Features    []string       `json:"features"`
	YearBuilt   int            `json:"year_built,omitempty"`
	AgentID     utils.SixID    `json:"agent_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Featured    bool           `json:"featured"`
	Views       int64          `json:"views"`
	Status      PropertyStatus `json:"status"`
}
