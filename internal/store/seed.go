package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

// LoadSeedFile reads listings from a JSON file (an array of Property
// objects). Listings without an ID get a fresh one assigned.
func LoadSeedFile(path string) ([]models.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var listings []models.Property
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i := range listings {
		if listings[i].ID.IsZero() {
			listings[i].ID = utils.NewSixID()
		}
	}
	return listings, nil
}

// DefaultAgents returns the built-in agent directory used when no external
// seed is configured.
func DefaultAgents() []models.Agent {
	return []models.Agent{
		{
			ID:          utils.NewSixID(),
			Name:        "Sarah Mitchell",
			Email:       "sarah.mitchell@realstate.example.com",
			Phone:       "+1 212 555 0142",
			Rating:      4.8,
			ReviewCount: 127,
			Company:     "Mitchell & Co Realty",
			Verified:    true,
			Specialties: []string{"residential", "luxury"},
			Experience:  12,
			Languages:   []string{"English", "Spanish"},
		},
		{
			ID:          utils.NewSixID(),
			Name:        "Diego Ramirez",
			Email:       "diego.ramirez@realstate.example.com",
			Phone:       "+1 305 555 0177",
			Rating:      4.6,
			ReviewCount: 89,
			Company:     "Coastline Properties",
			Verified:    true,
			Specialties: []string{"apartments", "rentals"},
			Experience:  7,
			Languages:   []string{"English", "Spanish", "Portuguese"},
		},
		{
			ID:          utils.NewSixID(),
			Name:        "Emily Chen",
			Email:       "emily.chen@realstate.example.com",
			Phone:       "+1 415 555 0193",
			Rating:      4.9,
			ReviewCount: 204,
			Company:     "Golden Gate Estates",
			Verified:    true,
			Specialties: []string{"commercial", "offices"},
			Experience:  15,
			Languages:   []string{"English", "Mandarin"},
		},
	}
}

// DefaultProperties returns the built-in listing seed. Agent references are
// assigned round-robin from the supplied directory.
func DefaultProperties(agents []models.Agent) []models.Property {
	agentID := func(i int) utils.SixID {
		if len(agents) == 0 {
			return utils.SixID{}
		}
		return agents[i%len(agents)].ID
	}
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	listings := []models.Property{
		{
			Title:       "Modern Family House in Brooklyn",
			Description: "Spacious four-bedroom house with a renovated kitchen, private backyard and garage.",
			Price:       520000, Currency: "USD",
			Type: models.PropertyTypeHouse, Operation: models.OperationSale,
			Bedrooms: 4, Bathrooms: 3, Area: 210,
			Address: "148 Maple Street", City: "New York", Zone: "Brooklyn",
			Coordinates: models.Coordinates{Lat: 40.6782, Lng: -73.9442},
			Images:      []string{"https://images.example.com/listings/brooklyn-house.jpg"},
			Features:    []string{"garage", "garden", "fireplace"},
			YearBuilt:   2008,
			CreatedAt:   base, UpdatedAt: base,
			Featured: true, Views: 42, Status: models.StatusAvailable,
		},
		{
			Title:       "Sunny Midtown Apartment",
			Description: "Two-bedroom apartment with floor-to-ceiling windows and a doorman building.",
			Price:       475000, Currency: "USD",
			Type: models.PropertyTypeApartment, Operation: models.OperationSale,
			Bedrooms: 2, Bathrooms: 2, Area: 95,
			Address: "901 7th Avenue", City: "New York", Zone: "Midtown",
			Coordinates: models.Coordinates{Lat: 40.7648, Lng: -73.9808},
			Images:      []string{"https://images.example.com/listings/midtown-apartment.jpg"},
			Features:    []string{"elevator", "doorman", "gym"},
			YearBuilt:   2015,
			CreatedAt:   base.Add(3 * day), UpdatedAt: base.Add(3 * day),
			Featured: true, Views: 88, Status: models.StatusAvailable,
		},
		{
			Title:       "Waterfront Condo in Brickell",
			Description: "Rental condo with bay views, balcony, pool and covered parking.",
			Price:       3200, Currency: "USD",
			Type: models.PropertyTypeApartment, Operation: models.OperationRent,
			Bedrooms: 1, Bathrooms: 1, Area: 68,
			Address: "55 Bayshore Drive", City: "Miami", Zone: "Brickell",
			Coordinates: models.Coordinates{Lat: 25.7617, Lng: -80.1918},
			Images:      []string{"https://images.example.com/listings/brickell-condo.jpg"},
			Features:    []string{"pool", "balcony", "parking"},
			YearBuilt:   2019,
			CreatedAt:   base.Add(6 * day), UpdatedAt: base.Add(6 * day),
			Featured: false, Views: 131, Status: models.StatusAvailable,
		},
		{
			Title:       "Craftsman Bungalow in Silver Lake",
			Description: "Restored three-bedroom craftsman with original woodwork and a studio over the garage.",
			Price:       890000, Currency: "USD",
			Type: models.PropertyTypeHouse, Operation: models.OperationSale,
			Bedrooms: 3, Bathrooms: 2, Area: 165,
			Address: "2214 Sunset Terrace", City: "Los Angeles", Zone: "Silver Lake",
			Coordinates: models.Coordinates{Lat: 34.0869, Lng: -118.2702},
			Images:      []string{"https://images.example.com/listings/silverlake-bungalow.jpg"},
			Features:    []string{"garage", "studio", "garden"},
			YearBuilt:   1926,
			CreatedAt:   base.Add(9 * day), UpdatedAt: base.Add(9 * day),
			Featured: true, Views: 57, Status: models.StatusAvailable,
		},
		{
			Title:       "Open-Plan Office in the Loop",
			Description: "Fitted-out office floor for rent, 14 workstations, two meeting rooms, server closet.",
			Price:       8500, Currency: "USD",
			Type: models.PropertyTypeOffice, Operation: models.OperationRent,
			Bedrooms: 0, Bathrooms: 2, Area: 310,
			Address: "77 W Monroe Street", City: "Chicago", Zone: "The Loop",
			Coordinates: models.Coordinates{Lat: 41.8807, Lng: -87.6298},
			Images:      []string{"https://images.example.com/listings/loop-office.jpg"},
			Features:    []string{"elevator", "parking", "security"},
			YearBuilt:   2001,
			CreatedAt:   base.Add(12 * day), UpdatedAt: base.Add(12 * day),
			Featured: false, Views: 19, Status: models.StatusAvailable,
		},
		{
			Title:       "Corner Lot in Queens",
			Description: "Flat 600 square meter corner lot zoned residential, utilities at the street.",
			Price:       310000, Currency: "USD",
			Type: models.PropertyTypeLand, Operation: models.OperationSale,
			Bedrooms: 0, Bathrooms: 0, Area: 600,
			Address: "34-18 Ditmars Boulevard", City: "New York", Zone: "Queens",
			Coordinates: models.Coordinates{Lat: 40.7769, Lng: -73.9124},
			Images:      []string{"https://images.example.com/listings/queens-lot.jpg"},
			Features:    []string{"corner lot"},
			CreatedAt:   base.Add(15 * day), UpdatedAt: base.Add(15 * day),
			Featured: false, Views: 11, Status: models.StatusAvailable,
		},
		{
			Title:       "Retail Space on Lincoln Road",
			Description: "High-footfall commercial unit with street frontage and storage mezzanine.",
			Price:       1250000, Currency: "USD",
			Type: models.PropertyTypeCommercial, Operation: models.OperationSale,
			Bedrooms: 0, Bathrooms: 1, Area: 180,
			Address: "732 Lincoln Road", City: "Miami", Zone: "South Beach",
			Coordinates: models.Coordinates{Lat: 25.7907, Lng: -80.1400},
			Images:      []string{"https://images.example.com/listings/lincoln-retail.jpg"},
			Features:    []string{"street frontage", "storage"},
			YearBuilt:   1998,
			CreatedAt:   base.Add(18 * day), UpdatedAt: base.Add(18 * day),
			Featured: false, Views: 24, Status: models.StatusPending,
		},
		{
			Title:       "Uptown Brownstone Duplex",
			Description: "Two-bedroom duplex rental in a classic brownstone, washer-dryer in unit.",
			Price:       4100, Currency: "USD",
			Type: models.PropertyTypeApartment, Operation: models.OperationRent,
			Bedrooms: 2, Bathrooms: 1, Area: 110,
			Address: "412 W 145th Street", City: "New York", Zone: "Harlem",
			Coordinates: models.Coordinates{Lat: 40.8243, Lng: -73.9444},
			Images:      []string{"https://images.example.com/listings/harlem-duplex.jpg"},
			Features:    []string{"washer-dryer", "fireplace"},
			YearBuilt:   1911,
			CreatedAt:   base.Add(21 * day), UpdatedAt: base.Add(21 * day),
			Featured: true, Views: 64, Status: models.StatusAvailable,
		},
	}

	for i := range listings {
		listings[i].ID = utils.NewSixID()
		listings[i].AgentID = agentID(i)
	}
	return listings
}
