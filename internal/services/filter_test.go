package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhosasa/Real-State/internal/models"
)

func TestApplyFilters_NoFiltersReturnsAll(t *testing.T) {
	listings := []models.Property{
		testListing("A"),
		testListing("B"),
		testListing("C"),
	}

	out := ApplyFilters(listings, models.SearchFilters{})
	assert.Equal(t, []string{"A", "B", "C"}, titles(out))
}

func TestApplyFilters_ConjunctionAcrossFields(t *testing.T) {
	listings := []models.Property{
		testListing("match", withType(models.PropertyTypeApartment), withCity("Miami"), withPrice(200000)),
		testListing("wrong city", withType(models.PropertyTypeApartment), withCity("Chicago"), withPrice(200000)),
		testListing("wrong type", withType(models.PropertyTypeHouse), withCity("Miami"), withPrice(200000)),
		testListing("too expensive", withType(models.PropertyTypeApartment), withCity("Miami"), withPrice(900000)),
	}

	out := ApplyFilters(listings, models.SearchFilters{
		Type:     typePtr(models.PropertyTypeApartment),
		City:     strPtr("miami"),
		MaxPrice: floatPtr(500000),
	})
	assert.Equal(t, []string{"match"}, titles(out))
}

func TestApplyFilters_RangeBoundsAreInclusive(t *testing.T) {
	listings := []models.Property{
		testListing("below", withPrice(99999)),
		testListing("at min", withPrice(100000)),
		testListing("inside", withPrice(150000)),
		testListing("at max", withPrice(200000)),
		testListing("above", withPrice(200001)),
	}

	out := ApplyFilters(listings, models.SearchFilters{
		MinPrice: floatPtr(100000),
		MaxPrice: floatPtr(200000),
	})
	assert.Equal(t, []string{"at min", "inside", "at max"}, titles(out))
}

func TestApplyFilters_ZeroMinPriceIsAConstraint(t *testing.T) {
	listings := []models.Property{
		testListing("free", withPrice(0)),
		testListing("paid", withPrice(100)),
	}

	// MinPrice = 0 is provided, so both pass; nil would mean no constraint
	// too, but the pointer keeps the two cases distinct.
	out := ApplyFilters(listings, models.SearchFilters{MinPrice: floatPtr(0)})
	assert.Len(t, out, 2)

	out = ApplyFilters(listings, models.SearchFilters{MinPrice: floatPtr(1)})
	assert.Equal(t, []string{"paid"}, titles(out))
}

func TestApplyFilters_BedroomsBathroomsArea(t *testing.T) {
	listings := []models.Property{
		testListing("small", withBedrooms(1), withBathrooms(1), withArea(40)),
		testListing("medium", withBedrooms(3), withBathrooms(2), withArea(120)),
		testListing("large", withBedrooms(5), withBathrooms(4), withArea(300)),
	}

	out := ApplyFilters(listings, models.SearchFilters{
		MinBedrooms:  intPtr(2),
		MaxBedrooms:  intPtr(4),
		MinBathrooms: intPtr(2),
		MinArea:      floatPtr(100),
		MaxArea:      floatPtr(200),
	})
	assert.Equal(t, []string{"medium"}, titles(out))
}

func TestApplyFilters_CityAndZoneSubstringIgnoreCase(t *testing.T) {
	listings := []models.Property{
		testListing("brooklyn", withCity("New York"), withZone("Brooklyn Heights")),
		testListing("queens", withCity("New York"), withZone("Queens")),
		testListing("la", withCity("Los Angeles"), withZone("Silver Lake")),
	}

	out := ApplyFilters(listings, models.SearchFilters{City: strPtr("new YORK")})
	assert.Equal(t, []string{"brooklyn", "queens"}, titles(out))

	out = ApplyFilters(listings, models.SearchFilters{Zone: strPtr("brook")})
	assert.Equal(t, []string{"brooklyn"}, titles(out))
}

func TestApplyFilters_QueryMatchesAnyTextField(t *testing.T) {
	listings := []models.Property{
		testListing("Sunny Loft"),
		testListing("B", func(p *models.Property) { p.Description = "close to the sunny side park" }),
		testListing("C", func(p *models.Property) { p.Address = "12 Sunnydale Ave" }),
		testListing("D", withFeatures("sunny terrace")),
		testListing("E"),
	}

	// The structured query field does not look at feature tags.
	out := ApplyFilters(listings, models.SearchFilters{Query: strPtr("sunny")})
	assert.Equal(t, []string{"Sunny Loft", "B", "C"}, titles(out))
}

func TestApplyFilters_FeaturesMatchAny(t *testing.T) {
	listings := []models.Property{
		testListing("pool only", withFeatures("pool")),
		testListing("garage only", withFeatures("garage")),
		testListing("both", withFeatures("pool", "garage")),
		testListing("neither", withFeatures("garden")),
	}

	out := ApplyFilters(listings, models.SearchFilters{Features: []string{"pool", "garage"}})
	assert.Equal(t, []string{"pool only", "garage only", "both"}, titles(out))
}

func TestApplyFilters_FeatureTagsAreExact(t *testing.T) {
	listings := []models.Property{
		testListing("lowercase", withFeatures("pool")),
		testListing("capitalized", withFeatures("Pool")),
	}

	// Feature tags intersect as exact strings; no case folding.
	out := ApplyFilters(listings, models.SearchFilters{Features: []string{"pool"}})
	assert.Equal(t, []string{"lowercase"}, titles(out))
}

func TestApplyFilters_OperationExactMatch(t *testing.T) {
	listings := []models.Property{
		testListing("for sale", withOperation(models.OperationSale)),
		testListing("for rent", withOperation(models.OperationRent)),
	}

	out := ApplyFilters(listings, models.SearchFilters{Operation: opPtr(models.OperationRent)})
	assert.Equal(t, []string{"for rent"}, titles(out))
}

func TestApplyFilters_InvertedRangeYieldsEmpty(t *testing.T) {
	listings := []models.Property{testListing("A", withPrice(100))}

	out := ApplyFilters(listings, models.SearchFilters{
		MinPrice: floatPtr(500),
		MaxPrice: floatPtr(100),
	})
	assert.Empty(t, out)
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	listings := []models.Property{
		testListing("A", withPrice(100)),
		testListing("B", withPrice(200)),
	}

	_ = ApplyFilters(listings, models.SearchFilters{MinPrice: floatPtr(150)})
	assert.Equal(t, []string{"A", "B"}, titles(listings))
}
