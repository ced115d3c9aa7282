package discovery

import (
	"context"
	"testing"

	"stayline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailsFixture() *fakePMS {
	return &fakePMS{
		properties: []models.CatalogProperty{
			{
				ID:            7,
				Name:          "Truliv Olympus",
				FullAddress:   "12 OMR Road, Thoraipakkam",
				AddressCity:   "Chennai",
				Genders:       "Unisex",
				Type:          "Coliving",
				ResidentType:  "Working Professionals",
				Description:   "<p>Managed coliving near <b>OMR</b>.</p>",
				StartingPrice: 0,
				Amenities:     []models.Amenity{{Name: "WiFi"}, {Name: "Laundry"}},
				Location:      &models.CatalogLocation{ParentLocationName: "Thoraipakkam", MapURL: "https://maps.example/x"},
			},
			// No location block, like several live PMS entries.
			{ID: 9, Name: "Pine Residency", AddressStreet: "4 Pine St", AddressCity: "Chennai", StartingPrice: 9500},
		},
		roomTypes: map[int][]models.RoomType{
			7: {
				{
					Name:             "Twin Sharing",
					SharedAmenities:  []models.Amenity{{Name: "WiFi"}, {Name: "Housekeeping"}},
					PrivateAmenities: []models.Amenity{{Name: "WiFi"}, {Name: "Wardrobe"}},
				},
				{Name: "Private Room"},
			},
		},
	}
}

func detailsSheet() *fakeSheet {
	return &fakeSheet{rows: []models.PricingRow{
		{PropertyName: "Truliv Olympus", Price: 12000, Lat: 13, Long: 80},
		{PropertyName: "Truliv Olympus", Price: 8500, Lat: 13, Long: 80},
		{PropertyName: "Truliv Olympus", Price: 0, Lat: 13, Long: 80},
	}}
}

func TestLookupPropertySheetPriceFallback(t *testing.T) {
	svc := newTestService(detailsSheet(), detailsFixture(), &fakeGeocoder{})
	svc.Cache.Set("u1", map[string]any{})

	info, err := svc.LookupProperty(context.Background(), "u1", "olympus")
	require.NoError(t, err)

	assert.Equal(t, "Truliv Olympus", info.Name)
	assert.Equal(t, "12 OMR Road, Thoraipakkam", info.Address)
	assert.Equal(t, "Thoraipakkam", info.AreaName)
	// Catalog price is zero, so the lowest positive sheet price wins.
	assert.Equal(t, 8500, info.StartingPrice)
	assert.Equal(t, "Managed coliving near OMR.", info.Description)
	assert.Equal(t, []string{"WiFi", "Laundry"}, info.Amenities)
}

func TestLookupPropertyStagesPreference(t *testing.T) {
	svc := newTestService(detailsSheet(), detailsFixture(), &fakeGeocoder{})
	svc.Cache.Set("u1", map[string]any{})

	_, err := svc.LookupProperty(context.Background(), "u1", "olympus")
	require.NoError(t, err)

	data, _ := svc.Cache.Get("u1")
	assert.Equal(t, "Truliv Olympus", data[models.FieldPropertyPreference])
}

func TestLookupPropertyAssemblesAddressFromParts(t *testing.T) {
	svc := newTestService(detailsSheet(), detailsFixture(), &fakeGeocoder{})
	svc.Cache.Set("u1", map[string]any{})

	info, err := svc.LookupProperty(context.Background(), "u1", "Pine Residency")
	require.NoError(t, err)
	assert.Equal(t, "4 Pine St, Chennai", info.Address)
	assert.Equal(t, 9500, info.StartingPrice)
	// Fields the catalog leaves blank fall back to sensible defaults.
	assert.Equal(t, "Any", info.GenderType)
	assert.Equal(t, "Coliving", info.PropertyType)
}

func TestLookupPropertyWithoutLocationBlock(t *testing.T) {
	svc := newTestService(detailsSheet(), detailsFixture(), &fakeGeocoder{})
	svc.Cache.Set("u1", map[string]any{})

	info, err := svc.LookupProperty(context.Background(), "u1", "Pine Residency")
	require.NoError(t, err)
	assert.Equal(t, "Chennai", info.AreaName)
	assert.Empty(t, info.MapURL)
}

func TestLookupPropertyNotFound(t *testing.T) {
	svc := newTestService(detailsSheet(), detailsFixture(), &fakeGeocoder{})
	svc.Cache.Set("u1", map[string]any{})

	_, err := svc.LookupProperty(context.Background(), "u1", "Atlantis Towers")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestRoomTypesForMergesAndDedupesAmenities(t *testing.T) {
	svc := newTestService(detailsSheet(), detailsFixture(), &fakeGeocoder{})

	rooms, err := svc.RoomTypesFor(context.Background(), "olympus")
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, "Twin Sharing", rooms[0].Name)
	assert.Equal(t, []string{"WiFi", "Housekeeping", "Wardrobe"}, rooms[0].Amenities)

	assert.Equal(t, "Private Room", rooms[1].Name)
	assert.Empty(t, rooms[1].Amenities)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain", stripHTML("plain"))
	assert.Equal(t, "a b", stripHTML("<p>a <b>b</b></p>"))
	assert.Equal(t, "", stripHTML("<br/>"))
}
