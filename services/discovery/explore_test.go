package discovery

import (
	"context"
	"testing"

	"stayline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exploreFixture() (*fakeSheet, *fakePMS) {
	sheet := &fakeSheet{rows: []models.PricingRow{
		{PropertyName: "Seen One", Cluster: "OMR", Price: 8000, Lat: 13, Long: 80},
		{PropertyName: "Open House", Cluster: "OMR", Price: 7000, Lat: 13, Long: 80},
		{PropertyName: "Full House", Cluster: "OMR", Price: 7500, Lat: 13, Long: 80},
		{PropertyName: "Ghost House", Cluster: "OMR", Price: 9000, Lat: 13, Long: 80},
		{PropertyName: "Elsewhere", Cluster: "ECR", Price: 6000, Lat: 13, Long: 80},
	}}

	pmsAPI := &fakePMS{
		properties: []models.CatalogProperty{
			{ID: 1, Name: "Seen One"},
			{ID: 2, Name: "Open House"},
			{ID: 3, Name: "Full House"},
			// "Ghost House" is absent from the PMS catalog.
		},
		availability: map[int][]models.PropertyAvailability{
			2: {{PropertyID: 2, Availability: []models.RoomAvailability{
				{RoomTypeName: "Twin Sharing", AvailableBeds: 3, AvailableFemaleBeds: 2, AvailableMaleBeds: 1},
				{RoomTypeName: "Private", AvailableBeds: 0},
			}}},
			3: {{PropertyID: 3, Availability: []models.RoomAvailability{
				{RoomTypeName: "Twin Sharing", AvailableBeds: 0},
			}}},
		},
	}
	return sheet, pmsAPI
}

func exploreContext() map[string]any {
	data := qualifiedContext()
	data[models.FieldCluster] = "OMR"
	data[models.FieldLocationPreference] = "Thoraipakkam"
	return data
}

func TestExploreMoreSkipsExcludedUnknownAndFull(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})
	svc.Cache.Set("u1", exploreContext())

	result, err := svc.ExploreMore(context.Background(), "u1", []string{"seen one"})
	require.NoError(t, err)

	// Excluded, catalog-unknown and fully-booked properties all drop out.
	require.Len(t, result.Properties, 1)
	assert.Equal(t, "Open House", result.Properties[0].Name)
	require.Len(t, result.Properties[0].Availability, 1)
	assert.Equal(t, "Twin Sharing", result.Properties[0].Availability[0].RoomType)
	assert.Equal(t, 3, result.Properties[0].Availability[0].Beds)
}

func TestExploreMoreAllExcluded(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})
	svc.Cache.Set("u1", exploreContext())

	result, err := svc.ExploreMore(context.Background(), "u1",
		[]string{"Seen One", "Open House", "Full House", "Ghost House"})
	require.NoError(t, err)
	assert.True(t, result.AllExcluded)
	assert.Equal(t, "Thoraipakkam", result.AreaName)
}

func TestExploreMoreNoneAvailable(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	pmsAPI.availability = nil
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})
	svc.Cache.Set("u1", exploreContext())

	result, err := svc.ExploreMore(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.True(t, result.NoneAvailable)
	assert.Equal(t, "private", result.RoomPreference)
}

func TestExploreMoreAvailabilityErrorSkipsProperty(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	pmsAPI.availErrIDs = map[int]bool{3: true}
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})
	svc.Cache.Set("u1", exploreContext())

	result, err := svc.ExploreMore(context.Background(), "u1", nil)
	require.NoError(t, err)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, "Open House", result.Properties[0].Name)
}

func TestExploreMoreNeedsCluster(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})
	svc.Cache.Set("u1", qualifiedContext())

	result, err := svc.ExploreMore(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.True(t, result.NeedLocation)
}

func TestExploreMoreUnknownCallerNeedsLocation(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})

	result, err := svc.ExploreMore(context.Background(), "stranger", nil)
	require.NoError(t, err)
	assert.True(t, result.NeedLocation)
}

func TestExploreMoreClusterMatchIsCaseInsensitive(t *testing.T) {
	sheet, pmsAPI := exploreFixture()
	svc := newTestService(sheet, pmsAPI, &fakeGeocoder{})
	data := exploreContext()
	data[models.FieldCluster] = "omr"
	svc.Cache.Set("u1", data)

	result, err := svc.ExploreMore(context.Background(), "u1", nil)
	require.NoError(t, err)
	require.Len(t, result.Properties, 1)
}
