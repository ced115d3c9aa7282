package discovery

import (
	"context"
	"errors"

	"stayline/models"
	"stayline/services/catalog"
	"stayline/services/geo"
	"stayline/services/session"
)

type fakeSheet struct {
	rows []models.PricingRow
	err  error
}

func (f *fakeSheet) FetchPricingRows(ctx context.Context) ([]models.PricingRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakePMS struct {
	properties   []models.CatalogProperty
	roomTypes    map[int][]models.RoomType
	availability map[int][]models.PropertyAvailability
	availErrIDs  map[int]bool
}

func (f *fakePMS) Properties(ctx context.Context) ([]models.CatalogProperty, error) {
	return f.properties, nil
}

func (f *fakePMS) RoomTypes(ctx context.Context, propertyID int) ([]models.RoomType, error) {
	return f.roomTypes[propertyID], nil
}

func (f *fakePMS) BedAvailability(ctx context.Context, propertyID int) ([]models.PropertyAvailability, error) {
	if f.availErrIDs[propertyID] {
		return nil, errors.New("PMS unavailable")
	}
	return f.availability[propertyID], nil
}

type fakeGeocoder struct {
	point     geo.Point
	err       error
	lastQuery string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (geo.Point, error) {
	f.lastQuery = query
	if f.err != nil {
		return geo.Point{}, f.err
	}
	return f.point, nil
}

type fakeRepo struct {
	docs    map[string]*models.UserContext
	findErr error
}

func (f *fakeRepo) FindByID(id string) (*models.UserContext, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.docs[id], nil
}

func (f *fakeRepo) UpsertFields(id string, fields map[string]any) error { return nil }

func (f *fakeRepo) AppendCallSummary(id string, summary models.CallSummary) error { return nil }

func qualifiedContext() map[string]any {
	return map[string]any{
		models.FieldProfession:       "working",
		models.FieldMoveInPreference: "this_month",
		models.FieldRoomSharing:      "private",
	}
}

func newTestService(sheet *fakeSheet, pmsAPI *fakePMS, geocoder *fakeGeocoder) *Service {
	repo := &fakeRepo{docs: make(map[string]*models.UserContext)}
	return &Service{
		Cache:       session.NewStore(repo),
		Repo:        repo,
		Catalog:     catalog.NewStore(sheet, pmsAPI),
		Geocoder:    geocoder,
		PMS:         pmsAPI,
		QuerySuffix: ", Chennai, India",
	}
}
