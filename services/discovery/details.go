package discovery

import (
	"context"
	"strings"

	"stayline/models"
	"stayline/utils"

	"go.uber.org/zap"
)

// PropertyInfo is the detail card for one catalog property, ready for
// intent-specific phrasing.
type PropertyInfo struct {
	Name          string
	Address       string
	AreaName      string
	MapURL        string
	GenderType    string
	PropertyType  string
	ResidentType  string
	Description   string
	Amenities     []string
	StartingPrice int
	Status        string
}

// LookupProperty resolves the spoken name against the PMS catalog and builds
// its detail card. A zero or missing catalog price falls back to the lowest
// positive price in the pricing sheet. The matched name is staged as the
// caller's property preference.
func (s *Service) LookupProperty(ctx context.Context, userID, propertyName string) (*PropertyInfo, error) {
	logger := utils.GetLogger()

	prop, _, err := s.Catalog.ResolveCatalogProperty(ctx, propertyName)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		logger.Warn("Property not found in catalog", zap.String("name", propertyName))
		return nil, ErrPropertyNotFound
	}

	address := strings.TrimSpace(prop.FullAddress)
	if address == "" {
		var parts []string
		for _, part := range []string{prop.AddressStreet, prop.AddressCity, prop.AddressState, prop.AddressPin} {
			if strings.TrimSpace(part) != "" {
				parts = append(parts, strings.TrimSpace(part))
			}
		}
		address = strings.Join(parts, ", ")
	}

	// The PMS omits the location block for some properties.
	var areaName, mapURL string
	if prop.Location != nil {
		areaName = prop.Location.ParentLocationName
		mapURL = prop.Location.MapURL
	}
	if areaName == "" {
		areaName = prop.AddressCity
	}

	var amenities []string
	for _, amenity := range prop.Amenities {
		if amenity.Name != "" {
			amenities = append(amenities, amenity.Name)
		}
	}

	startingPrice := int(prop.StartingPrice)
	if startingPrice <= 0 {
		if sheetPrice := s.sheetStartingPrice(ctx, prop.Name); sheetPrice > 0 {
			startingPrice = sheetPrice
			logger.Info("Using sheet price fallback",
				zap.String("property", prop.Name),
				zap.Int("price", startingPrice))
		}
	}

	s.Cache.Update(userID, map[string]any{
		models.ContextDataPrefix + models.FieldPropertyPreference: prop.Name,
	})

	genderType := prop.Genders
	if genderType == "" {
		genderType = "Any"
	}
	propertyType := prop.Type
	if propertyType == "" {
		propertyType = "Coliving"
	}
	status := prop.Status
	if status == "" {
		status = "Live"
	}

	return &PropertyInfo{
		Name:          prop.Name,
		Address:       address,
		AreaName:      areaName,
		MapURL:        mapURL,
		GenderType:    genderType,
		PropertyType:  propertyType,
		ResidentType:  prop.ResidentType,
		Description:   stripHTML(prop.Description),
		Amenities:     amenities,
		StartingPrice: startingPrice,
		Status:        status,
	}, nil
}

// sheetStartingPrice returns the lowest positive sheet price for a property,
// matched by substring, or 0 when nothing matches.
func (s *Service) sheetStartingPrice(ctx context.Context, propertyName string) int {
	rows, err := s.Catalog.LoadPricingCatalogOnce(ctx)
	if err != nil {
		return 0
	}

	needle := strings.ToLower(strings.TrimSpace(propertyName))
	lowest := 0.0
	for _, row := range rows {
		if !strings.Contains(strings.ToLower(row.PropertyName), needle) {
			continue
		}
		if row.Price > 0 && (lowest == 0 || row.Price < lowest) {
			lowest = row.Price
		}
	}
	return int(lowest)
}

// RoomSummary is one room configuration with its merged amenity list.
type RoomSummary struct {
	Name      string
	Amenities []string
}

// RoomTypesFor lists the room configurations of a property with shared and
// private amenities merged and deduplicated, first-seen order preserved.
func (s *Service) RoomTypesFor(ctx context.Context, propertyName string) ([]RoomSummary, error) {
	prop, _, err := s.Catalog.ResolveCatalogProperty(ctx, propertyName)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, ErrPropertyNotFound
	}

	roomTypes, err := s.PMS.RoomTypes(ctx, prop.CatalogID())
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(roomTypes))
	for _, room := range roomTypes {
		seen := make(map[string]bool)
		var amenities []string
		for _, amenity := range append(append([]models.Amenity{}, room.SharedAmenities...), room.PrivateAmenities...) {
			if amenity.Name == "" || seen[amenity.Name] {
				continue
			}
			seen[amenity.Name] = true
			amenities = append(amenities, amenity.Name)
		}

		name := room.Name
		if name == "" {
			name = "Room"
		}
		summaries = append(summaries, RoomSummary{Name: name, Amenities: amenities})
	}

	utils.GetLogger().Info("Fetched room types",
		zap.String("property", prop.Name),
		zap.Int("count", len(summaries)))
	return summaries, nil
}

// stripHTML removes markup tags from catalog descriptions.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
