package availability

import (
	"context"
	"errors"
	"sort"

	"stayline/models"
	"stayline/services/catalog"
	"stayline/services/pms"
	"stayline/utils"

	"go.uber.org/zap"
)

// ErrPropertyNotFound means the spoken name matched nothing in the catalog.
var ErrPropertyNotFound = errors.New("property not found")

// Service answers live bed availability questions against the PMS,
// resolving spoken names through the catalog store.
type Service struct {
	Catalog *catalog.Store
	PMS     pms.API
}

// ForProperty returns the open room types of one property, gender split
// included. Room types with zero open beds are dropped so the conversation
// layer never offers a full room. Returns the catalog's canonical property
// name alongside the rooms.
func (s *Service) ForProperty(ctx context.Context, propertyName string) (string, []models.RoomTypeSummary, error) {
	prop, _, err := s.Catalog.ResolveCatalogProperty(ctx, propertyName)
	if err != nil {
		return "", nil, err
	}
	if prop == nil {
		return "", nil, ErrPropertyNotFound
	}

	availability, err := s.PMS.BedAvailability(ctx, prop.CatalogID())
	if err != nil {
		return "", nil, err
	}

	var rooms []models.RoomTypeSummary
	if len(availability) > 0 {
		for _, room := range availability[0].Availability {
			if room.AvailableBeds <= 0 {
				continue
			}
			rooms = append(rooms, models.RoomTypeSummary{
				RoomType:        room.RoomTypeName,
				TotalAvailable:  room.AvailableBeds,
				MaleAvailable:   room.AvailableMaleBeds,
				FemaleAvailable: room.AvailableFemaleBeds,
			})
		}
	}

	utils.GetLogger().Info("Fetched property availability",
		zap.String("property", prop.Name),
		zap.Int("openRoomTypes", len(rooms)))
	return prop.Name, rooms, nil
}

// All returns every property with open beds, busiest first. Availability
// entries whose property id is missing from the catalog are skipped; the
// PMS occasionally reports ids for delisted properties.
func (s *Service) All(ctx context.Context) ([]models.PropertyBeds, error) {
	logger := utils.GetLogger()

	properties, err := s.Catalog.LoadAPICatalogOnce(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*models.CatalogProperty, len(properties))
	for i := range properties {
		byID[properties[i].CatalogID()] = &properties[i]
	}

	availability, err := s.PMS.BedAvailability(ctx, 0)
	if err != nil {
		return nil, err
	}

	var results []models.PropertyBeds
	for _, propAvail := range availability {
		prop, ok := byID[propAvail.PropertyID]
		if !ok {
			logger.Info("Skipping availability for unknown property id",
				zap.Int("propertyId", propAvail.PropertyID))
			continue
		}

		total := 0
		var rooms []models.RoomTypeSummary
		for _, room := range propAvail.Availability {
			if room.AvailableBeds <= 0 {
				continue
			}
			total += room.AvailableBeds
			rooms = append(rooms, models.RoomTypeSummary{
				RoomType:        room.RoomTypeName,
				TotalAvailable:  room.AvailableBeds,
				MaleAvailable:   room.AvailableMaleBeds,
				FemaleAvailable: room.AvailableFemaleBeds,
			})
		}
		if total == 0 {
			continue
		}

		results = append(results, models.PropertyBeds{
			PropertyID:    propAvail.PropertyID,
			Name:          prop.Name,
			Address:       prop.FullAddress,
			City:          prop.AddressCity,
			AvailableBeds: total,
			Rooms:         rooms,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AvailableBeds > results[j].AvailableBeds
	})

	logger.Info("Aggregated availability across properties",
		zap.Int("properties", len(results)))
	return results, nil
}
