package discovery

import (
	"context"
	"strings"

	"stayline/models"
	"stayline/utils"

	"go.uber.org/zap"
)

// RoomBeds is one room type's open bed count within an explore result.
type RoomBeds struct {
	RoomType string
	Beds     int
}

// AvailableProperty is a cluster property with at least one open bed.
type AvailableProperty struct {
	Name         string
	Availability []RoomBeds
}

// ExploreResult is the outcome of an explore-more search.
type ExploreResult struct {
	NeedLocation   bool   // no cluster on record yet
	NoneInCluster  bool   // sheet has no rows for the cluster
	AllExcluded    bool   // every cluster property already mentioned
	NoneAvailable  bool   // remaining properties all full
	AreaName       string // spoken location, or empty
	RoomPreference string
	Properties     []AvailableProperty
}

// ExploreMore lists further properties in the caller's cluster, skipping
// excluded names and anything with no live availability. Properties the PMS
// catalog does not know, and properties whose availability check fails, are
// skipped rather than failing the whole search.
func (s *Service) ExploreMore(ctx context.Context, userID string, excludeProperties []string) (*ExploreResult, error) {
	logger := utils.GetLogger()

	contextData, err := s.loadContext(userID)
	if err != nil {
		if err == ErrContextMissing {
			return &ExploreResult{NeedLocation: true}, nil
		}
		return nil, err
	}

	cluster := stringField(contextData, models.FieldCluster)
	result := &ExploreResult{
		AreaName:       stringField(contextData, models.FieldLocationPreference),
		RoomPreference: stringField(contextData, models.FieldRoomSharing),
	}
	if cluster == "" {
		result.NeedLocation = true
		return result, nil
	}

	rows, err := s.Catalog.LoadPricingCatalogOnce(ctx)
	if err != nil {
		return nil, err
	}

	var clusterNames []string
	seen := make(map[string]bool)
	for _, row := range rows {
		if !strings.EqualFold(row.Cluster, cluster) || seen[row.PropertyName] {
			continue
		}
		seen[row.PropertyName] = true
		clusterNames = append(clusterNames, row.PropertyName)
	}
	if len(clusterNames) == 0 {
		result.NoneInCluster = true
		return result, nil
	}

	excluded := make(map[string]bool, len(excludeProperties))
	for _, name := range excludeProperties {
		excluded[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var remaining []string
	for _, name := range clusterNames {
		if !excluded[strings.ToLower(name)] {
			remaining = append(remaining, name)
		}
	}
	if len(remaining) == 0 {
		result.AllExcluded = true
		return result, nil
	}

	for _, name := range remaining {
		prop, _, err := s.Catalog.ResolveCatalogProperty(ctx, name)
		if err != nil {
			return nil, err
		}
		if prop == nil {
			logger.Info("Skipping property with no catalog id", zap.String("property", name))
			continue
		}

		availability, err := s.PMS.BedAvailability(ctx, prop.CatalogID())
		if err != nil {
			logger.Error("Availability check failed",
				zap.String("property", name), zap.Error(err))
			continue
		}
		if len(availability) == 0 {
			logger.Info("Skipping property with no availability data", zap.String("property", name))
			continue
		}

		var open []RoomBeds
		for _, room := range availability[0].Availability {
			if room.AvailableBeds > 0 {
				open = append(open, RoomBeds{RoomType: room.RoomTypeName, Beds: room.AvailableBeds})
			}
		}
		if len(open) == 0 {
			logger.Info("Skipping property with no open beds", zap.String("property", name))
			continue
		}

		result.Properties = append(result.Properties, AvailableProperty{
			Name:         name,
			Availability: open,
		})
	}

	if len(result.Properties) == 0 {
		result.NoneAvailable = true
	}

	logger.Info("Explore-more search complete",
		zap.String("cluster", cluster),
		zap.Int("found", len(result.Properties)))
	return result, nil
}
