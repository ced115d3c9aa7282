package discovery

import (
	"context"
	"sort"

	"stayline/models"
	"stayline/services/catalog"
	"stayline/services/geo"
	"stayline/utils"

	"go.uber.org/zap"
)

// maxNearbyResults caps the shortlist returned by a location search.
const maxNearbyResults = 7

// NearbyResult is the outcome of a location search. When MissingPrereq is
// set, the search did not run and the caller should ask that question.
type NearbyResult struct {
	MissingPrereq Prereq
	LocationQuery string
	Cluster       string
	Properties    []models.PropertySummary
}

// FindNearby geocodes the spoken location, maps it to the cluster of the
// nearest property, and returns up to seven properties: every cluster member
// ordered by distance first, then, if the cluster is short, the nearest
// properties from other clusters. Cluster members always precede fillers
// regardless of raw distance.
//
// On success the discovered location and cluster are staged in the session
// cache for the end-of-call flush.
func (s *Service) FindNearby(ctx context.Context, userID, locationQuery string) (*NearbyResult, error) {
	logger := utils.GetLogger()

	contextData, err := s.loadContext(userID)
	if err != nil {
		return nil, err
	}
	if missing := CheckPrereqs(contextData); missing != "" {
		logger.Warn("Location search blocked on prerequisite",
			zap.String("userID", userID),
			zap.String("missing", string(missing)))
		return &NearbyResult{MissingPrereq: missing, LocationQuery: locationQuery}, nil
	}

	rows, err := s.Catalog.LoadPricingCatalogOnce(ctx)
	if err != nil {
		return nil, err
	}

	point, err := s.Geocoder.Geocode(ctx, locationQuery+s.QuerySuffix)
	if err != nil {
		return nil, err
	}

	distances := make(map[string]float64, len(rows))
	nearestIdx := 0
	nearestDist := 0.0
	for i, row := range rows {
		d := geo.Haversine(point.Lat, point.Lng, row.Lat, row.Long)
		if existing, ok := distances[row.PropertyName]; !ok || d < existing {
			distances[row.PropertyName] = d
		}
		if i == 0 || d < nearestDist {
			nearestIdx, nearestDist = i, d
		}
	}

	cluster := rows[nearestIdx].Cluster
	logger.Info("Location mapped to cluster",
		zap.String("query", locationQuery),
		zap.String("cluster", cluster))

	var clusterRows, otherRows []models.PricingRow
	for _, row := range rows {
		if row.Cluster == cluster {
			clusterRows = append(clusterRows, row)
		} else {
			otherRows = append(otherRows, row)
		}
	}

	distanceOf := func(row models.PricingRow) float64 {
		return distances[row.PropertyName]
	}

	clusterUnique := catalog.CollapseUnique(clusterRows, distanceOf)
	sortByDistance(clusterUnique)

	var shortlist []models.PropertySummary
	if len(clusterUnique) < maxNearbyResults {
		otherUnique := catalog.CollapseUnique(otherRows, distanceOf)
		sortByDistance(otherUnique)

		needed := maxNearbyResults - len(clusterUnique)
		if needed > len(otherUnique) {
			needed = len(otherUnique)
		}
		// Cluster members first in their proximity order, then nearest
		// fillers in theirs. Never interleaved.
		shortlist = append(append([]models.PropertySummary{}, clusterUnique...), otherUnique[:needed]...)
	} else {
		shortlist = clusterUnique[:maxNearbyResults]
	}

	s.Cache.Update(userID, map[string]any{
		models.ContextDataPrefix + models.FieldLocationPreference: locationQuery,
		models.ContextDataPrefix + models.FieldCluster:            cluster,
	})

	return &NearbyResult{
		LocationQuery: locationQuery,
		Cluster:       cluster,
		Properties:    shortlist,
	}, nil
}

func sortByDistance(summaries []models.PropertySummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].DistanceKm < summaries[j].DistanceKm
	})
}
