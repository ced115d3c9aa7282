package catalog

import (
	"context"
	"strings"

	"stayline/models"
	"stayline/utils"

	"go.uber.org/zap"
)

// MatchConfidence says how a spoken property name matched the catalog.
type MatchConfidence string

const (
	MatchExact   MatchConfidence = "exact"
	MatchPartial MatchConfidence = "partial"
)

// ResolveCatalogProperty matches a spoken name against the PMS catalog.
// An exact case-insensitive pass runs first; failing that, a substring pass
// accepts either direction ("Orange Luxury" spoken as "Orange", or "OVH"
// spoken as "OVH Koramangala"). Returns nil when nothing matches.
//
// Partial matches take the first hit in catalog order. With near-identical
// names ("Orange Classic" vs "Orange Classic Annex") that can pick the
// wrong sibling, so partial resolutions are logged for review.
func (s *Store) ResolveCatalogProperty(ctx context.Context, spoken string) (*models.CatalogProperty, MatchConfidence, error) {
	properties, err := s.LoadAPICatalogOnce(ctx)
	if err != nil {
		return nil, "", err
	}

	needle := strings.ToLower(strings.TrimSpace(spoken))
	if needle == "" {
		return nil, "", nil
	}

	for i := range properties {
		if strings.ToLower(strings.TrimSpace(properties[i].Name)) == needle {
			return &properties[i], MatchExact, nil
		}
	}

	for i := range properties {
		candidate := strings.ToLower(strings.TrimSpace(properties[i].Name))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			utils.GetLogger().Warn("Resolved property name by partial match",
				zap.String("spoken", spoken),
				zap.String("matched", properties[i].Name))
			return &properties[i], MatchPartial, nil
		}
	}

	return nil, "", nil
}

// ResolvePricingName matches a spoken name against the pricing catalog and
// returns the canonical sheet name, using the same exact-then-substring
// strategy as ResolveCatalogProperty.
func (s *Store) ResolvePricingName(ctx context.Context, spoken string) (string, MatchConfidence, error) {
	rows, err := s.LoadPricingCatalogOnce(ctx)
	if err != nil {
		return "", "", err
	}

	needle := strings.ToLower(strings.TrimSpace(spoken))
	if needle == "" {
		return "", "", nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if !seen[row.PropertyName] {
			seen[row.PropertyName] = true
			names = append(names, row.PropertyName)
		}
	}

	for _, name := range names {
		if strings.ToLower(strings.TrimSpace(name)) == needle {
			return name, MatchExact, nil
		}
	}

	for _, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			utils.GetLogger().Warn("Resolved pricing name by partial match",
				zap.String("spoken", spoken),
				zap.String("matched", name))
			return name, MatchPartial, nil
		}
	}

	return "", "", nil
}

// CollapseUnique folds pricing rows into one summary per property name,
// preserving first-seen row order. Prices collapse to min/max across the
// property's room configs; all other fields come from the first row.
// distanceOf supplies the per-row distance and may be nil.
func CollapseUnique(rows []models.PricingRow, distanceOf func(models.PricingRow) float64) []models.PropertySummary {
	var order []string
	grouped := make(map[string][]models.PricingRow)

	for _, row := range rows {
		if _, ok := grouped[row.PropertyName]; !ok {
			order = append(order, row.PropertyName)
		}
		grouped[row.PropertyName] = append(grouped[row.PropertyName], row)
	}

	summaries := make([]models.PropertySummary, 0, len(order))
	for _, name := range order {
		group := grouped[name]
		first := group[0]

		minPrice, maxPrice := group[0].Price, group[0].Price
		for _, row := range group[1:] {
			if row.Price < minPrice {
				minPrice = row.Price
			}
			if row.Price > maxPrice {
				maxPrice = row.Price
			}
		}

		var distance float64
		if distanceOf != nil {
			distance = distanceOf(first)
		}

		summaries = append(summaries, models.PropertySummary{
			PropertyName:      name,
			Location:          first.Location,
			Cluster:           first.Cluster,
			DistanceKm:        distance,
			MinPrice:          int(minPrice),
			MaxPrice:          int(maxPrice),
			DriveFolderID:     DriveFolderID(first.ImageLink),
			TemplateImageLink: first.TemplateImageLink,
		})
	}
	return summaries
}

const driveFolderMarker = "drive.google.com/drive/folders/"

// DriveFolderID extracts the folder id from a Drive share link, or returns
// empty when the link is not a Drive folder.
func DriveFolderID(imageLink string) string {
	idx := strings.Index(imageLink, driveFolderMarker)
	if idx < 0 {
		return ""
	}
	return imageLink[idx+len(driveFolderMarker):]
}
