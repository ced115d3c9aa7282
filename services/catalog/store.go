package catalog

import (
	"context"
	"sync"

	"stayline/models"
	"stayline/services/pms"
	"stayline/utils"

	"go.uber.org/zap"
)

// SheetSource fetches the spreadsheet-derived pricing catalog.
type SheetSource interface {
	FetchPricingRows(ctx context.Context) ([]models.PricingRow, error)
}

// Store owns the two property catalogs for the process lifetime: the pricing
// catalog (spreadsheet rows) and the PMS catalog (amenities/availability).
// Each is fetched at most once; a failed fetch leaves the slot unset so a
// later call retries. The mutexes are held only around the check-and-fetch;
// once loaded, reads are lock-free on the immutable slice.
type Store struct {
	pricingMu sync.Mutex
	pricing   []models.PricingRow

	pmsMu    sync.Mutex
	pmsProps []models.CatalogProperty

	Sheets SheetSource
	PMS    pms.API
}

// NewStore creates a catalog store over the given external sources.
func NewStore(sheets SheetSource, pmsAPI pms.API) *Store {
	return &Store{Sheets: sheets, PMS: pmsAPI}
}

// LoadPricingCatalogOnce returns the pricing catalog, fetching it on the
// first successful call. Concurrent first calls do not issue duplicate
// fetches.
func (s *Store) LoadPricingCatalogOnce(ctx context.Context) ([]models.PricingRow, error) {
	s.pricingMu.Lock()
	defer s.pricingMu.Unlock()

	if s.pricing != nil {
		return s.pricing, nil
	}

	logger := utils.GetLogger()
	logger.Info("Loading pricing catalog from sheet (one-time load)")

	rows, err := s.Sheets.FetchPricingRows(ctx)
	if err != nil {
		logger.Error("Failed to load pricing catalog", zap.Error(err))
		return nil, err
	}

	s.pricing = rows
	logger.Info("Loaded pricing catalog", zap.Int("rows", len(rows)))
	return rows, nil
}

// LoadAPICatalogOnce returns the PMS catalog, fetching it on the first
// successful call.
func (s *Store) LoadAPICatalogOnce(ctx context.Context) ([]models.CatalogProperty, error) {
	s.pmsMu.Lock()
	defer s.pmsMu.Unlock()

	if s.pmsProps != nil {
		return s.pmsProps, nil
	}

	logger := utils.GetLogger()
	logger.Info("Fetching PMS property catalog (one-time load)")

	properties, err := s.PMS.Properties(ctx)
	if err != nil {
		logger.Error("Failed to load PMS catalog", zap.Error(err))
		return nil, err
	}

	s.pmsProps = properties
	logger.Info("Loaded PMS catalog", zap.Int("properties", len(properties)))
	return properties, nil
}

// PricingRows returns the cached pricing catalog, or false when not loaded.
func (s *Store) PricingRows() ([]models.PricingRow, bool) {
	s.pricingMu.Lock()
	defer s.pricingMu.Unlock()
	if s.pricing == nil {
		return nil, false
	}
	return s.pricing, true
}

// CatalogProperties returns the cached PMS catalog, or false when not loaded.
func (s *Store) CatalogProperties() ([]models.CatalogProperty, bool) {
	s.pmsMu.Lock()
	defer s.pmsMu.Unlock()
	if s.pmsProps == nil {
		return nil, false
	}
	return s.pmsProps, true
}

// Reset drops both caches so the next load refetches. Used by the admin
// reload endpoint after sheet edits.
func (s *Store) Reset() {
	s.pricingMu.Lock()
	s.pricing = nil
	s.pricingMu.Unlock()

	s.pmsMu.Lock()
	s.pmsProps = nil
	s.pmsMu.Unlock()

	utils.GetLogger().Info("Catalog caches reset")
}
