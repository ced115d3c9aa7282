package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNotFound means the geocoder could not resolve the query to a point.
var ErrNotFound = errors.New("location not found")

// Point is a geocoded coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves free text to a best-match point.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Point, error)
}

const geocodeCachePrefix = "geocode:"
const geocodeCacheTTL = time.Hour

// GoogleGeocoder resolves locations through the Google Maps Geocoding API,
// biased to a configured region. Results are cached in Redis since callers
// repeat the same area names across calls.
type GoogleGeocoder struct {
	httpClient *resty.Client
	apiKey     string
	region     string
	cache      *redis.Client // nil disables caching
	logger     *zap.Logger
}

func NewGoogleGeocoder(apiKey, region string, cache *redis.Client, logger *zap.Logger) *GoogleGeocoder {
	client := resty.New().
		SetBaseURL("https://maps.googleapis.com/maps/api").
		SetTimeout(10 * time.Second)

	return &GoogleGeocoder{
		httpClient: client,
		apiKey:     apiKey,
		region:     region,
		cache:      cache,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Point `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves the query to a point. Failures other than "no match" are
// wrapped; callers degrade both cases to a "location not understood" reply.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (Point, error) {
	cacheKey := geocodeCachePrefix + strings.ToLower(strings.TrimSpace(query))

	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey).Result(); err == nil {
			var point Point
			if err := json.Unmarshal([]byte(cached), &point); err == nil {
				return point, nil
			}
		}
	}

	var result geocodeResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": query,
			"key":     g.apiKey,
			"region":  g.region,
		}).
		SetResult(&result).
		Get("/geocode/json")
	if err != nil {
		return Point{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.IsError() {
		return Point{}, fmt.Errorf("geocoding failed with status %d", resp.StatusCode())
	}

	if result.Status != "OK" || len(result.Results) == 0 {
		g.logger.Warn("Geocoding returned no match",
			zap.String("query", query),
			zap.String("status", result.Status),
			zap.String("message", result.ErrorMessage))
		return Point{}, ErrNotFound
	}

	point := result.Results[0].Geometry.Location

	if g.cache != nil {
		if data, err := json.Marshal(point); err == nil {
			if err := g.cache.Set(ctx, cacheKey, data, geocodeCacheTTL).Err(); err != nil {
				g.logger.Warn("Failed to cache geocode result", zap.Error(err))
			}
		}
	}

	return point, nil
}
