package pms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"stayline/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// API is the property-management-system surface the resolvers consume.
// A property id of 0 in BedAvailability means "all properties".
type API interface {
	Properties(ctx context.Context) ([]models.CatalogProperty, error)
	RoomTypes(ctx context.Context, propertyID int) ([]models.RoomType, error)
	BedAvailability(ctx context.Context, propertyID int) ([]models.PropertyAvailability, error)
}

// envelope is the common PMS response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Client implements API against the hosted PMS REST endpoints.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a PMS client. One attempt per user turn: the
// conversation layer re-invokes on the next turn, so no client-side retries.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("x-api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	var env envelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&env).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("PMS request %s failed: %w", endpoint, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("PMS request %s failed with status %d", endpoint, resp.StatusCode())
	}
	return env.Data, nil
}

// Properties lists the full PMS property catalog.
func (c *Client) Properties(ctx context.Context) ([]models.CatalogProperty, error) {
	data, err := c.get(ctx, "/properties", nil)
	if err != nil {
		return nil, err
	}

	var properties []models.CatalogProperty
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode PMS properties: %w", err)
	}

	c.logger.Info("Fetched PMS properties", zap.Int("count", len(properties)))
	return properties, nil
}

// RoomTypes lists the room configurations of one property.
func (c *Client) RoomTypes(ctx context.Context, propertyID int) ([]models.RoomType, error) {
	params := map[string]string{"propertyId": strconv.Itoa(propertyID)}
	data, err := c.get(ctx, "/room-types", params)
	if err != nil {
		return nil, err
	}

	var roomTypes []models.RoomType
	if err := json.Unmarshal(data, &roomTypes); err != nil {
		return nil, fmt.Errorf("failed to decode PMS room types: %w", err)
	}
	return roomTypes, nil
}

// BedAvailability fetches live availability for one property, or for every
// property when propertyID is 0.
func (c *Client) BedAvailability(ctx context.Context, propertyID int) ([]models.PropertyAvailability, error) {
	var params map[string]string
	if propertyID != 0 {
		params = map[string]string{"propertyId": strconv.Itoa(propertyID)}
	}

	data, err := c.get(ctx, "/bed-availability", params)
	if err != nil {
		return nil, err
	}
	return decodeAvailability(data)
}

// decodeAvailability normalizes the availability payload at the collaborator
// boundary. Upstream answers with no data, one property object, or a list of
// properties depending on the query; everything downstream sees one shape.
func decodeAvailability(raw json.RawMessage) ([]models.PropertyAvailability, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var list []models.PropertyAvailability
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to decode availability list: %w", err)
		}
		return list, nil
	case '{':
		var single models.PropertyAvailability
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to decode availability object: %w", err)
		}
		return []models.PropertyAvailability{single}, nil
	default:
		return nil, fmt.Errorf("unexpected availability payload shape")
	}
}
