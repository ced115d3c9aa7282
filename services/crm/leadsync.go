package crm

import (
	"fmt"
	"strings"
	"time"

	"stayline/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// fieldMappings maps context data fields to LeadSquared lead attributes.
var fieldMappings = map[string]string{
	models.FieldProfession:         "mx_Bot_Profession",
	models.FieldLocationPreference: "mx_Bot_Location_Preference",
	models.FieldMoveInPreference:   "mx_Bot_Move_In_Preference",
	models.FieldRoomSharing:        "mx_Bot_Room_Sharing_Preference",
	models.FieldBudget:             "mx_Bot_Budget",
	models.FieldPropertyPreference: "mx_Wing",
	models.FieldVisitDate:          "mx_LOI_Signed_Date",
	models.FieldVisitTime:          "mx_Unit_Number",
	models.FieldName:               "FirstName",
}

// LeadAttribute is one attribute-value pair of a lead upsert.
type LeadAttribute struct {
	Attribute string `json:"Attribute"`
	Value     string `json:"Value"`
}

type leadResponse struct {
	Status           string `json:"Status"`
	ExceptionMessage string `json:"ExceptionMessage"`
}

// Client talks to the LeadSquared lead-management API.
type Client struct {
	httpClient *resty.Client
	accessKey  string
	secretKey  string
	logger     *zap.Logger
}

// NewClient creates a CRM client. Retries are left to the task queue; each
// sync attempt is a single request.
func NewClient(baseURL, accessKey, secretKey string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		accessKey:  accessKey,
		secretKey:  secretKey,
		logger:     logger,
	}
}

// Configured reports whether CRM credentials are present.
func (c *Client) Configured() bool {
	return c.accessKey != "" && c.secretKey != ""
}

// buildAttributes assembles the lead upsert payload. The Mobile/SearchBy pair
// always leads; mapped context fields follow. When updatedFields is non-empty
// only those fields are considered; otherwise every mapped field present in
// the context goes out.
func buildAttributes(userID string, contextData map[string]any, updatedFields []string) []LeadAttribute {
	// User ids carry a 91 country prefix; the CRM keys leads on the bare
	// 10-digit mobile number.
	phone := strings.TrimPrefix(userID, "91")

	attributes := []LeadAttribute{
		{Attribute: "Mobile", Value: phone},
		{Attribute: "SearchBy", Value: "Mobile"},
	}

	fields := updatedFields
	if len(fields) == 0 {
		for field := range fieldMappings {
			fields = append(fields, field)
		}
	}

	for _, field := range fields {
		crmField, mapped := fieldMappings[field]
		if !mapped {
			continue
		}
		value, ok := contextData[field]
		if !ok || value == nil {
			continue
		}
		str := fmt.Sprintf("%v", value)
		if str == "" {
			continue
		}
		attributes = append(attributes, LeadAttribute{Attribute: crmField, Value: str})
	}
	return attributes
}

// SyncLead upserts the caller as a lead, syncing the mapped context fields.
func (c *Client) SyncLead(userID string, contextData map[string]any, updatedFields []string) error {
	if !c.Configured() {
		c.logger.Warn("CRM credentials not configured, skipping lead sync")
		return nil
	}

	phone := strings.TrimPrefix(userID, "91")
	attributes := buildAttributes(userID, contextData, updatedFields)

	if len(attributes) <= 2 {
		c.logger.Warn("No fields to sync", zap.String("phone", phone))
		return nil
	}

	var result leadResponse
	resp, err := c.httpClient.R().
		SetQueryParams(map[string]string{
			"accessKey": c.accessKey,
			"secretKey": c.secretKey,
		}).
		SetBody(attributes).
		SetResult(&result).
		Post("/Lead.CreateOrUpdate")
	if err != nil {
		return fmt.Errorf("lead sync request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("lead sync failed with status %d", resp.StatusCode())
	}
	if result.Status != "Success" {
		if result.ExceptionMessage != "" {
			return fmt.Errorf("lead sync rejected: %s", result.ExceptionMessage)
		}
		return fmt.Errorf("lead sync rejected with status %q", result.Status)
	}

	c.logger.Info("Lead synced",
		zap.String("phone", phone), zap.Int("attributes", len(attributes)-2))
	return nil
}
