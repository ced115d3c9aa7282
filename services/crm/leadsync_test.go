package crm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func attributeMap(attrs []LeadAttribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		m[attr.Attribute] = attr.Value
	}
	return m
}

func TestBuildAttributesMapsUpdatedFields(t *testing.T) {
	contextData := map[string]any{
		"botProfession":            "working",
		"botLocationPreference":    "Thoraipakkam",
		"botRoomSharingPreference": "private",
		"name":                     "Asha",
		"unmappedField":            "ignored",
	}

	attrs := buildAttributes("919876543210", contextData,
		[]string{"botProfession", "name", "unmappedField"})

	m := attributeMap(attrs)
	assert.Equal(t, "9876543210", m["Mobile"])
	assert.Equal(t, "Mobile", m["SearchBy"])
	assert.Equal(t, "working", m["mx_Bot_Profession"])
	assert.Equal(t, "Asha", m["FirstName"])
	// Only updated fields go out, and unmapped fields never do.
	assert.NotContains(t, m, "mx_Bot_Location_Preference")
	assert.Len(t, attrs, 4)
}

func TestBuildAttributesAllMappedFieldsWhenNoneListed(t *testing.T) {
	contextData := map[string]any{
		"botProfession": "studying",
		"botBudget":     "8000",
		"botSvDate":     "2026-09-15",
	}

	m := attributeMap(buildAttributes("919876543210", contextData, nil))
	assert.Equal(t, "studying", m["mx_Bot_Profession"])
	assert.Equal(t, "8000", m["mx_Bot_Budget"])
	assert.Equal(t, "2026-09-15", m["mx_LOI_Signed_Date"])
}

func TestBuildAttributesSkipsEmptyValues(t *testing.T) {
	contextData := map[string]any{
		"botProfession": "",
		"name":          nil,
	}

	attrs := buildAttributes("919876543210", contextData, nil)
	assert.Len(t, attrs, 2) // only Mobile and SearchBy
}

func TestSyncLeadNothingToSyncIsSuccess(t *testing.T) {
	client := NewClient("http://unreachable.invalid", "ak", "sk", zap.NewNop())

	err := client.SyncLead("919876543210", map[string]any{}, nil)
	assert.NoError(t, err)
}

func TestSyncLeadUnconfiguredIsNoop(t *testing.T) {
	client := NewClient("http://unreachable.invalid", "", "", zap.NewNop())

	err := client.SyncLead("919876543210", map[string]any{"name": "Asha"}, nil)
	assert.NoError(t, err)
	assert.False(t, client.Configured())
}

func TestSyncLeadPostsMappedAttributes(t *testing.T) {
	var received []LeadAttribute
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Lead.CreateOrUpdate", r.URL.Path)
		gotQuery = r.URL.Query()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Status": "Success"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ak", "sk", zap.NewNop())
	err := client.SyncLead("919876543210",
		map[string]any{"name": "Asha", "botBudget": "8000"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"ak"}, gotQuery["accessKey"])
	assert.Equal(t, []string{"sk"}, gotQuery["secretKey"])

	m := attributeMap(received)
	assert.Equal(t, "9876543210", m["Mobile"])
	assert.Equal(t, "Asha", m["FirstName"])
	assert.Equal(t, "8000", m["mx_Bot_Budget"])
}

func TestSyncLeadRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Status": "Error", "ExceptionMessage": "invalid key"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ak", "sk", zap.NewNop())
	err := client.SyncLead("919876543210", map[string]any{"name": "Asha"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
}
