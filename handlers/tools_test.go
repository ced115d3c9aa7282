package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayline/models"
	"stayline/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	docs    map[string]*models.UserContext
	upserts []map[string]any
}

func (s *stubRepo) FindByID(id string) (*models.UserContext, error) {
	return s.docs[id], nil
}

func (s *stubRepo) UpsertFields(id string, fields map[string]any) error {
	s.upserts = append(s.upserts, fields)
	return nil
}

func (s *stubRepo) AppendCallSummary(id string, summary models.CallSummary) error {
	return nil
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func setupSession(t *testing.T) *stubRepo {
	t.Helper()
	repo := &stubRepo{docs: make(map[string]*models.UserContext)}
	SessionCache = session.NewStore(repo)
	Lifecycle = &session.LifecycleService{Cache: SessionCache, Repo: repo}
	return repo
}

func TestUpdateUserProfileStagesFields(t *testing.T) {
	setupSession(t)
	SessionCache.Set("919876543210", map[string]any{})

	w, resp := postJSON(t, UpdateUserProfile,
		`{"user_id": "919876543210", "profession": "software engineer", "name": "Asha"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", resp["speech"])

	data, _ := SessionCache.Get("919876543210")
	assert.Equal(t, "working", data["botProfession"])
	assert.Equal(t, "Asha", data["name"])
}

func TestUpdateUserProfileNoFields(t *testing.T) {
	setupSession(t)

	w, resp := postJSON(t, UpdateUserProfile, `{"user_id": "919876543210"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No profile information was provided to update.", resp["speech"])
}

func TestScheduleSiteVisitConfirms(t *testing.T) {
	setupSession(t)
	SessionCache.Set("u1", map[string]any{"name": "Asha"})

	w, resp := postJSON(t, ScheduleSiteVisit,
		`{"user_id": "u1", "visit_date": "2026-09-15", "visit_time": "2:30 PM"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["speech"], "15 September at 2:30 PM")

	data, _ := SessionCache.Get("u1")
	assert.Equal(t, "2026-09-15", data["botSvDate"])
	assert.Equal(t, "14:30", data["botSvTime"])
}

func TestScheduleSiteVisitNeedsName(t *testing.T) {
	setupSession(t)
	SessionCache.Set("u1", map[string]any{"name": "Voice User"})

	_, resp := postJSON(t, ScheduleSiteVisit,
		`{"user_id": "u1", "visit_date": "2026-09-15", "visit_time": "10 AM"}`)
	assert.Contains(t, resp["speech"], "May I know your name")
}

func TestScheduleSiteVisitRejectsBadDate(t *testing.T) {
	setupSession(t)

	_, resp := postJSON(t, ScheduleSiteVisit,
		`{"user_id": "u1", "visit_date": "15/09/2026", "visit_time": "10 AM"}`)
	assert.Contains(t, resp["speech"], "Invalid date format")
}

func TestStartAndEndCall(t *testing.T) {
	repo := setupSession(t)
	repo.docs["u1"] = &models.UserContext{
		ID:          "u1",
		ContextData: map[string]any{"botProfession": "working"},
	}

	w, resp := postJSON(t, StartCall, `{"user_id": "u1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])

	SessionCache.Update("u1", map[string]any{"context_data.botBudget": "9000"})

	w, resp = postJSON(t, EndCall, `{"user_id": "u1", "call_id": "c1", "summary": "asked about OMR"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["synced"])
	assert.Equal(t, "c1", resp["callId"])

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "9000", repo.upserts[0]["context_data.botBudget"])
}

func TestEndCallWithoutSession(t *testing.T) {
	setupSession(t)

	w, _ := postJSON(t, EndCall, `{"user_id": "ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
