package discovery

import (
	"errors"

	contextRepo "stayline/database/repository/context"
	"stayline/models"
	"stayline/services/catalog"
	"stayline/services/geo"
	"stayline/services/pms"
	"stayline/services/session"
	"stayline/utils"

	"go.uber.org/zap"
)

var (
	// ErrContextMissing means neither the session cache nor the store has a
	// context document for the caller.
	ErrContextMissing = errors.New("user context not found")

	// ErrPropertyNotFound means the spoken name matched nothing in the
	// catalogs.
	ErrPropertyNotFound = errors.New("property not found")
)

// Prereq identifies a qualification question that must be answered before
// property search runs. Checks run in a fixed order and only the first
// missing one is reported, so the caller asks one question at a time.
type Prereq string

const (
	PrereqProfession Prereq = "profession"
	PrereqTimeline   Prereq = "timeline"
	PrereqRoomType   Prereq = "room_type"
)

// Service is the property discovery engine: location search, budget search,
// property details, room types and explore-more, all reading qualification
// state from the session cache.
type Service struct {
	Cache       *session.Store
	Repo        contextRepo.ContextRepository
	Catalog     *catalog.Store
	Geocoder    geo.Geocoder
	PMS         pms.API
	QuerySuffix string // appended to location queries before geocoding
}

// loadContext reads the caller's context data, cache first and store second.
func (s *Service) loadContext(userID string) (map[string]any, error) {
	if data, ok := s.Cache.Get(userID); ok {
		return data, nil
	}

	doc, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		utils.GetLogger().Warn("No context document for user", zap.String("userID", userID))
		return nil, ErrContextMissing
	}
	if doc.ContextData == nil {
		return map[string]any{}, nil
	}
	return doc.ContextData, nil
}

// CheckPrereqs returns the first unanswered qualification question, checked
// in the order profession, timeline, room type. Empty means all answered.
func CheckPrereqs(contextData map[string]any) Prereq {
	if isEmptyField(contextData[models.FieldProfession]) {
		return PrereqProfession
	}
	if isEmptyField(contextData[models.FieldMoveInPreference]) {
		return PrereqTimeline
	}
	if isEmptyField(contextData[models.FieldRoomSharing]) {
		return PrereqRoomType
	}
	return ""
}

func isEmptyField(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func stringField(contextData map[string]any, key string) string {
	if s, ok := contextData[key].(string); ok {
		return s
	}
	return ""
}
