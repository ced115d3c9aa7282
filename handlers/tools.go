package handlers

import (
	"errors"
	"fmt"

	"stayline/services/availability"
	"stayline/services/catalog"
	"stayline/services/discovery"
	"stayline/services/geo"
	"stayline/services/session"
	"stayline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Wired in main before the router starts.
var (
	SessionCache        *session.Store
	Lifecycle           *session.LifecycleService
	DiscoveryService    *discovery.Service
	AvailabilityService *availability.Service
	CatalogStore        *catalog.Store
)

// FindNearestProperty handles the location search tool.
func FindNearestProperty(c *gin.Context) {
	var input struct {
		UserID        string `json:"user_id"`
		LocationQuery string `json:"location_query"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" || input.LocationQuery == "" {
		respondSpeech(c, "Sorry, I couldn't search that area. Can you tell me the location again?")
		return
	}

	result, err := DiscoveryService.FindNearby(c.Request.Context(), input.UserID, input.LocationQuery)
	if err != nil {
		utils.GetLogger().Error("Location search failed",
			zap.String("query", input.LocationQuery), zap.Error(err))
		switch {
		case errors.Is(err, geo.ErrNotFound):
			respondSpeech(c, "I couldn't find that location. Can you tell me the area name or pincode again?")
		case errors.Is(err, discovery.ErrContextMissing):
			respondSpeech(c, "Sorry, something went wrong. Can you tell me which area you are looking at?")
		default:
			respondSpeech(c, "Sorry, I'm having trouble loading property data right now. Can you try again in a moment?")
		}
		return
	}
	if result.MissingPrereq != "" {
		respondSpeech(c, nearbyPrereqQuestion(result.MissingPrereq))
		return
	}

	respondSpeech(c, nearbySpeech(result))
}

// PropertiesByBudget handles the budget search tool.
func PropertiesByBudget(c *gin.Context) {
	var input struct {
		UserID      string `json:"user_id"`
		BudgetQuery string `json:"budget_query"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Sorry, I couldn't search based on your budget. Can you tell me the budget again?")
		return
	}

	result, err := DiscoveryService.FindWithinBudget(c.Request.Context(), input.UserID, input.BudgetQuery)
	if err != nil {
		utils.GetLogger().Error("Budget search failed",
			zap.String("query", input.BudgetQuery), zap.Error(err))
		switch {
		case errors.Is(err, discovery.ErrNoBudgetAmount):
			respondSpeech(c, "Can you please tell me your budget in numbers? For example, 8000 or 10000.")
		case errors.Is(err, discovery.ErrContextMissing):
			respondSpeech(c, "Sorry, something went wrong. Can you tell me your budget again?")
		default:
			respondSpeech(c, "Sorry, I'm unable to fetch property data right now. Please try again shortly.")
		}
		return
	}
	if result.MissingPrereq != "" {
		respondSpeech(c, budgetPrereqQuestion(result.MissingPrereq))
		return
	}

	respondSpeech(c, budgetSpeech(result))
}

// UpdateUserProfile stages profile fields mentioned in conversation. The
// reply stays minimal so the conversation layer moves on naturally.
func UpdateUserProfile(c *gin.Context) {
	var input struct {
		UserID             string `json:"user_id"`
		Profession         string `json:"profession"`
		Timeline           string `json:"timeline"`
		RoomType           string `json:"room_type"`
		PropertyPreference string `json:"property_preference"`
		Budget             string `json:"budget"`
		Name               string `json:"name"`
		PhoneNumber        string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Error updating profile")
		return
	}

	updates := session.BuildProfileUpdates(session.ProfileUpdate{
		Profession:         input.Profession,
		Timeline:           input.Timeline,
		RoomType:           input.RoomType,
		PropertyPreference: input.PropertyPreference,
		Budget:             input.Budget,
		Name:               input.Name,
		PhoneNumber:        input.PhoneNumber,
	})
	if len(updates) == 0 {
		utils.GetLogger().Warn("Profile update with no fields", zap.String("userId", input.UserID))
		respondSpeech(c, "No profile information was provided to update.")
		return
	}

	SessionCache.Update(input.UserID, updates)
	respondSpeech(c, "OK")
}

// ScheduleSiteVisit stages a validated visit slot on the session cache.
func ScheduleSiteVisit(c *gin.Context) {
	var input struct {
		UserID    string `json:"user_id"`
		VisitDate string `json:"visit_date"`
		VisitTime string `json:"visit_time"`
		Name      string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Sorry, couldn't book that. Let me try again - what date and time works for you?")
		return
	}

	visit, err := session.ParseVisit(input.VisitDate, input.VisitTime)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidDate):
			respondSpeech(c, "Invalid date format received. Please use date format like 2026-01-15.")
		default:
			respondSpeech(c, "Invalid time format received. Please provide time like 10 AM or 2:30 PM.")
		}
		return
	}

	cached, _ := SessionCache.Get(input.UserID)
	updates, err := session.BuildVisitUpdates(visit, input.Name, cached)
	if err != nil {
		respondSpeech(c, "I need your name to schedule the visit. May I know your name please?")
		return
	}

	SessionCache.Update(input.UserID, updates)
	respondSpeech(c, fmt.Sprintf("Perfect! Your visit is confirmed for %s at %s. Our team will be there to show you around. Looking forward to seeing you!",
		visit.DisplayDate, visit.DisplayTime))
}

// QueryPropertyInformation handles the property detail tool.
func QueryPropertyInformation(c *gin.Context) {
	var input struct {
		UserID       string `json:"user_id"`
		Query        string `json:"query"`
		PropertyName string `json:"property_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" || input.PropertyName == "" {
		respondSpeech(c, "Sorry, I couldn't get that property information right now.")
		return
	}

	info, err := DiscoveryService.LookupProperty(c.Request.Context(), input.UserID, input.PropertyName)
	if err != nil {
		if errors.Is(err, discovery.ErrPropertyNotFound) {
			respondSpeech(c, fmt.Sprintf("Sorry, I couldn't find %s. Can you please confirm the property name?", input.PropertyName))
			return
		}
		utils.GetLogger().Error("Property lookup failed",
			zap.String("property", input.PropertyName), zap.Error(err))
		respondSpeech(c, "Sorry, I couldn't get that property information right now.")
		return
	}

	respondSpeech(c, propertyInfoSpeech(info, input.Query))
}

// GetRoomTypes handles the room-configuration tool.
func GetRoomTypes(c *gin.Context) {
	var input struct {
		UserID       string `json:"user_id"`
		PropertyName string `json:"property_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Sorry, I couldn't fetch room details right now. Would you like me to try again?")
		return
	}
	if input.PropertyName == "" {
		respondSpeech(c, "Please tell me which property you'd like to check room types for.")
		return
	}

	rooms, err := DiscoveryService.RoomTypesFor(c.Request.Context(), input.PropertyName)
	if err != nil {
		utils.GetLogger().Error("Room types fetch failed",
			zap.String("property", input.PropertyName), zap.Error(err))
		respondSpeech(c, fmt.Sprintf("I couldn't find room details for %s right now. Would you like to schedule a visit instead?", input.PropertyName))
		return
	}

	respondSpeech(c, roomTypesSpeech(input.PropertyName, rooms))
}

// GetRoomAvailability handles the per-property live availability tool.
func GetRoomAvailability(c *gin.Context) {
	var input struct {
		UserID       string `json:"user_id"`
		PropertyName string `json:"property_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Sorry, I couldn't check availability right now. Would you like me to try again or schedule a visit?")
		return
	}
	if input.PropertyName == "" {
		respondSpeech(c, "Please tell me which property you'd like to check availability for.")
		return
	}

	name, rooms, err := AvailabilityService.ForProperty(c.Request.Context(), input.PropertyName)
	if err != nil {
		utils.GetLogger().Error("Availability check failed",
			zap.String("property", input.PropertyName), zap.Error(err))
		respondSpeech(c, fmt.Sprintf("I couldn't check availability for %s right now. Would you like to schedule a visit instead?", input.PropertyName))
		return
	}

	respondSpeech(c, availabilitySpeech(name, rooms))
}

// GetAllRoomAvailability handles the cross-property availability tool.
func GetAllRoomAvailability(c *gin.Context) {
	var input struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Sorry, I couldn't fetch property availability right now. Please try again shortly.")
		return
	}

	properties, err := AvailabilityService.All(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("All-property availability failed", zap.Error(err))
		respondSpeech(c, "Sorry, I couldn't fetch availability right now.")
		return
	}

	respondSpeech(c, allAvailabilitySpeech(properties))
}

// ExploreMoreProperties handles the explore-more tool.
func ExploreMoreProperties(c *gin.Context) {
	var input struct {
		UserID            string   `json:"user_id"`
		ExcludeProperties []string `json:"exclude_properties"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		respondSpeech(c, "Sorry, I couldn't load more options right now. Which area were you looking at?")
		return
	}

	result, err := DiscoveryService.ExploreMore(c.Request.Context(), input.UserID, input.ExcludeProperties)
	if err != nil {
		utils.GetLogger().Error("Explore-more failed",
			zap.String("userId", input.UserID), zap.Error(err))
		respondSpeech(c, "Sorry, I couldn't load more options right now. Which area were you looking at?")
		return
	}

	respondSpeech(c, exploreSpeech(result))
}
