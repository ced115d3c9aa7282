package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"stayline/models"
	"stayline/services/discovery"

	"github.com/gin-gonic/gin"
)

// respondSpeech sends a tool reply. Tool endpoints always answer 200 with a
// single speech string; failures become apologies, not error payloads, so the
// conversation layer can speak them as-is.
func respondSpeech(c *gin.Context, speech string) {
	c.JSON(http.StatusOK, gin.H{"speech": speech})
}

// joinNames renders "A", "A and B" or "A, B and C" for voice.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// formatAmount groups thousands ("8000" reads better as "8,000").
func formatAmount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

// nearbyPrereqQuestion phrases the first missing qualification question for
// a location search.
func nearbyPrereqQuestion(p discovery.Prereq) string {
	switch p {
	case discovery.PrereqProfession:
		return "Sure, I'll check properties there. But first, are you working or a student?"
	case discovery.PrereqTimeline:
		return "Okay, and when are you planning to move in? This month or later?"
	default:
		return "Very good. And do you prefer a private room or shared room?"
	}
}

// budgetPrereqQuestion phrases the first missing qualification question for
// a budget search.
func budgetPrereqQuestion(p discovery.Prereq) string {
	switch p {
	case discovery.PrereqProfession:
		return "Sure, I'll check options in your budget. First, are you working or a student?"
	case discovery.PrereqTimeline:
		return "When are you planning to move in? This month or later?"
	default:
		return "Do you prefer a private room or shared room?"
	}
}

func nearbySpeech(result *discovery.NearbyResult) string {
	names := make([]string, 0, 5)
	for _, prop := range result.Properties {
		if len(names) == 5 {
			break
		}
		names = append(names, prop.PropertyName)
	}

	switch {
	case len(names) == 1:
		return fmt.Sprintf("I found %s near %s. Would you like to know more about it?",
			names[0], result.LocationQuery)
	case len(names) <= 3:
		return fmt.Sprintf("Actually, I found %s near %s. Which one interests you?",
			joinNames(names), result.LocationQuery)
	default:
		return fmt.Sprintf("Very good! I have %d options near %s. Some good ones are %s, %s, and %s. Which one would you like to know about?",
			len(result.Properties), result.LocationQuery, names[0], names[1], names[2])
	}
}

func budgetSpeech(result *discovery.BudgetResult) string {
	budget := formatAmount(result.Budget)

	if len(result.Properties) == 0 {
		return fmt.Sprintf("I couldn't find any properties under %s. Would you like to slightly increase your budget?", budget)
	}

	names := make([]string, 0, len(result.Properties))
	for _, prop := range result.Properties {
		names = append(names, prop.PropertyName)
	}

	switch {
	case len(names) == 1:
		return fmt.Sprintf("Good news! I found %s within your budget of %s. Would you like more details about it?",
			names[0], budget)
	case len(names) <= 3:
		return fmt.Sprintf("I found %s within your budget of %s. Which one would you like to explore?",
			joinNames(names), budget)
	default:
		return fmt.Sprintf("Very good! I found %d properties within %s. Some good options are %s, %s, and %s. Which one interests you?",
			result.TotalMatches, budget, names[0], names[1], names[2])
	}
}

// propertyInfoSpeech phrases the detail card for whatever the caller asked
// about: address, price, amenities, type, description, or a general summary.
func propertyInfoSpeech(info *discovery.PropertyInfo, query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "address") || strings.Contains(q, "location"):
		speech := fmt.Sprintf("%s is located at %s.", info.Name, info.Address)
		if info.MapURL != "" {
			speech += " You can view the location here: " + info.MapURL
		}
		return speech

	case strings.Contains(q, "price") || strings.Contains(q, "rent") || strings.Contains(q, "cost"):
		if info.StartingPrice > 0 {
			return fmt.Sprintf("%s has rooms starting from %s. Would you like to know about single, double, or triple sharing options?",
				info.Name, formatAmount(info.StartingPrice))
		}
		return fmt.Sprintf("I'll check the latest pricing for %s. Would you like single, double, or triple sharing?", info.Name)

	case strings.Contains(q, "amenities") || strings.Contains(q, "amenity") || strings.Contains(q, "facilities"):
		if len(info.Amenities) > 0 {
			shown := info.Amenities
			if len(shown) > 5 {
				shown = shown[:5]
			}
			speech := fmt.Sprintf("%s is a %s %s property located in %s. Key amenities include: %s",
				info.Name, info.GenderType, info.PropertyType, info.AreaName, strings.Join(shown, ", "))
			if len(info.Amenities) > 5 {
				speech += fmt.Sprintf(" and %d more.", len(info.Amenities)-5)
			}
			return speech
		}
		return fmt.Sprintf("%s is a %s %s property located in %s with modern amenities and fully managed services.",
			info.Name, info.GenderType, info.PropertyType, info.AreaName)

	case strings.Contains(q, "type") || strings.Contains(q, "kind"):
		return fmt.Sprintf("%s is a %s property suitable for %s. It's a %s accommodation.",
			info.Name, info.PropertyType, info.ResidentType, info.GenderType)

	case strings.Contains(q, "description") || strings.Contains(q, "about") || strings.Contains(q, "details"):
		if info.Description != "" {
			desc := info.Description
			if len(desc) > 300 {
				desc = desc[:300] + "..."
			}
			return fmt.Sprintf("%s: %s", info.Name, desc)
		}
		return fmt.Sprintf("%s is a %s %s property located at %s. It caters to %s.",
			info.Name, info.GenderType, info.PropertyType, info.Address, info.ResidentType)

	default:
		speech := fmt.Sprintf("%s is located at %s. It is a %s %s property suitable for %s.",
			info.Name, info.Address, info.GenderType, info.PropertyType, info.ResidentType)
		if info.StartingPrice > 0 {
			speech += fmt.Sprintf(" Starting from %s.", formatAmount(info.StartingPrice))
		}
		return speech
	}
}

func roomTypesSpeech(propertyName string, rooms []discovery.RoomSummary) string {
	if len(rooms) == 0 {
		return fmt.Sprintf("I couldn't find room configurations for %s right now.", propertyName)
	}

	formatted := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if len(formatted) == 3 {
			break
		}
		if len(room.Amenities) > 0 {
			amenities := room.Amenities
			if len(amenities) > 6 {
				amenities = amenities[:6]
			}
			formatted = append(formatted, fmt.Sprintf("%s includes %s", room.Name, strings.Join(amenities, ", ")))
		} else {
			formatted = append(formatted, room.Name)
		}
	}

	return fmt.Sprintf("At %s, available room types are: %s. Would you like pricing details or to schedule a visit?",
		propertyName, strings.Join(formatted, ". "))
}

func exploreSpeech(result *discovery.ExploreResult) string {
	areaName := result.AreaName
	if areaName == "" {
		areaName = "this area"
	}

	switch {
	case result.NeedLocation:
		return "I need to know your preferred area first. Which location in Chennai are you looking at?"
	case result.NoneInCluster:
		return "I couldn't find properties in that area. Would you like to try a different location?"
	case result.AllExcluded:
		return fmt.Sprintf("You've seen all the properties in %s. Would you like to explore other areas?", areaName)
	case result.NoneAvailable:
		if result.RoomPreference != "" {
			return fmt.Sprintf("Those are all the %s rooms currently available in %s. Want me to check other areas?",
				result.RoomPreference, areaName)
		}
		return fmt.Sprintf("Those are all the available options in %s. Would you like to explore other locations?", areaName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are more available properties in %s:\n", areaName)
	for i, prop := range result.Properties {
		fmt.Fprintf(&b, "\n%d. %s", i+1, prop.Name)
		for _, room := range prop.Availability {
			fmt.Fprintf(&b, "\n   - %s: %d beds available", room.RoomType, room.Beds)
		}
	}
	b.WriteString("\n\nWhich property interests you?")
	return b.String()
}

// genderSplit renders "2 female, 1 male" or empty when the counts are not
// gender partitioned.
func genderSplit(room models.RoomTypeSummary) string {
	var parts []string
	if room.FemaleAvailable > 0 {
		parts = append(parts, fmt.Sprintf("%d female", room.FemaleAvailable))
	}
	if room.MaleAvailable > 0 {
		parts = append(parts, fmt.Sprintf("%d male", room.MaleAvailable))
	}
	return strings.Join(parts, ", ")
}

func availabilitySpeech(propertyName string, rooms []models.RoomTypeSummary) string {
	if len(rooms) == 0 {
		return fmt.Sprintf("Currently, %s is fully booked. Would you like me to check similar properties nearby?", propertyName)
	}

	formatted := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if len(formatted) == 3 {
			break
		}
		if split := genderSplit(room); split != "" {
			formatted = append(formatted, fmt.Sprintf("%s with %d beds available (%s)",
				room.RoomType, room.TotalAvailable, split))
		} else {
			formatted = append(formatted, fmt.Sprintf("%s with %d beds available",
				room.RoomType, room.TotalAvailable))
		}
	}

	return fmt.Sprintf("Good news! %s has %s. Would you like to schedule a visit?",
		propertyName, strings.Join(formatted, ", "))
}

func allAvailabilitySpeech(properties []models.PropertyBeds) string {
	if len(properties) == 0 {
		return "Currently, all properties are fully booked. Would you like me to notify you when beds become available?"
	}

	var parts []string
	for _, prop := range properties {
		if len(parts) == 3 {
			break
		}
		var rooms []string
		for _, room := range prop.Rooms {
			if len(rooms) == 2 {
				break
			}
			if split := genderSplit(room); split != "" {
				rooms = append(rooms, fmt.Sprintf("%s (%d beds: %s)", room.RoomType, room.TotalAvailable, split))
			} else {
				rooms = append(rooms, fmt.Sprintf("%s (%d beds)", room.RoomType, room.TotalAvailable))
			}
		}
		parts = append(parts, fmt.Sprintf("%s in %s has %s", prop.Name, prop.City, strings.Join(rooms, ", ")))
	}

	return fmt.Sprintf("I found multiple properties with availability. %s. Would you like me to suggest the best one for you?",
		strings.Join(parts, ". "))
}
