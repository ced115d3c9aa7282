package session

import (
	"strings"
	"time"

	"stayline/models"
)

// ProfileUpdate carries profile information extracted from the conversation.
// Empty fields are "not mentioned" and stay untouched.
type ProfileUpdate struct {
	Profession         string
	Timeline           string
	RoomType           string
	PropertyPreference string
	Budget             string
	Name               string
	PhoneNumber        string
}

// placeholderNames are display names that do not count as a real name.
var placeholderNames = map[string]bool{
	"":           true,
	"Voice User": true,
	"User":       true,
	"Unknown":    true,
}

// BuildProfileUpdates normalizes the mentioned fields into dotted cache
// updates. Free-form values that match no known bucket are stored as said.
func BuildProfileUpdates(in ProfileUpdate) map[string]any {
	updates := make(map[string]any)

	if in.Profession != "" {
		updates[models.ContextDataPrefix+models.FieldProfession] = normalizeProfession(in.Profession)
	}
	if in.Timeline != "" {
		updates[models.ContextDataPrefix+models.FieldMoveInPreference] = normalizeTimeline(in.Timeline)
	}
	if in.RoomType != "" {
		updates[models.ContextDataPrefix+models.FieldRoomSharing] = normalizeRoomType(in.RoomType)
	}
	if in.PropertyPreference != "" {
		updates[models.ContextDataPrefix+models.FieldPropertyPreference] = in.PropertyPreference
	}
	if in.Budget != "" {
		updates[models.ContextDataPrefix+models.FieldBudget] = in.Budget
	}
	if in.Name != "" {
		updates[models.ContextDataPrefix+models.FieldName] = in.Name
	}
	if phone := cleanPhoneNumber(in.PhoneNumber); phone != "" {
		updates[models.ContextDataPrefix+models.FieldPhoneNumber] = phone
	}

	return updates
}

func normalizeProfession(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, "work", "job", "employ", "office", "professional", "engineer"):
		return "working"
	case containsAny(lower, "stud", "college", "university"):
		return "studying"
	}
	return raw
}

func normalizeTimeline(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, "immediate", "this month", "asap", "now"):
		return "this_month"
	case containsAny(lower, "next month", "1-2", "one to two", "6 week"):
		return "one_to_two_months"
	case containsAny(lower, "later", "after 2", "more than", "3 month"):
		return "more_than_two_months"
	}
	return raw
}

func normalizeRoomType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, "private", "single", "1"):
		return "private"
	case containsAny(lower, "shared", "double", "triple", "2", "3"):
		return "shared"
	}
	return raw
}

// cleanPhoneNumber strips non-digits and keeps the last 10 digits when the
// number carries a country prefix.
func cleanPhoneNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// VisitDetails is a validated site-visit slot.
type VisitDetails struct {
	Date        string // YYYY-MM-DD
	Time        string // HH:MM, 24-hour
	DisplayDate string // e.g. "15 January"
	DisplayTime string // e.g. "2:30 PM"
}

// Accepted spoken time layouts, 24-hour first.
var visitTimeLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ParseVisit validates the converted date and time strings for a site visit.
func ParseVisit(dateStr, timeStr string) (VisitDetails, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return VisitDetails{}, ErrInvalidDate
	}

	normalized := strings.ToUpper(strings.TrimSpace(timeStr))
	var parsed time.Time
	ok := false
	for _, layout := range visitTimeLayouts {
		if parsed, err = time.Parse(layout, normalized); err == nil {
			ok = true
			break
		}
	}
	if !ok {
		return VisitDetails{}, ErrInvalidTime
	}

	return VisitDetails{
		Date:        dateStr,
		Time:        parsed.Format("15:04"),
		DisplayDate: date.Format("2 January"),
		DisplayTime: strings.TrimPrefix(parsed.Format("03:04 PM"), "0"),
	}, nil
}

// BuildVisitUpdates stages a validated visit on the cache. The caller's name
// must be known, either passed now or already cached; placeholder names do
// not count.
func BuildVisitUpdates(visit VisitDetails, name string, cached map[string]any) (map[string]any, error) {
	updates := map[string]any{
		models.ContextDataPrefix + models.FieldVisitDate: visit.Date,
		models.ContextDataPrefix + models.FieldVisitTime: visit.Time,
	}

	if name != "" {
		updates[models.ContextDataPrefix+models.FieldName] = name
		return updates, nil
	}

	existing, _ := cached[models.FieldName].(string)
	if placeholderNames[existing] {
		return nil, ErrNameRequired
	}
	return updates, nil
}
