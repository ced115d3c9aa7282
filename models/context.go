package models

import "time"

// Context data field names as stored under "context_data" in MongoDB. The
// CRM field-mapping table in services/crm keys off these, so they follow the
// historical bot* naming.
const (
	FieldProfession         = "botProfession"
	FieldMoveInPreference   = "botMoveInPreference"
	FieldRoomSharing        = "botRoomSharingPreference"
	FieldLocationPreference = "botLocationPreference"
	FieldCluster            = "cluster"
	FieldPropertyPreference = "botPropertyPreference"
	FieldBudget             = "botBudget"
	FieldVisitDate          = "botSvDate"
	FieldVisitTime          = "botSvTime"
	FieldName               = "name"
	FieldPhoneNumber        = "phoneNumber"
)

// ContextDataPrefix is the dotted-path prefix under which conversation state
// lives in the user context document.
const ContextDataPrefix = "context_data."

// CallSummary is one prior-call record in a user's call history.
type CallSummary struct {
	CallID  string    `bson:"callId" json:"callId"`
	Summary string    `bson:"summary" json:"summary"`
	EndedAt time.Time `bson:"endedAt" json:"endedAt"`
}

// UserContext is the durable per-caller document, keyed by the normalized
// phone-derived identifier.
type UserContext struct {
	ID          string         `bson:"_id" json:"id"`
	ContextData map[string]any `bson:"context_data" json:"contextData"`
	CallHistory []CallSummary  `bson:"callHistory,omitempty" json:"callHistory,omitempty"`
	UpdatedAt   time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
