package contextRepo

import "stayline/models"

// ContextRepository defines persistence for durable user contexts.
type ContextRepository interface {
	// FindByID returns the stored context, or nil when none exists.
	FindByID(id string) (*models.UserContext, error)
	// UpsertFields applies a field-level merge keyed by dotted paths,
	// creating the document when absent. Fields not named are untouched.
	UpsertFields(id string, fields map[string]any) error
	// AppendCallSummary appends one call record to the call history.
	AppendCallSummary(id string, summary models.CallSummary) error
}
