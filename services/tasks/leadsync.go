package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeLeadSync = "lead:sync"

// LeadSyncPayload is the post-call CRM sync job: the final context snapshot
// plus the field names touched during the call.
type LeadSyncPayload struct {
	UserID        string         `json:"userId"`
	ContextData   map[string]any `json:"contextData"`
	UpdatedFields []string       `json:"updatedFields"`
}

func NewLeadSyncTask(payload LeadSyncPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeLeadSync, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(45 * time.Second),
	}

	return task, opts, nil
}
