package session

import (
	"time"

	contextRepo "stayline/database/repository/context"
	"stayline/models"
	"stayline/services/tasks"
	"stayline/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// LifecycleService drives the call-start / call-end transitions around the
// session cache: cold-start load from the durable store, flush at call end,
// and the post-flush CRM sync handoff.
type LifecycleService struct {
	Cache *Store
	Repo  contextRepo.ContextRepository
	Queue *asynq.Client // nil disables CRM sync (e.g. in tests)
}

// StartCall loads the caller's durable context (or an empty default) into
// the cache. A durable-store failure degrades to an empty context rather
// than failing the call; the flush at call end will upsert whatever was
// collected.
func (s *LifecycleService) StartCall(userID string) map[string]any {
	logger := utils.GetLogger()

	var data map[string]any
	doc, err := s.Repo.FindByID(userID)
	if err != nil {
		logger.Error("Cold-start context load failed, starting empty",
			zap.String("userId", userID), zap.Error(err))
	} else if doc != nil {
		data = doc.ContextData
	}
	if data == nil {
		data = make(map[string]any)
	}

	s.Cache.Set(userID, data)
	return data
}

// EndCall flushes pending updates, appends the call summary to the durable
// history, and enqueues a CRM lead sync carrying the final context snapshot.
// A flush failure is returned so the telephony layer may retry the end-call
// request; the entry stays cached until a flush succeeds or the process ends.
func (s *LifecycleService) EndCall(userID, callID, summary string) error {
	logger := utils.GetLogger()

	snapshot, _ := s.Cache.Get(userID)
	pending := s.Cache.PendingFields(userID)

	if err := s.Cache.Flush(userID); err != nil {
		return err
	}

	if summary != "" {
		record := models.CallSummary{CallID: callID, Summary: summary, EndedAt: time.Now()}
		if err := s.Repo.AppendCallSummary(userID, record); err != nil {
			// History is best-effort; the flushed preferences are what matter.
			logger.Error("Failed to append call summary",
				zap.String("userId", userID), zap.Error(err))
		}
	}

	if s.Queue != nil && len(snapshot) > 0 {
		s.enqueueLeadSync(userID, snapshot, pending)
	}
	return nil
}

func (s *LifecycleService) enqueueLeadSync(userID string, snapshot map[string]any, pendingPaths []string) {
	logger := utils.GetLogger()

	updated := make([]string, 0, len(pendingPaths))
	for _, path := range pendingPaths {
		updated = append(updated, leafKey(path))
	}

	task, opts, err := tasks.NewLeadSyncTask(tasks.LeadSyncPayload{
		UserID:        userID,
		ContextData:   snapshot,
		UpdatedFields: updated,
	})
	if err != nil {
		logger.Error("Failed to build lead sync task",
			zap.String("userId", userID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		// CRM sync is non-fatal: log and move on.
		logger.Error("Failed to enqueue lead sync",
			zap.String("userId", userID), zap.Error(err))
		return
	}
	logger.Info("Lead sync enqueued",
		zap.String("userId", userID), zap.Int("fields", len(updated)))
}
