package session

import (
	"strings"
	"sync"

	contextRepo "stayline/database/repository/context"
	"stayline/utils"

	"go.uber.org/zap"
)

// entry wraps one caller's in-memory context with dirty tracking. dirty is
// true iff pendingUpdates is non-empty; pendingUpdates keeps the full dotted
// path so a flush writes exactly what changed.
type entry struct {
	contextData    map[string]any
	dirty          bool
	pendingUpdates map[string]any
}

// Store is the write-back cache of per-call conversation state. The in-memory
// copy is authoritative for the duration of a call; the durable store becomes
// authoritative once flushed. The mutex guards the entry map across
// concurrently active calls; operations on a single id are serialized by the
// conversation layer, which never dispatches two tools for one call at once.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	Repo contextRepo.ContextRepository
}

// NewStore creates a session store flushing into the given repository.
func NewStore(repo contextRepo.ContextRepository) *Store {
	return &Store{
		entries: make(map[string]*entry),
		Repo:    repo,
	}
}

// Set installs a fresh entry for id, replacing any prior entry unconditionally.
// The dirty flag and pending updates start cleared.
func (s *Store) Set(id string, contextData map[string]any) {
	data := make(map[string]any, len(contextData))
	for k, v := range contextData {
		data[k] = v
	}

	s.mu.Lock()
	s.entries[id] = &entry{
		contextData:    data,
		pendingUpdates: make(map[string]any),
	}
	s.mu.Unlock()

	utils.GetLogger().Info("Context cached", zap.String("userId", id))
}

// Get returns a snapshot of the cached context, or false when absent. It
// never touches the durable store.
func (s *Store) Get(id string) (map[string]any, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	snapshot := make(map[string]any, len(e.contextData))
	for k, v := range e.contextData {
		snapshot[k] = v
	}
	return snapshot, true
}

// Update merges field updates into the cached context and records them as
// pending. Keys use the dotted path convention ("context_data.botBudget");
// the leaf segment addresses the in-memory field. Creates an empty entry if
// none exists. Purely in-memory, never fails, never writes through.
func (s *Store) Update(id string, updates map[string]any) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{
			contextData:    make(map[string]any),
			pendingUpdates: make(map[string]any),
		}
		s.entries[id] = e
	}

	keys := make([]string, 0, len(updates))
	for path, value := range updates {
		e.contextData[leafKey(path)] = value
		e.pendingUpdates[path] = value
		keys = append(keys, path)
	}
	e.dirty = len(e.pendingUpdates) > 0
	s.mu.Unlock()

	utils.GetLogger().Info("Context updated",
		zap.String("userId", id), zap.Strings("fields", keys))
}

// Flush writes all pending updates to the durable store in one field-merge
// upsert, then clears the entry. A clean entry clears without I/O. On a
// write failure the entry is left intact so the caller may retry; the call
// then ends with unsynced preferences, which is degraded but not fatal.
func (s *Store) Flush(id string) error {
	logger := utils.GetLogger()

	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNoEntry
	}

	if !e.dirty || len(e.pendingUpdates) == 0 {
		logger.Info("No pending updates", zap.String("userId", id))
		s.Clear(id)
		return nil
	}

	if err := s.Repo.UpsertFields(id, e.pendingUpdates); err != nil {
		logger.Error("Failed to flush context",
			zap.String("userId", id), zap.Error(err))
		return err
	}

	logger.Info("Flushed context updates",
		zap.String("userId", id), zap.Int("fields", len(e.pendingUpdates)))
	s.Clear(id)
	return nil
}

// PendingFields returns the dotted paths staged since the last flush.
func (s *Store) PendingFields(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(e.pendingUpdates))
	for path := range e.pendingUpdates {
		fields = append(fields, path)
	}
	return fields
}

// Clear discards the entry with no persistence.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	_, existed := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if existed {
		utils.GetLogger().Info("Cleared cached context", zap.String("userId", id))
	}
}

// leafKey returns the last segment of a dotted field path.
func leafKey(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
