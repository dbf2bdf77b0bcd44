package encounters

import (
	"context"
	"sync"

	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
)

type inMemoryRepository struct {
	mu           sync.RWMutex
	records      map[string]*Record
	bySession    map[string][]string // sessionID -> record IDs
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory encounter archive
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		records:      make(map[string]*Record),
		bySession:    make(map[string][]string),
		timeProvider: NewTimeProvider(),
	}
}

// Save stores a copy of the record
func (r *inMemoryRepository) Save(ctx context.Context, record *Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := record.clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.timeProvider.Now()
		record.CreatedAt = stored.CreatedAt
	}

	if old, exists := r.records[record.ID]; exists {
		r.unindex(old)
	}
	r.records[record.ID] = stored
	r.bySession[record.SessionID] = append(r.bySession[record.SessionID], record.ID)
	return nil
}

// Get retrieves a record by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, rerrors.NotFoundf("encounter not found: %s", id)
	}
	return record.clone(), nil
}

// ListBySession retrieves all records for a session
func (r *inMemoryRepository) ListBySession(ctx context.Context, sessionID string) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySession[sessionID]
	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		if record, exists := r.records[id]; exists {
			records = append(records, record.clone())
		}
	}
	sortRecords(records)
	return records, nil
}

// Delete removes a record
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return rerrors.NotFoundf("encounter not found: %s", id)
	}
	delete(r.records, id)
	r.unindex(record)
	return nil
}

func (r *inMemoryRepository) unindex(record *Record) {
	ids := r.bySession[record.SessionID]
	for i, id := range ids {
		if id == record.ID {
			r.bySession[record.SessionID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(r.bySession[record.SessionID]) == 0 {
		delete(r.bySession, record.SessionID)
	}
}
