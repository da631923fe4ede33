package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"tableflip.dev/paddock/pkg/diary"
	"tableflip.dev/paddock/pkg/store"
)

// Service provides high-level operations for diary records. It wraps the
// record store and the upsert/filter/derive logic so the CLI and the UI can
// share it.
type Service struct {
	Persistence store.Persistence

	// mu holds the single-writer discipline across each read-modify-write
	// cycle; the store only guards individual reads and writes.
	mu sync.Mutex

	// Now overrides the clock for tests. Nil means time.Now.
	Now func() time.Time
}

var ErrNotFound = errors.New("app: record not found")

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Records returns the full ordered collection.
func (s *Service) Records(ctx context.Context) ([]diary.Record, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.LoadAll(ctx)
}

// ForDate returns the records whose date exactly matches the given key, in
// their stored relative order.
func (s *Service) ForDate(ctx context.Context, date string) ([]diary.Record, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return diary.ForDate(records, date), nil
}

// Markers derives the per-date calendar marker set with the given date
// flagged as selected.
func (s *Service) Markers(ctx context.Context, selected string) (map[string]diary.Marker, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return diary.Markers(records, selected), nil
}

// Get returns the record with the given identity.
func (s *Service) Get(ctx context.Context, id int64) (diary.Record, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return diary.Record{}, err
	}
	i := diary.ByID(records, id)
	if i < 0 {
		return diary.Record{}, ErrNotFound
	}
	return records[i], nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// Create validates the draft, assigns a fresh identity, appends it to the
// collection, and writes the collection back. The validation gate runs before
// any store interaction.
func (s *Service) Create(ctx context.Context, rec diary.Record) (diary.Record, error) {
	if s.Persistence == nil {
		return diary.Record{}, errors.New("app: no persistence configured")
	}
	if err := rec.Validate(); err != nil {
		return diary.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Persistence.LoadAll(ctx)
	if err != nil {
		return diary.Record{}, err
	}

	id := s.now().UnixMilli()
	for diary.ByID(records, id) >= 0 {
		// Two creates inside one millisecond would collide; bump until free
		// so identities stay unique.
		id++
	}
	rec.ID = id

	records = append(records, rec)
	if err := s.Persistence.SaveAll(ctx, records); err != nil {
		return diary.Record{}, err
	}
	return rec, nil
}

// Update replaces the collection entry with the matching identity. Editing a
// record that no longer exists is an explicit ErrNotFound, never a silent
// no-op.
func (s *Service) Update(ctx context.Context, rec diary.Record) (diary.Record, error) {
	if s.Persistence == nil {
		return diary.Record{}, errors.New("app: no persistence configured")
	}
	if err := rec.Validate(); err != nil {
		return diary.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Persistence.LoadAll(ctx)
	if err != nil {
		return diary.Record{}, err
	}
	i := diary.ByID(records, rec.ID)
	if i < 0 {
		return diary.Record{}, ErrNotFound
	}
	records[i] = rec
	if err := s.Persistence.SaveAll(ctx, records); err != nil {
		return diary.Record{}, err
	}
	return rec, nil
}

// Delete removes the record with the given identity. The removal is applied
// to a draft and persisted before any caller-visible state changes, so a
// failed write leaves the stored collection intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Persistence.LoadAll(ctx)
	if err != nil {
		return err
	}
	i := diary.ByID(records, id)
	if i < 0 {
		return ErrNotFound
	}
	draft := append(append(make([]diary.Record, 0, len(records)-1), records[:i]...), records[i+1:]...)
	return s.Persistence.SaveAll(ctx, draft)
}
