package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/paddock/pkg/diary"
)

// DiaryListKey is the single persisted key holding the entire diary
// collection as one serialized blob.
const DiaryListKey = "diaryList"

// Persistence defines the persistence contract for the diary collection.
// There are no partial updates at this layer: every mutation re-serializes
// the full collection, so callers compute the desired sequence first.
type Persistence interface {
	LoadAll(ctx context.Context) ([]diary.Record, error)
	SaveAll(ctx context.Context, records []diary.Record) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// DecodeError reports that the stored blob did not parse as a record
// sequence.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("store: decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	// mu serializes the single-key full-read/full-write access pattern so
	// concurrent callers never interleave a read-modify-write.
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) LoadAll(ctx context.Context) ([]diary.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.d.Has(DiaryListKey) {
		// Absence of the blob is equivalent to an empty collection.
		return []diary.Record{}, nil
	}
	val, err := p.d.Read(DiaryListKey)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", DiaryListKey, err)
	}
	records := make([]diary.Record, 0)
	if len(val) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(val, &records); err != nil {
		return nil, &DecodeError{Key: DiaryListKey, Err: err}
	}
	return records, nil
}

func (p *persistence) SaveAll(ctx context.Context, records []diary.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []diary.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", DiaryListKey, err)
	}
	if err := p.d.Write(DiaryListKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", DiaryListKey, err)
	}
	return nil
}

func flatTransform(string) []string { return []string{} }
