package diary

import (
	"context"
	"fmt"

	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
)

// Snapshot is everything stored for one day.
type Snapshot struct {
	Chats   []record.Memo   `json:"chats"`
	Records []record.Record `json:"records"`
}

// Source reads and writes a day's memos and records.
type Source interface {
	Fetch(ctx context.Context, day string) (Snapshot, error)
	CreateRecord(ctx context.Context, d Draft) (record.Record, error)
	CreateMemo(ctx context.Context, day, role, content string) (record.Memo, error)
}

// Run performs req against src and packages the outcome.
func Run(ctx context.Context, src Source, req FetchRequest) FetchResult {
	snap, err := src.Fetch(ctx, req.Day)
	return FetchResult{Token: req.Token, Mode: req.Mode, Snapshot: snap, Err: err}
}

// LocalSource serves a Source straight from a store.
type LocalSource struct {
	Store storage.Storage
}

// Fetch loads the memos and records for day.
func (s LocalSource) Fetch(ctx context.Context, day string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	chats, err := s.Store.ListMemos(day)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing memos: %w", err)
	}
	records, err := s.Store.ListRecords(day)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing records: %w", err)
	}
	return Snapshot{Chats: chats, Records: records}, nil
}

// CreateRecord stores a new record built from d.
func (s LocalSource) CreateRecord(ctx context.Context, d Draft) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return record.Record{}, err
	}
	r, err := record.NewRecord(d.Day, d.Category, d.Title, d.Content)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	if err := s.Store.CreateRecord(r); err != nil {
		return record.Record{}, err
	}
	return r, nil
}

// CreateMemo stores a new memo.
func (s LocalSource) CreateMemo(ctx context.Context, day, role, content string) (record.Memo, error) {
	if err := ctx.Err(); err != nil {
		return record.Memo{}, err
	}
	m, err := record.NewMemo(day, role, content)
	if err != nil {
		return record.Memo{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	if err := s.Store.CreateMemo(m); err != nil {
		return record.Memo{}, err
	}
	return m, nil
}
