package storage

import (
	"errors"

	"github.com/chris-regnier/mindary/internal/record"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("concurrent write conflict")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// Storage defines the interface for memo and record persistence.
// Days are YYYY-MM-DD strings; listing a day with nothing stored
// returns an empty slice, not ErrNotFound.
type Storage interface {
	ListMemos(day string) ([]record.Memo, error)
	ListRecords(day string) ([]record.Record, error)
	CreateMemo(m record.Memo) error
	CreateRecord(r record.Record) error
	GetRecord(id string) (record.Record, error)
	Close() error
}
