package markdown

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
)

// Store implements storage.Storage using Markdown files with YAML front-matter.
// Files live under <kind>/YYYY/MM/DD/<id>.md, so a day lists one directory.
type Store struct {
	memosDir   string // e.g. ~/.mindary/memos/
	recordsDir string // e.g. ~/.mindary/records/
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	memosDir := filepath.Join(dataDir, "memos")
	if err := os.MkdirAll(memosDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating memos directory: %v", storage.ErrStorage, err)
	}
	recordsDir := filepath.Join(dataDir, "records")
	if err := os.MkdirAll(recordsDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating records directory: %v", storage.ErrStorage, err)
	}
	return &Store{memosDir: memosDir, recordsDir: recordsDir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

// dayDir maps "2024-03-05" to <base>/2024/03/05.
func dayDir(base, day string) string {
	return filepath.Join(base, day[0:4], day[5:7], day[8:10])
}

type memoFrontMatter struct {
	ID        string `yaml:"id"`
	Date      string `yaml:"date"`
	Role      string `yaml:"role"`
	CreatedAt string `yaml:"created_at"`
}

type recordFrontMatter struct {
	ID        string `yaml:"id"`
	Date      string `yaml:"date"`
	Category  string `yaml:"category"`
	Title     string `yaml:"title"`
	CreatedAt string `yaml:"created_at"`
}

func marshalMemo(m record.Memo) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", m.ID)
	fmt.Fprintf(&b, "date: %q\n", m.Date)
	if m.Role != "" {
		fmt.Fprintf(&b, "role: %s\n", strconv.Quote(m.Role))
	}
	fmt.Fprintf(&b, "created_at: %s\n", m.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(m.Content)
	return []byte(b.String())
}

func marshalRecord(r record.Record) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", r.ID)
	fmt.Fprintf(&b, "date: %q\n", r.Date)
	fmt.Fprintf(&b, "category: %s\n", strconv.Quote(string(r.Category)))
	fmt.Fprintf(&b, "title: %s\n", strconv.Quote(r.Title))
	fmt.Fprintf(&b, "created_at: %s\n", r.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(r.Content)
	return []byte(b.String())
}

func unmarshalMemo(data []byte) (record.Memo, error) {
	var fm memoFrontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return record.Memo{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}
	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return record.Memo{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	return record.Memo{
		ID:        fm.ID,
		Date:      fm.Date,
		Role:      fm.Role,
		Content:   strings.TrimSpace(string(content)),
		CreatedAt: createdAt,
	}, nil
}

func unmarshalRecord(data []byte) (record.Record, error) {
	var fm recordFrontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}
	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	return record.Record{
		ID:        fm.ID,
		Date:      fm.Date,
		Category:  record.Category(fm.Category),
		Title:     fm.Title,
		Content:   strings.TrimSpace(string(content)),
		CreatedAt: createdAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

func createExclusive(path, kind, id string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s %s already exists", storage.ErrConflict, kind, id)
	}
	return atomicWrite(path, data)
}

// CreateMemo persists a new memo as a Markdown file.
func (s *Store) CreateMemo(m record.Memo) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	path := filepath.Join(dayDir(s.memosDir, m.Date), m.ID+".md")
	return createExclusive(path, "memo", m.ID, marshalMemo(m))
}

// CreateRecord persists a new record as a Markdown file.
func (s *Store) CreateRecord(r record.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	path := filepath.Join(dayDir(s.recordsDir, r.Date), r.ID+".md")
	return createExclusive(path, "record", r.ID, marshalRecord(r))
}

// readDay returns the contents of every .md file stored for day.
func readDay(base, day string) ([][]byte, error) {
	if err := record.ValidateDay(day); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	entries, err := os.ReadDir(dayDir(base, day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading directory: %v", storage.ErrStorage, err)
	}
	var files [][]byte
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dayDir(base, day), e.Name()))
		if err != nil {
			continue // skip unreadable files
		}
		files = append(files, data)
	}
	return files, nil
}

// ListMemos returns the memos for day, oldest first.
func (s *Store) ListMemos(day string) ([]record.Memo, error) {
	files, err := readDay(s.memosDir, day)
	if err != nil {
		return nil, err
	}
	memos := []record.Memo{}
	for _, data := range files {
		m, err := unmarshalMemo(data)
		if err != nil {
			continue // skip malformed files
		}
		memos = append(memos, m)
	}
	sort.Slice(memos, func(i, j int) bool {
		if memos[i].CreatedAt.Equal(memos[j].CreatedAt) {
			return memos[i].ID < memos[j].ID
		}
		return memos[i].CreatedAt.Before(memos[j].CreatedAt)
	})
	return memos, nil
}

// ListRecords returns the records for day, oldest first.
func (s *Store) ListRecords(day string) ([]record.Record, error) {
	files, err := readDay(s.recordsDir, day)
	if err != nil {
		return nil, err
	}
	records := []record.Record{}
	for _, data := range files {
		r, err := unmarshalRecord(data)
		if err != nil {
			continue
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// GetRecord retrieves a record by ID by scanning the records tree.
func (s *Store) GetRecord(id string) (record.Record, error) {
	var found string
	err := filepath.WalkDir(s.recordsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if !d.IsDir() && d.Name() == id+".md" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: scanning records: %v", storage.ErrStorage, err)
	}
	if found == "" {
		return record.Record{}, storage.ErrNotFound
	}
	data, err := os.ReadFile(found)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return unmarshalRecord(data)
}
