package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// Category is the fixed classification of a record.
type Category string

const (
	CategoryDaily   Category = "일상"
	CategoryMovie   Category = "영화"
	CategoryMusic   Category = "음악"
	CategoryReading Category = "독서"
	CategoryEssay   Category = "에세이"
	CategoryOther   Category = "기타"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDaily,
	CategoryMovie,
	CategoryMusic,
	CategoryReading,
	CategoryEssay,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts s into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

// Memo is a chat-style entry attached to a day.
type Memo struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Role      string    `json:"role,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is a categorized, titled long-form entry attached to a day.
type Record struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Category  Category  `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewID generates a new nanoid for a memo or record.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}

// NewRecord builds a record for day with a fresh ID. Title and content
// are stored as given; empty values are allowed.
func NewRecord(day string, category Category, title, content string) (Record, error) {
	if err := ValidateDay(day); err != nil {
		return Record{}, err
	}
	if !category.Valid() {
		return Record{}, fmt.Errorf("invalid category %q", category)
	}
	id, err := NewID()
	if err != nil {
		return Record{}, fmt.Errorf("generating ID: %w", err)
	}
	return Record{
		ID:        id,
		Date:      day,
		Category:  category,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}, nil
}

// NewMemo builds a memo for day with a fresh ID.
func NewMemo(day, role, content string) (Memo, error) {
	if err := ValidateDay(day); err != nil {
		return Memo{}, err
	}
	if err := ValidateMemoContent(content); err != nil {
		return Memo{}, err
	}
	id, err := NewID()
	if err != nil {
		return Memo{}, fmt.Errorf("generating ID: %w", err)
	}
	return Memo{
		ID:        id,
		Date:      day,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}, nil
}

// ValidateMemoContent checks whether memo content is non-empty.
func ValidateMemoContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("memo content must not be empty")
	}
	return nil
}

// Validate checks the fields a store requires before persisting r.
func (r Record) Validate() error {
	if err := ValidateDay(r.Date); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	return nil
}

// Validate checks the fields a store requires before persisting m.
func (m Memo) Validate() error {
	if err := ValidateDay(m.Date); err != nil {
		return err
	}
	return ValidateMemoContent(m.Content)
}

// Preview returns a single-line preview of the record content, at most
// maxLen runes long.
func (r Record) Preview(maxLen int) string {
	return truncate(strings.ReplaceAll(r.Content, "\n", " "), maxLen)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
