package mcptools

import (
	"time"

	"github.com/chris-regnier/mindary/internal/record"
)

// resolveDay returns s, or today in loc when s is empty.
func resolveDay(s string, loc *time.Location) (string, error) {
	if s == "" {
		return record.FormatDay(time.Now(), loc), nil
	}
	if err := record.ValidateDay(s); err != nil {
		return "", err
	}
	return s, nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
