package cmd

import (
	"regexp"
	"testing"
	"time"

	"github.com/chris-regnier/mindary/internal/config"
	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/chris-regnier/mindary/internal/storage/markdown"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func setupTestEnv(t *testing.T) {
	t.Helper()
	store = setupTestStore(t)
	t.Cleanup(func() { store = nil })
	appConfig = &config.Config{Storage: "markdown", RequestTimeout: 5 * time.Second}
	logger = zap.NewNop()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	location = loc
	jsonOutput = false
}

// stripANSI removes ANSI escape sequences from a string
func stripANSI(s string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	return ansiRegex.ReplaceAllString(s, "")
}
