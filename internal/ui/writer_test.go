package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/mindary/internal/config"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
)

func newTestWriter() RecordWriter {
	w := NewRecordWriter(ResolveTheme(config.ThemeConfig{}), 60)
	w.title.Cursor.SetMode(cursor.CursorStatic)
	w.content.Cursor.SetMode(cursor.CursorStatic)
	return w
}

func TestRecordWriterReportsTitleChange(t *testing.T) {
	w := newTestWriter()
	form := diary.FormData{}
	var patches []diary.FormPatch

	w, _ = w.Update(runeKey("비"), form, func(p diary.FormPatch) { patches = append(patches, p) })

	if len(patches) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(patches))
	}
	if patches[0].Title == nil || *patches[0].Title != "비" {
		t.Errorf("title patch = %+v", patches[0])
	}
	if patches[0].Content != nil {
		t.Error("content should not be part of a title edit")
	}
}

func TestRecordWriterTabSwitchesToContent(t *testing.T) {
	w := newTestWriter()
	form := diary.FormData{Title: "제목"}
	var got diary.FormData

	onChange := func(p diary.FormPatch) { got = form.Merge(p) }
	w, _ = w.Update(tea.KeyMsg{Type: tea.KeyTab}, form, onChange)
	w, _ = w.Update(runeKey("본문"), form, onChange)

	if got.Title != "제목" || got.Content != "본문" {
		t.Errorf("form = %+v", got)
	}
	if w.focus != focusContent {
		t.Errorf("focus = %v, want content", w.focus)
	}
}

func TestRecordWriterFollowsControlledValues(t *testing.T) {
	w := newTestWriter()
	form := diary.FormData{Title: "외부에서 바뀐 제목", Content: "외부 본문"}

	view := stripANSI(w.View(record.CategoryEssay, form))
	for _, want := range []string{"에세이", "외부에서 바뀐 제목", "외부 본문"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRecordWriterPlaceholders(t *testing.T) {
	w := newTestWriter()
	view := stripANSI(w.View(record.CategoryMovie, diary.FormData{}))
	for _, want := range []string{"영화", titlePlaceholder, contentPlaceholder} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRecordWriterNoChangeNoPatch(t *testing.T) {
	w := newTestWriter()
	called := false
	w.Update(tea.KeyMsg{Type: tea.KeyLeft}, diary.FormData{}, func(diary.FormPatch) { called = true })
	if called {
		t.Error("cursor movement should not report a change")
	}
}

func TestRecordWriterAcceptsLongInput(t *testing.T) {
	w := newTestWriter()
	form := diary.FormData{}
	onChange := func(p diary.FormPatch) { form = form.Merge(p) }

	longTitle := strings.Repeat("가", 300)
	w, _ = w.Update(runeKey(longTitle), form, onChange)
	if got := len([]rune(form.Title)); got != 300 {
		t.Fatalf("title runes = %d, want 300", got)
	}

	longContent := strings.TrimSuffix(strings.Repeat("줄\n", 150), "\n")
	w, _ = w.Update(tea.KeyMsg{Type: tea.KeyTab}, form, onChange)
	_, _ = w.Update(runeKey(longContent), form, onChange)
	if form.Content != longContent {
		t.Errorf("content lines = %d, want 150", strings.Count(form.Content, "\n")+1)
	}
}
