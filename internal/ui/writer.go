package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
)

const (
	titlePlaceholder   = "제목을 입력하세요."
	contentPlaceholder = "본문을 입력하세요."
)

// writerFocus is the field receiving keystrokes.
type writerFocus int

const (
	focusTitle writerFocus = iota
	focusContent
)

// RecordWriter is the content step of the authoring wizard. It owns no
// form state: the caller passes the current FormData on every Update and
// View, and receives edits through onFormDataChange.
type RecordWriter struct {
	title   textinput.Model
	content textarea.Model
	focus   writerFocus
	theme   Theme
}

// NewRecordWriter creates a writer with the title field focused.
func NewRecordWriter(theme Theme, width int) RecordWriter {
	ti := textinput.New()
	ti.Placeholder = titlePlaceholder
	ti.Prompt = ""
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = contentPlaceholder
	ta.ShowLineNumbers = false
	ta.MaxHeight = 0 // unbounded
	ta.SetHeight(8)
	ta.Blur()

	w := RecordWriter{title: ti, content: ta, theme: theme}
	w.SetWidth(width)
	return w
}

// SetWidth resizes both fields.
func (w *RecordWriter) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	w.title.Width = width - 4
	w.content.SetWidth(width - 2)
}

// Reset refocuses the title field for a new session.
func (w *RecordWriter) Reset() {
	w.focus = focusTitle
	w.title.Focus()
	w.content.Blur()
}

// sync pushes form into the underlying fields when they differ.
func (w *RecordWriter) sync(form diary.FormData) {
	if w.title.Value() != form.Title {
		w.title.SetValue(form.Title)
	}
	if w.content.Value() != form.Content {
		w.content.SetValue(form.Content)
	}
}

// Update forwards msg to the focused field and reports any change of
// value through onFormDataChange. Tab switches fields.
func (w RecordWriter) Update(msg tea.Msg, form diary.FormData, onFormDataChange func(diary.FormPatch)) (RecordWriter, tea.Cmd) {
	w.sync(form)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyTab {
		if w.focus == focusTitle {
			w.focus = focusContent
			w.title.Blur()
			return w, w.content.Focus()
		}
		w.focus = focusTitle
		w.content.Blur()
		return w, w.title.Focus()
	}

	var cmd tea.Cmd
	switch w.focus {
	case focusTitle:
		w.title, cmd = w.title.Update(msg)
		if v := w.title.Value(); v != form.Title && onFormDataChange != nil {
			onFormDataChange(diary.TitlePatch(v))
		}
	case focusContent:
		w.content, cmd = w.content.Update(msg)
		if v := w.content.Value(); v != form.Content && onFormDataChange != nil {
			onFormDataChange(diary.ContentPatch(v))
		}
	}
	return w, cmd
}

// View renders the writer for category with the values in form.
func (w RecordWriter) View(category record.Category, form diary.FormData) string {
	w.sync(form)

	label := w.theme.AccentStyle().Bold(true).Render(string(category))
	titleBox := w.theme.BorderStyle().Render(w.title.View())
	if w.focus == focusTitle {
		titleBox = w.theme.BorderStyle().BorderForeground(w.theme.Accent).Render(w.title.View())
	}
	contentBox := w.theme.BorderStyle().Render(w.content.View())
	if w.focus == focusContent {
		contentBox = w.theme.BorderStyle().BorderForeground(w.theme.Accent).Render(w.content.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, titleBox, contentBox)
}
