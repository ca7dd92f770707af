package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/mattn/go-runewidth"
)

// Column widths of the record table, in terminal cells.
const (
	categoryWidth = 8
	titleWidth    = 24
	previewWidth  = 40
)

// pad truncates or right-pads s to exactly w cells.
func pad(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = runewidth.Truncate(s, w, "…")
	return runewidth.FillRight(s, w)
}

// memoSpeaker labels a memo line by role.
func memoSpeaker(m record.Memo) string {
	switch m.Role {
	case "assistant":
		return "◆"
	case "":
		return "•"
	default:
		return "›"
	}
}

// renderToggle draws the memo/record switch. isOn means record mode.
func renderToggle(isOn bool, theme Theme) string {
	memo := theme.HelpStyle().Render("메모")
	rec := theme.HelpStyle().Render("기록")
	knob := theme.HelpStyle().Render("(●  )")
	if isOn {
		rec = theme.AccentStyle().Bold(true).Render("기록")
		knob = theme.AccentStyle().Render("(  ●)")
	} else {
		memo = theme.AccentStyle().Bold(true).Render("메모")
	}
	sp := theme.HelpStyle().Render(" ")
	return memo + sp + knob + sp + rec
}

// renderMemos draws the chat-style memo list for day.
func renderMemos(day string, memos []record.Memo, theme Theme, width int) string {
	if len(memos) == 0 {
		return theme.HelpStyle().Render(fmt.Sprintf("%s 메모가 없습니다.", day))
	}
	lines := make([]string, 0, len(memos))
	for _, m := range memos {
		text := strings.ReplaceAll(m.Content, "\n", " ")
		body := text
		if width > 4 {
			body = runewidth.Truncate(text, width-4, "…")
		}
		speaker := theme.HelpStyle().Render(memoSpeaker(m) + " ")
		style := theme.base()
		if m.Role == "assistant" {
			style = theme.AccentStyle()
		}
		lines = append(lines, speaker+style.Render(body))
	}
	return strings.Join(lines, "\n")
}

// renderColumnHeader draws the 분야 | 제목 | 미리보기 row.
func renderColumnHeader(theme Theme, width int) string {
	row := pad("분야", categoryWidth) + "  " + pad("제목", titleWidth) + "  " + "미리보기"
	return theme.ColumnHeaderStyle().Width(width).Render(row)
}

// renderRecordRows draws one row per record.
func renderRecordRows(records []record.Record, theme Theme) string {
	if len(records) == 0 {
		return theme.HelpStyle().Render("기록이 없습니다.")
	}
	rows := make([]string, 0, len(records))
	for _, r := range records {
		row := pad(string(r.Category), categoryWidth) + "  " +
			pad(r.Title, titleWidth) + "  " +
			r.Preview(previewWidth)
		rows = append(rows, theme.base().Render(row))
	}
	return strings.Join(rows, "\n")
}

// renderCategories draws the category rows of the first wizard step.
// cursor marks the focused row; selected, if set, is highlighted.
func renderCategories(cursor int, selected record.Category, theme Theme) string {
	rows := make([]string, 0, len(record.Categories))
	for i, c := range record.Categories {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		label := marker + string(c)
		switch {
		case c == selected:
			rows = append(rows, theme.SelectedStyle().Render(label))
		case i == cursor:
			rows = append(rows, theme.AccentStyle().Render(" "+label))
		default:
			rows = append(rows, theme.base().Render(" "+label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderButtons draws footer actions side by side.
func renderButtons(theme Theme, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, theme.ButtonStyle().Render("["+l+"]"))
	}
	return strings.Join(parts, theme.HelpStyle().Render("  "))
}
