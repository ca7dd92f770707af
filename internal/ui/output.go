package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
)

// FormatJSON writes any value as indented JSON.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatDay writes a plain-text rendering of one day: the heading, then
// either the memos or the record table depending on mode. An empty
// title omits the heading.
func FormatDay(w io.Writer, title string, mode diary.Mode, snap diary.Snapshot) {
	if title != "" {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w)
	}
	if mode == diary.ModeMemo {
		if len(snap.Chats) == 0 {
			fmt.Fprintln(w, "No memos for this day.")
			return
		}
		for _, m := range snap.Chats {
			fmt.Fprintf(w, "%s  %s\n", memoSpeaker(m), strings.ReplaceAll(m.Content, "\n", " "))
		}
		return
	}

	if len(snap.Records) == 0 {
		fmt.Fprintln(w, "No records for this day.")
		return
	}
	fmt.Fprintf(w, "%s  %s  %s\n", pad("분야", categoryWidth), pad("제목", titleWidth), "미리보기")
	for _, r := range snap.Records {
		fmt.Fprintf(w, "%s  %s  %s\n", pad(string(r.Category), categoryWidth), pad(r.Title, titleWidth), r.Preview(previewWidth))
	}
}

// FormatRecordCreated writes a creation confirmation line.
func FormatRecordCreated(w io.Writer, r record.Record) {
	fmt.Fprintf(w, "Created record %s (%s, %s)\n", r.ID, r.Date, r.Category)
}

// FormatMemoCreated writes a creation confirmation line.
func FormatMemoCreated(w io.Writer, m record.Memo) {
	fmt.Fprintf(w, "Created memo %s (%s)\n", m.ID, m.Date)
}

// FormatRecordFull writes a record with its metadata header and the
// content rendered as markdown.
func FormatRecordFull(w io.Writer, r record.Record, markdownStyle string) {
	fmt.Fprintf(w, "Record: %s\n", r.ID)
	fmt.Fprintf(w, "Date: %s\n", r.Date)
	fmt.Fprintf(w, "Category: %s\n", r.Category)
	if r.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", r.Title)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderMarkdown(r.Content, 80, markdownStyle))
}
