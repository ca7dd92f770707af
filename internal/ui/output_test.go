package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/mindary/internal/config"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
)

func TestFormatDay(t *testing.T) {
	snap := diary.Snapshot{
		Chats: []record.Memo{
			{ID: "m1", Role: "user", Content: "오늘 뭐 했지?"},
			{ID: "m2", Role: "assistant", Content: "영화를 봤어요."},
		},
		Records: []record.Record{
			{ID: "r1", Category: record.CategoryMovie, Title: "듄", Content: "모래 언덕이 압도적이었다."},
		},
	}

	tests := []struct {
		name string
		mode diary.Mode
		snap diary.Snapshot
		want []string
	}{
		{"memos", diary.ModeMemo, snap, []string{"3월 5일 일지", "오늘 뭐 했지?", "영화를 봤어요."}},
		{"records", diary.ModeRecord, snap, []string{"분야", "제목", "미리보기", "영화", "듄", "모래 언덕"}},
		{"no memos", diary.ModeMemo, diary.Snapshot{}, []string{"No memos for this day."}},
		{"no records", diary.ModeRecord, diary.Snapshot{}, []string{"No records for this day."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatDay(&buf, "3월 5일 일지", tt.mode, tt.snap)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestFormatRecordFull(t *testing.T) {
	r := record.Record{
		ID:        "abcd1234",
		Date:      "2024-03-05",
		Category:  record.CategoryReading,
		Title:     "데미안",
		Content:   "# 밑줄\n\n새는 알에서 나오려고 투쟁한다.",
		CreatedAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	FormatRecordFull(&buf, r, "notty")

	out := stripANSI(buf.String())
	for _, want := range []string{"Record: abcd1234", "Date: 2024-03-05", "Category: 독서", "Title: 데미안", "밑줄", "투쟁한다"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(&buf, diary.Snapshot{Chats: []record.Memo{}, Records: []record.Record{}}); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"chats": []`) || !strings.Contains(buf.String(), `"records": []`) {
		t.Errorf("unexpected JSON:\n%s", buf.String())
	}
}

func TestRenderToggle(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{})
	off := stripANSI(renderToggle(false, theme))
	on := stripANSI(renderToggle(true, theme))
	if off == on {
		t.Error("toggle should render differently per state")
	}
	if !strings.Contains(on, "(  ●)") || !strings.Contains(off, "(●  )") {
		t.Errorf("off=%q on=%q", off, on)
	}
}

func TestPadTruncatesWideText(t *testing.T) {
	got := pad("아주아주아주아주아주 긴 제목입니다", 10)
	if w := len([]rune(got)); w > 10 {
		t.Errorf("pad produced %d runes: %q", w, got)
	}
	if !strings.HasSuffix(strings.TrimRight(got, " "), "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
}
