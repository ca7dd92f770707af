package record

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"일상", CategoryDaily, false},
		{"영화", CategoryMovie, false},
		{" 음악 ", CategoryMusic, false},
		{"독서", CategoryReading, false},
		{"에세이", CategoryEssay, false},
		{"기타", CategoryOther, false},
		{"movie", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []Category{"일상", "영화", "음악", "독서", "에세이", "기타"}
	if len(Categories) != len(want) {
		t.Fatalf("len(Categories) = %d, want %d", len(Categories), len(want))
	}
	for i := range want {
		if Categories[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, Categories[i], want[i])
		}
	}
}

func TestNewRecordAllowsEmptyFields(t *testing.T) {
	r, err := NewRecord("2024-03-05", CategoryMovie, "", "")
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if err := ValidateID(r.ID); err != nil {
		t.Errorf("generated ID invalid: %v", err)
	}
	if r.Date != "2024-03-05" || r.Category != CategoryMovie {
		t.Errorf("unexpected record: %+v", r)
	}
}

func TestNewRecordRejectsBadInput(t *testing.T) {
	if _, err := NewRecord("2024-13-01", CategoryMovie, "t", "c"); err == nil {
		t.Error("expected error for invalid date")
	}
	if _, err := NewRecord("2024-03-05", Category("drama"), "t", "c"); err == nil {
		t.Error("expected error for invalid category")
	}
}

func TestNewMemoRequiresContent(t *testing.T) {
	if _, err := NewMemo("2024-03-05", "user", "   "); err == nil {
		t.Error("expected error for blank memo")
	}
	m, err := NewMemo("2024-03-05", "user", "hello")
	if err != nil {
		t.Fatalf("NewMemo: %v", err)
	}
	if m.Content != "hello" || m.Role != "user" {
		t.Errorf("unexpected memo: %+v", m)
	}
}

func TestRecordPreview(t *testing.T) {
	r := Record{Content: "첫 줄\n둘째 줄이 조금 더 깁니다"}
	if got := r.Preview(100); got != "첫 줄 둘째 줄이 조금 더 깁니다" {
		t.Errorf("Preview(100) = %q", got)
	}
	if got := r.Preview(6); got != "첫 줄..." {
		t.Errorf("Preview(6) = %q", got)
	}
}

func TestFormatDayUsesLocation(t *testing.T) {
	seoul, err := LoadLocation("")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2024-03-04 20:00 UTC is already March 5th in Seoul.
	instant := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC)
	if got := FormatDay(instant, seoul); got != "2024-03-05" {
		t.Errorf("FormatDay = %q, want 2024-03-05", got)
	}
	if got := Title(instant, seoul); got != "3월 5일 일지" {
		t.Errorf("Title = %q, want 3월 5일 일지", got)
	}
}

func TestShiftDay(t *testing.T) {
	loc := time.UTC
	start := time.Date(2024, 2, 28, 15, 0, 0, 0, loc)
	if got := FormatDay(ShiftDay(start, 1, loc), loc); got != "2024-02-29" {
		t.Errorf("ShiftDay +1 = %q", got)
	}
	if got := FormatDay(ShiftDay(start, 2, loc), loc); got != "2024-03-01" {
		t.Errorf("ShiftDay +2 = %q", got)
	}
	if got := FormatDay(ShiftDay(start, -28, loc), loc); got != "2024-01-31" {
		t.Errorf("ShiftDay -28 = %q", got)
	}
}

func TestParseDay(t *testing.T) {
	if _, err := ParseDay("2024/03/05", time.UTC); err == nil {
		t.Error("expected error for slash-separated date")
	}
	got, err := ParseDay("2024-03-05", time.UTC)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if got.Day() != 5 || got.Month() != time.March {
		t.Errorf("ParseDay = %v", got)
	}
}
