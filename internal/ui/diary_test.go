package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/mindary/internal/config"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
)

// mockSource implements diary.Source for testing.
type mockSource struct {
	mu       sync.Mutex
	days     map[string]diary.Snapshot
	fetchErr error
	fetched  []string
	created  []diary.Draft
}

func (s *mockSource) Fetch(_ context.Context, day string) (diary.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, day)
	if s.fetchErr != nil {
		return diary.Snapshot{}, s.fetchErr
	}
	return s.days[day], nil
}

func (s *mockSource) CreateRecord(_ context.Context, d diary.Draft) (record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, d)
	r := record.Record{ID: "abcd1234", Date: d.Day, Category: d.Category, Title: d.Title, Content: d.Content}
	snap := s.days[d.Day]
	snap.Records = append(snap.Records, r)
	if s.days == nil {
		s.days = map[string]diary.Snapshot{}
	}
	s.days[d.Day] = snap
	return r, nil
}

func (s *mockSource) CreateMemo(_ context.Context, day, role, content string) (record.Memo, error) {
	return record.Memo{ID: "memo0001", Date: day, Role: role, Content: content}, nil
}

var seoul = mustLoad("Asia/Seoul")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func testDate() time.Time {
	return time.Date(2024, 3, 5, 9, 0, 0, 0, seoul)
}

func newTestModel(src *mockSource) diaryModel {
	cfg := TUIConfig{
		Theme:          ResolveTheme(config.ThemeConfig{Preset: "default-dark"}),
		PersistRecords: true,
		Location:       seoul,
		Now:            testDate,
	}
	m := newDiaryModel(src, testDate(), cfg)
	// A blinking cursor would hand back tick commands that block.
	m.writer.title.Cursor.SetMode(cursor.CursorStatic)
	m.writer.content.Cursor.SetMode(cursor.CursorStatic)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return sized.(diaryModel)
}

// send delivers msg and runs any resulting command once, feeding its
// message back into the model.
func send(t *testing.T, m diaryModel, msg tea.Msg) diaryModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(diaryModel)
	if cmd == nil {
		return m
	}
	out := cmd()
	switch out.(type) {
	case fetchedMsg, savedMsg:
		return send(t, m, out)
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDiaryInitFetchesMemos(t *testing.T) {
	src := &mockSource{days: map[string]diary.Snapshot{
		"2024-03-05": {Chats: []record.Memo{{ID: "m1", Date: "2024-03-05", Role: "user", Content: "점심은 김밥"}}},
	}}
	m := newTestModel(src)
	m = send(t, m, m.Init()())

	if len(m.view.Memos()) != 1 {
		t.Fatalf("expected 1 memo, got %d", len(m.view.Memos()))
	}
	view := stripANSI(m.View())
	for _, want := range []string{"3월 5일 일지", "점심은 김밥", "메모"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDiaryToggleFetchesRecords(t *testing.T) {
	src := &mockSource{days: map[string]diary.Snapshot{
		"2024-03-05": {Records: []record.Record{{ID: "r1", Date: "2024-03-05", Category: record.CategoryMusic, Title: "봄 플레이리스트", Content: "첫 곡"}}},
	}}
	m := newTestModel(src)
	m = send(t, m, runeKey("t"))

	if m.view.Mode() != diary.ModeRecord {
		t.Fatalf("mode = %v, want record", m.view.Mode())
	}
	view := stripANSI(m.View())
	for _, want := range []string{"분야", "제목", "미리보기", "봄 플레이리스트", "작성하기"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, runeKey("t"))
	if m.view.Mode() != diary.ModeMemo {
		t.Errorf("mode = %v after second toggle, want memo", m.view.Mode())
	}
	if m.view.Day() != "2024-03-05" {
		t.Errorf("day changed to %s", m.view.Day())
	}
}

func TestDiaryDateNavigation(t *testing.T) {
	src := &mockSource{}
	m := newTestModel(src)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.view.Day(); got != "2024-03-04" {
		t.Errorf("after left: %s", got)
	}
	m = send(t, m, runeKey("l"))
	m = send(t, m, runeKey("l"))
	if got := m.view.Day(); got != "2024-03-06" {
		t.Errorf("after two rights: %s", got)
	}
	m = send(t, m, runeKey("."))
	if got := m.view.Day(); got != "2024-03-05" {
		t.Errorf("after today: %s", got)
	}
	if len(src.fetched) != 4 {
		t.Errorf("expected one fetch per date change, got %v", src.fetched)
	}
}

func TestDiaryFetchFailureKeepsData(t *testing.T) {
	src := &mockSource{days: map[string]diary.Snapshot{
		"2024-03-05": {Chats: []record.Memo{{ID: "m1", Date: "2024-03-05", Content: "hello"}}},
	}}
	m := newTestModel(src)
	m = send(t, m, m.Init()())

	src.fetchErr = errors.New("connection refused")
	m = send(t, m, runeKey("r"))

	if len(m.view.Memos()) != 1 || m.view.Memos()[0].Content != "hello" {
		t.Errorf("memos changed after failed fetch: %+v", m.view.Memos())
	}
	if strings.Contains(stripANSI(m.View()), "connection refused") {
		t.Error("fetch error should not be shown")
	}
}

func TestDiaryStaleFetchDiscarded(t *testing.T) {
	src := &mockSource{days: map[string]diary.Snapshot{
		"2024-03-04": {Chats: []record.Memo{{ID: "old", Date: "2024-03-04", Content: "어제"}}},
		"2024-03-05": {Chats: []record.Memo{{ID: "new", Date: "2024-03-05", Content: "오늘"}}},
	}}
	m := newTestModel(src)

	next, slow := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(diaryModel)
	next, fast := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(diaryModel)

	m = send(t, m, fast())
	m = send(t, m, slow())

	memos := m.view.Memos()
	if len(memos) != 1 || memos[0].ID != "new" {
		t.Errorf("expected the latest response to win, got %+v", memos)
	}
}

func TestDiaryWizardMovieScenario(t *testing.T) {
	src := &mockSource{}
	m := newTestModel(src)
	m = send(t, m, runeKey("t"))
	m = send(t, m, runeKey("w"))

	if m.view.Wizard().Stage() != diary.StepCategory {
		t.Fatalf("stage = %v, want category", m.view.Wizard().Stage())
	}
	view := stripANSI(m.View())
	for _, c := range record.Categories {
		if !strings.Contains(view, string(c)) {
			t.Errorf("category step missing %q", c)
		}
	}
	if !strings.Contains(view, "이전 단계") || !strings.Contains(view, "다음 단계") {
		t.Errorf("category step footer:\n%s", view)
	}

	// Advance without a selection is a no-op.
	m = send(t, m, runeKey("n"))
	if m.view.Wizard().Stage() != diary.StepCategory {
		t.Fatal("advanced without a category")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, runeKey("n"))

	if m.view.Wizard().Stage() != diary.StepContent {
		t.Fatalf("stage = %v, want content", m.view.Wizard().Stage())
	}
	if c, _ := m.view.Wizard().Category(); c != record.CategoryMovie {
		t.Errorf("category = %q, want 영화", c)
	}
	if m.view.Form() != (diary.FormData{}) {
		t.Errorf("form = %+v, want empty", m.view.Form())
	}
	view = stripANSI(m.View())
	for _, want := range []string{"영화", titlePlaceholder, contentPlaceholder, "등록하기"} {
		if !strings.Contains(view, want) {
			t.Errorf("content step missing %q:\n%s", want, view)
		}
	}
}

func TestDiaryWriteAndSave(t *testing.T) {
	src := &mockSource{}
	m := newTestModel(src)
	m = send(t, m, runeKey("t"))
	m = send(t, m, runeKey("w"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, runeKey("n"))

	m = send(t, m, runeKey("산책"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, runeKey("한강까지 걸었다"))

	if got := m.view.Form(); got.Title != "산책" || got.Content != "한강까지 걸었다" {
		t.Fatalf("form = %+v", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.view.Wizard().Editing() {
		t.Error("wizard still open after save")
	}
	if len(src.created) != 1 {
		t.Fatalf("expected one created record, got %d", len(src.created))
	}
	want := diary.Draft{Day: "2024-03-05", Category: record.CategoryDaily, Title: "산책", Content: "한강까지 걸었다"}
	if src.created[0] != want {
		t.Errorf("draft = %+v, want %+v", src.created[0], want)
	}
	if len(m.view.Records()) != 1 {
		t.Errorf("expected refetch to show the saved record, got %d", len(m.view.Records()))
	}

	// Reopening starts over.
	m = send(t, m, runeKey("w"))
	if m.view.Wizard().Stage() != diary.StepCategory || m.view.Form() != (diary.FormData{}) {
		t.Errorf("reopen: stage=%v form=%+v", m.view.Wizard().Stage(), m.view.Form())
	}
	if _, ok := m.view.Wizard().Category(); ok {
		t.Error("reopen kept the previous category")
	}
}

func TestDiaryContentStepEscRetreats(t *testing.T) {
	m := newTestModel(&mockSource{})
	m = send(t, m, runeKey("t"))
	m = send(t, m, runeKey("w"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.view.Wizard().Stage() != diary.StepCategory {
		t.Errorf("stage = %v, want category", m.view.Wizard().Stage())
	}
	if _, ok := m.view.Wizard().Category(); ok {
		t.Error("retreat should clear the category")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view.Wizard().Editing() {
		t.Error("esc on the category step should close the wizard")
	}
}

func TestDiaryWriteKeyIgnoredInMemoMode(t *testing.T) {
	m := newTestModel(&mockSource{})
	m = send(t, m, runeKey("w"))
	if m.view.Wizard().Editing() {
		t.Error("authoring should only open in record mode")
	}
}

func TestDiarySaveWithoutPersistence(t *testing.T) {
	src := &mockSource{}
	m := newTestModel(src)
	m.cfg.PersistRecords = false
	m = send(t, m, runeKey("t"))
	m = send(t, m, runeKey("w"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.view.Wizard().Editing() {
		t.Error("wizard still open after save")
	}
	if len(src.created) != 0 {
		t.Errorf("expected nothing persisted, got %d", len(src.created))
	}
}

func TestDiaryQuit(t *testing.T) {
	m := newTestModel(&mockSource{})
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestDiaryViewFillsScreen(t *testing.T) {
	m := newTestModel(&mockSource{})
	if got := countLines(m.View()); got != 30 {
		t.Errorf("expected 30 lines, got %d", got)
	}
}

func TestDiaryInitThenRefreshUsesFreshToken(t *testing.T) {
	src := &mockSource{days: map[string]diary.Snapshot{
		"2024-03-05": {Chats: []record.Memo{{ID: "m1", Date: "2024-03-05", Content: "첫 메모"}}},
	}}
	m := newTestModel(src)

	mount, ok := m.Init()().(fetchedMsg)
	if !ok {
		t.Fatal("Init should return a fetch")
	}
	m = send(t, m, mount)
	if len(m.view.Memos()) != 1 {
		t.Fatalf("mount fetch not applied, memos = %+v", m.view.Memos())
	}

	next, cmd := m.Update(runeKey("r"))
	m = next.(diaryModel)
	refresh := cmd().(fetchedMsg)
	if refresh.req.Token <= mount.req.Token {
		t.Errorf("refresh token %d should follow mount token %d", refresh.req.Token, mount.req.Token)
	}
}
