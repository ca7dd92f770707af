package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
	"go.uber.org/zap"
)

const defaultFetchTimeout = 10 * time.Second

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth       int           // maximum content width (0 = no limit)
	Theme          Theme         // resolved theme
	Timeout        time.Duration // per-request timeout for the source
	PersistRecords bool          // submit saved records to the source
	Location       *time.Location
	Logger         *zap.Logger
	Now            func() time.Time
}

func (c TUIConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

type fetchedMsg struct {
	req diary.FetchRequest
	res diary.FetchResult
}

type savedMsg struct {
	rec record.Record
	err error
}

// diaryModel is the Bubble Tea model of the diary screen.
type diaryModel struct {
	src    diary.Source
	cfg    TUIConfig
	log    *zap.Logger
	view   diary.View
	writer RecordWriter
	cursor int // focused row on the category step
	// initReq is the mount fetch. Init runs on a copy and cannot advance the token.
	initReq diary.FetchRequest
	width  int
	height int
	ready  bool
}

func newDiaryModel(src diary.Source, date time.Time, cfg TUIConfig) diaryModel {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultFetchTimeout
	}
	m := diaryModel{
		src:    src,
		cfg:    cfg,
		log:    log,
		view:   diary.NewView(date, cfg.Location),
		writer: NewRecordWriter(cfg.Theme, 60),
	}
	m.initReq = m.view.Refresh()
	return m
}

func (m diaryModel) Init() tea.Cmd {
	return m.fetchCmd(m.initReq)
}

// fetchCmd runs req against the source off the update loop.
func (m diaryModel) fetchCmd(req diary.FetchRequest) tea.Cmd {
	src, timeout := m.src, m.cfg.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fetchedMsg{req: req, res: diary.Run(ctx, src, req)}
	}
}

func (m diaryModel) saveCmd(d diary.Draft) tea.Cmd {
	src, timeout := m.src, m.cfg.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		rec, err := src.CreateRecord(ctx, d)
		return savedMsg{rec: rec, err: err}
	}
}

func (m diaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if m.view.Apply(msg.res) {
			return m, nil
		}
		if msg.res.Err != nil {
			m.log.Warn("fetch failed",
				zap.String("date", msg.req.Day),
				zap.Stringer("mode", msg.req.Mode),
				zap.Uint64("token", msg.req.Token),
				zap.Error(msg.res.Err))
		} else {
			m.log.Debug("discarding stale response",
				zap.String("date", msg.req.Day),
				zap.Uint64("token", msg.req.Token))
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.log.Warn("saving record failed", zap.Error(msg.err))
			return m, nil
		}
		m.log.Info("record saved", zap.String("id", msg.rec.ID), zap.String("date", msg.rec.Date))
		return m, m.fetchCmd(m.view.Refresh())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.writer.SetWidth(m.contentWidth())
		return m, nil

	case tea.KeyMsg:
		switch m.view.Wizard().Stage() {
		case diary.StepContent:
			return m.updateContentStep(msg)
		case diary.StepCategory:
			return m.updateCategoryStep(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.view.Wizard().Stage() == diary.StepContent {
		return m.forwardToWriter(msg)
	}
	return m, nil
}

func (m diaryModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t":
		return m, m.fetchCmd(m.view.Toggle())
	case "left", "h":
		return m, m.fetchCmd(m.view.ShiftDate(-1))
	case "right", "l":
		return m, m.fetchCmd(m.view.ShiftDate(1))
	case ".":
		return m, m.fetchCmd(m.view.SetDate(m.cfg.now()))
	case "r":
		return m, m.fetchCmd(m.view.Refresh())
	case "w":
		if m.view.Mode() == diary.ModeRecord {
			m.view.BeginAuthoring()
			m.cursor = 0
		}
	}
	return m, nil
}

func (m diaryModel) updateCategoryStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(record.Categories)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.view.SelectCategory(record.Categories[m.cursor])
	case "n", "tab":
		m.view.Advance()
		if m.view.Wizard().Stage() == diary.StepContent {
			m.writer.Reset()
		}
	case "p", "backspace":
		m.view.Retreat()
	case "esc":
		m.view.Cancel()
	}
	return m, nil
}

func (m diaryModel) updateContentStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view.Retreat()
		m.cursor = 0
		return m, nil
	case "ctrl+s":
		d, ok := m.view.Save()
		if !ok || !m.cfg.PersistRecords {
			return m, nil
		}
		return m, m.saveCmd(d)
	}
	return m.forwardToWriter(msg)
}

func (m diaryModel) forwardToWriter(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.writer, cmd = m.writer.Update(msg, m.view.Form(), func(p diary.FormPatch) {
		m.view.UpdateForm(p)
	})
	return m, cmd
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m diaryModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m diaryModel) View() string {
	if !m.ready {
		// Dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}
	theme := m.cfg.Theme
	cw := m.contentWidth()

	title := theme.HeaderStyle().Render(m.view.Title())
	toggle := renderToggle(m.view.Mode() == diary.ModeRecord, theme)
	gap := max(cw-lipgloss.Width(title)-lipgloss.Width(toggle), 1)
	header := title + theme.HelpStyle().Render(strings.Repeat(" ", gap)) + toggle

	var body, footer string
	if m.view.Mode() == diary.ModeMemo {
		body = renderMemos(m.view.Day(), m.view.Memos(), theme, cw)
		footer = theme.HelpStyle().Render("t 기록  ←/→ 날짜  . 오늘  r 새로고침  q 종료")
	} else {
		body, footer = m.recordSection(cw)
	}

	return theme.PaintScreen(header+"\n\n"+body+"\n\n"+footer, m.width, m.height, cw)
}

// recordSection renders the record table or the wizard step in progress.
func (m diaryModel) recordSection(cw int) (string, string) {
	theme := m.cfg.Theme
	wiz := m.view.Wizard()
	columns := renderColumnHeader(theme, cw)

	switch wiz.Stage() {
	case diary.StepCategory:
		selected, _ := wiz.Category()
		body := columns + "\n" + renderCategories(m.cursor, selected, theme)
		footer := renderButtons(theme, "이전 단계", "다음 단계") + "\n" +
			theme.HelpStyle().Render("↑/↓ 이동  enter 선택  n 다음  p 이전  esc 취소")
		return body, footer
	case diary.StepContent:
		category, _ := wiz.Category()
		body := columns + "\n" + m.writer.View(category, m.view.Form())
		footer := renderButtons(theme, "이전 단계", "등록하기") + "\n" +
			theme.HelpStyle().Render("tab 필드 전환  ctrl+s 등록  esc 이전")
		return body, footer
	}

	body := columns + "\n" + renderRecordRows(m.view.Records(), theme)
	footer := renderButtons(theme, "작성하기") + "\n" +
		theme.HelpStyle().Render("w 작성  t 메모  ←/→ 날짜  . 오늘  r 새로고침  q 종료")
	return body, footer
}

// RunDiary launches the interactive diary screen for date.
func RunDiary(src diary.Source, date time.Time, cfg TUIConfig) error {
	m := newDiaryModel(src, date, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
