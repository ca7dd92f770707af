package diary

import (
	"time"

	"github.com/chris-regnier/mindary/internal/record"
)

// Mode selects which dataset the view shows.
type Mode int

const (
	// ModeMemo shows the day's chat memos. It is the initial mode.
	ModeMemo Mode = iota
	// ModeRecord shows the day's records and allows authoring.
	ModeRecord
)

func (m Mode) String() string {
	if m == ModeRecord {
		return "record"
	}
	return "memo"
}

// FetchRequest asks for the dataset of Mode on Day. Token identifies the
// request; only the result for the latest token is applied.
type FetchRequest struct {
	Token uint64
	Day   string
	Mode  Mode
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Token    uint64
	Mode     Mode
	Snapshot Snapshot
	Err      error
}

// Draft is a record ready to be submitted after the wizard is saved.
type Draft struct {
	Day      string          `json:"date"`
	Category record.Category `json:"category"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
}

// View is the state behind the diary screen for one selected date.
type View struct {
	loc     *time.Location
	date    time.Time
	mode    Mode
	wizard  Wizard
	form    FormData
	memos   []record.Memo
	records []record.Record
	token   uint64
}

// NewView creates a view for date in memo mode with the wizard closed.
// Days are formatted in loc.
func NewView(date time.Time, loc *time.Location) View {
	if loc == nil {
		loc = time.UTC
	}
	return View{loc: loc, date: date}
}

// Date returns the selected date.
func (v *View) Date() time.Time { return v.date }

// Day returns the selected date as YYYY-MM-DD in the view's timezone.
func (v *View) Day() string { return record.FormatDay(v.date, v.loc) }

// Title returns the heading for the selected date.
func (v *View) Title() string { return record.Title(v.date, v.loc) }

// Location returns the timezone days are formatted in.
func (v *View) Location() *time.Location { return v.loc }

// Mode returns the active mode.
func (v *View) Mode() Mode { return v.mode }

// Wizard returns the authoring state.
func (v *View) Wizard() Wizard { return v.wizard }

// Form returns the form being written.
func (v *View) Form() FormData { return v.form }

// Memos returns the memos currently shown.
func (v *View) Memos() []record.Memo { return v.memos }

// Records returns the records currently shown.
func (v *View) Records() []record.Record { return v.records }

// Refresh issues a request for the current mode and date.
func (v *View) Refresh() FetchRequest {
	v.token++
	return FetchRequest{Token: v.token, Day: v.Day(), Mode: v.mode}
}

// Toggle flips the mode and issues the fetch for the new mode.
func (v *View) Toggle() FetchRequest {
	if v.mode == ModeMemo {
		v.mode = ModeRecord
	} else {
		v.mode = ModeMemo
	}
	return v.Refresh()
}

// SetDate selects date and issues the fetch for it.
func (v *View) SetDate(date time.Time) FetchRequest {
	v.date = date
	return v.Refresh()
}

// ShiftDate moves the selection by n days and issues the fetch for it.
func (v *View) ShiftDate(n int) FetchRequest {
	return v.SetDate(record.ShiftDay(v.date, n, v.loc))
}

// Apply installs res if it answers the latest request and succeeded.
// Failed or superseded results leave the shown data untouched.
func (v *View) Apply(res FetchResult) bool {
	if res.Token != v.token || res.Err != nil {
		return false
	}
	switch res.Mode {
	case ModeMemo:
		v.memos = res.Snapshot.Chats
	case ModeRecord:
		v.records = res.Snapshot.Records
	}
	return true
}

// BeginAuthoring opens the wizard at the category step with an empty form.
func (v *View) BeginAuthoring() {
	v.wizard = v.wizard.Begin()
	v.form = FormData{}
}

// SelectCategory chooses c on the category step.
func (v *View) SelectCategory(c record.Category) {
	v.wizard = v.wizard.Select(c)
}

// Advance moves to the content step if a category is selected.
func (v *View) Advance() {
	v.wizard = v.wizard.Advance()
}

// Retreat goes back to the category step, clearing the selection.
func (v *View) Retreat() {
	v.wizard = v.wizard.Retreat()
}

// Cancel closes the wizard without saving.
func (v *View) Cancel() {
	v.wizard = v.wizard.Cancel()
}

// UpdateForm merges p into the form while on the content step.
func (v *View) UpdateForm(p FormPatch) {
	if v.wizard.Stage() != StepContent {
		return
	}
	v.form = v.form.Merge(p)
}

// Save closes the wizard from the content step and returns what was written.
// It reports false, changing nothing, on any other stage.
func (v *View) Save() (Draft, bool) {
	category, ok := v.wizard.Category()
	if v.wizard.Stage() != StepContent || !ok {
		return Draft{}, false
	}
	d := Draft{
		Day:      v.Day(),
		Category: category,
		Title:    v.form.Title,
		Content:  v.form.Content,
	}
	v.wizard = v.wizard.Save()
	return d, true
}
