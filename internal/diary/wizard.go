// Package diary holds the date-scoped diary view state: the memo/record
// mode toggle, the two-step record authoring wizard, the form being
// written, and the fetch bookkeeping that keeps late responses from
// overwriting newer data. It has no UI dependencies.
package diary

import "github.com/chris-regnier/mindary/internal/record"

// Stage is the position of the authoring wizard.
type Stage int

const (
	// Closed means no authoring session is open.
	Closed Stage = iota
	// StepCategory is step 0: choosing a category.
	StepCategory
	// StepContent is step 1: writing title and content.
	StepContent
)

func (s Stage) String() string {
	switch s {
	case Closed:
		return "closed"
	case StepCategory:
		return "category"
	case StepContent:
		return "content"
	default:
		return "unknown"
	}
}

// Wizard is the authoring state machine. The zero value is Closed.
// Fields are only set through the transition methods, so a Wizard in
// StepContent always carries a category and a Closed one never does.
type Wizard struct {
	stage    Stage
	category record.Category
}

// Stage returns the current stage.
func (w Wizard) Stage() Stage { return w.stage }

// Editing reports whether an authoring session is open.
func (w Wizard) Editing() bool { return w.stage != Closed }

// Step returns 1 on the content step and 0 otherwise.
func (w Wizard) Step() int {
	if w.stage == StepContent {
		return 1
	}
	return 0
}

// Category returns the selected category, if any.
func (w Wizard) Category() (record.Category, bool) {
	return w.category, w.category != ""
}

// Begin opens a fresh session at the category step with nothing selected.
func (w Wizard) Begin() Wizard {
	return Wizard{stage: StepCategory}
}

// Select chooses c on the category step, replacing any earlier choice.
// It does not advance and is ignored on other stages or for unknown categories.
func (w Wizard) Select(c record.Category) Wizard {
	if w.stage != StepCategory || !c.Valid() {
		return w
	}
	w.category = c
	return w
}

// Advance moves to the content step when a category is selected.
func (w Wizard) Advance() Wizard {
	if w.stage != StepCategory || w.category == "" {
		return w
	}
	w.stage = StepContent
	return w
}

// Retreat returns to the category step and clears the selection,
// from either step. The cleared category on the way back from the
// content step is intentional: the user picks again.
func (w Wizard) Retreat() Wizard {
	if w.stage == Closed {
		return w
	}
	return Wizard{stage: StepCategory}
}

// Save closes the session from the content step.
func (w Wizard) Save() Wizard {
	if w.stage != StepContent {
		return w
	}
	return Wizard{}
}

// Cancel abandons the session from any stage.
func (w Wizard) Cancel() Wizard {
	return Wizard{}
}
