package harness

import (
	"time"

	"github.com/roach88/habitual/internal/analysis"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expectation matched.
	Pass bool `json:"pass"`

	// Now is the frozen time the analyses ran at.
	Now time.Time `json:"now"`

	// Habits is the overview of every active habit.
	Habits []analysis.HabitStatus `json:"habits"`

	// Series is the dense streak/break log of every active habit.
	Series []analysis.SeriesRecord `json:"series"`

	// Errors contains failed expectation messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult(now time.Time) *Result {
	return &Result{
		Pass:   true,
		Now:    now,
		Habits: []analysis.HabitStatus{},
		Series: []analysis.SeriesRecord{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
