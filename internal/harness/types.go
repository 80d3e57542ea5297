package harness

import "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"

// TraceEvent records one engine call of a scenario run and what it
// returned. Only the fields relevant to the operation are set.
type TraceEvent struct {
	Step    int    `json:"step"`
	Op      string `json:"op"`
	Target  string `json:"target,omitempty"`
	Outcome string `json:"outcome"` // "ok" or the error code

	Answer   string                 `json:"answer,omitempty"`
	Progress *model.AreaProgress    `json:"progress,omitempty"`
	Session  *model.SessionProgress `json:"session,omitempty"`
	Defects  []string               `json:"defects,omitempty"`
	Score    *int                   `json:"score,omitempty"`
}

// OutcomeOK marks a successful step in the trace.
const OutcomeOK = "ok"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// SessionID is the id of the session the scenario opened.
	SessionID string `json:"session_id"`

	// Trace contains one event per engine call, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
