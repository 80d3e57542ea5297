package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/engine"
	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/store/memstore"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/testutil"
)

// Harness drives one scenario against a fresh engine.
type Harness struct {
	engine    *engine.Engine
	logger    *slog.Logger
	sessionID string
}

// Option configures a harness run.
type Option func(*Harness)

// WithLogger routes engine and harness logs to l. Runs are silent by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Each run gets a fresh in-memory store, a DeterministicClock and
// SequentialIDs, so the same scenario always produces the same trace.
// Expectation and assertion failures are reported in Result.Errors; the
// returned error is reserved for scenarios that cannot run at all.
//
// Execution flow:
// 1. Build the catalog from the scenario document
// 2. Create the session
// 3. Execute steps, checking each expect clause
// 4. Evaluate assertions against the final state
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(h)
	}

	cat, err := catalog.FromDocuments(scenario.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	module, err := model.ParseModuleKind(scenario.Session.Module)
	if err != nil {
		return nil, fmt.Errorf("invalid session module: %w", err)
	}

	h.engine = engine.New(cat, memstore.New(),
		engine.WithClock(testutil.NewDeterministicClock()),
		engine.WithIDGenerator(testutil.NewSequentialIDs("s")),
		engine.WithLogger(h.logger),
	)

	sess, err := h.engine.CreateSession(ctx, scenario.Session.Coach, module)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	h.sessionID = sess.ID

	result := NewResult()
	result.SessionID = sess.ID
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i+1, step, result)
	}

	for _, msg := range EvaluateAssertions(ctx, h.engine, sess.ID, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished", "scenario", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

// observation is what a step or assertion saw, in the shape Expect
// matches against.
type observation struct {
	status         string
	total          *int
	completed      *int
	pendingDefects *int
	percentage     *int
	score          *int
}

func progressObservation(status model.ProgressStatus, total, completed, pending, percentage int) observation {
	return observation{
		status:         string(status),
		total:          &total,
		completed:      &completed,
		pendingDefects: &pending,
		percentage:     &percentage,
	}
}

// executeStep runs one step, records it in the trace and checks its
// expect clause.
func (h *Harness) executeStep(ctx context.Context, n int, step Step, result *Result) {
	event := TraceEvent{Step: n, Op: step.Op}
	obs, err := h.call(ctx, step, &event)

	event.Outcome = OutcomeOK
	if err != nil {
		event.Outcome = string(apperrors.CodeOf(err))
	}
	result.AddTrace(event)

	h.logger.Debug("step executed", "step", n, "op", step.Op, "target", event.Target, "outcome", event.Outcome)

	want := step.Expect
	if want == nil {
		want = &Expect{}
	}
	switch {
	case want.Error != "" && err == nil:
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got success", n, step.Op, want.Error))
		return
	case want.Error != "" && event.Outcome != want.Error:
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got %s: %v", n, step.Op, want.Error, event.Outcome, err))
		return
	case want.Error == "" && err != nil:
		result.AddError(fmt.Sprintf("step %d (%s): unexpected error: %v", n, step.Op, err))
		return
	case err != nil:
		return
	}

	for _, mismatch := range compareExpect(*want, obs) {
		result.AddError(fmt.Sprintf("step %d (%s): %s", n, step.Op, mismatch))
	}
}

func (h *Harness) key(step Step) model.AnswerKey {
	return model.AnswerKey{
		SessionID:     h.sessionID,
		QuestionID:    step.Question,
		CompartmentID: step.Compartment,
		ActivityType:  step.Activity,
	}
}

// call dispatches a step to the engine and fills the trace event.
func (h *Harness) call(ctx context.Context, step Step, event *TraceEvent) (observation, error) {
	switch step.Op {
	case OpSubmit:
		key := h.key(step)
		event.Target = key.String()
		a, err := h.engine.SubmitAnswer(ctx, engine.Submission{
			Key:           key,
			Status:        step.Status,
			ObservedValue: step.Value,
			Reasons:       step.Reasons,
			Remarks:       step.Remarks,
			BeforePhoto:   step.BeforePhoto,
		})
		if err != nil {
			return observation{}, err
		}
		event.Answer = answerLabel(a)
		return observation{status: string(a.Outcome.Status())}, nil

	case OpResolve:
		key := h.key(step)
		event.Target = key.String()
		a, err := h.engine.ResolveDefect(ctx, key, step.AfterPhoto, step.Remark)
		if err != nil {
			return observation{}, err
		}
		event.Answer = answerLabel(a)
		return observation{status: string(a.Outcome.Status())}, nil

	case OpProgress:
		event.Target = step.Area
		p, err := h.engine.ComputeAreaProgress(ctx, step.Area, h.sessionID)
		if err != nil {
			return observation{}, err
		}
		event.Progress = &p
		return progressObservation(p.Status, p.TotalRequired, p.Completed, p.PendingDefects, p.Percentage), nil

	case OpSessionProgress:
		event.Target = h.sessionID
		p, err := h.engine.ComputeSessionProgress(ctx, h.sessionID)
		if err != nil {
			return observation{}, err
		}
		event.Session = &p
		return progressObservation(p.Status, p.TotalRequired, p.Completed, p.PendingDefects, p.Percentage), nil

	case OpDefects:
		event.Target = step.Area
		defects, err := h.engine.ListPendingDefects(ctx, h.sessionID, step.Area)
		if err != nil {
			return observation{}, err
		}
		for _, d := range defects {
			event.Defects = append(event.Defects, d.Key.String())
		}
		n := len(defects)
		return observation{pendingDefects: &n}, nil

	case OpScore:
		event.Target = step.Area
		score, err := h.engine.SessionCompliance(ctx, h.sessionID, step.Area)
		if err != nil {
			return observation{}, err
		}
		event.Score = &score
		return observation{score: &score}, nil

	case OpComplete:
		event.Target = h.sessionID
		sess, err := h.engine.CompleteSession(ctx, h.sessionID)
		if err != nil {
			return observation{}, err
		}
		return observation{status: string(sess.Status)}, nil
	}
	return observation{}, apperrors.Newf(apperrors.CodeValidation, "unknown op %q", step.Op)
}

// answerLabel renders an answer's status for the trace, marking resolved
// defects.
func answerLabel(a model.Answer) string {
	label := string(a.Outcome.Status())
	if a.Resolved() {
		label += " (resolved)"
	}
	return label
}

// compareExpect returns one message per expected field that obs does not
// match. A field the observation does not carry counts as a mismatch.
func compareExpect(want Expect, obs observation) []string {
	var out []string
	if want.Status != "" && want.Status != obs.status {
		out = append(out, fmt.Sprintf("status: expected %s, got %s", want.Status, orNone(obs.status)))
	}
	checkInt := func(name string, want, got *int) {
		if want == nil {
			return
		}
		if got == nil {
			out = append(out, fmt.Sprintf("%s: expected %d, not reported by this operation", name, *want))
			return
		}
		if *want != *got {
			out = append(out, fmt.Sprintf("%s: expected %d, got %d", name, *want, *got))
		}
	}
	checkInt("total", want.Total, obs.total)
	checkInt("completed", want.Completed, obs.completed)
	checkInt("pending_defects", want.PendingDefects, obs.pendingDefects)
	checkInt("percentage", want.Percentage, obs.percentage)
	checkInt("score", want.Score, obs.score)
	return out
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
