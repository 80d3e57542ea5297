package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/engine"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type       string   // Assertion type for categorization
	Area       string   // Area the assertion was scoped to, if any
	Mismatches []string // One entry per expected field that did not hold
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Area != "" {
		fmt.Fprintf(&buf, " (area %s)", e.Area)
	}
	for _, m := range e.Mismatches {
		fmt.Fprintf(&buf, "\n  %s", m)
	}
	return buf.String()
}

// EvaluateAssertions checks each assertion against the engine's current
// view of the session and returns one message per failure.
func EvaluateAssertions(ctx context.Context, eng *engine.Engine, sessionID string, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(ctx, eng, sessionID, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i+1, err))
		}
	}
	return errs
}

func evaluateAssertion(ctx context.Context, eng *engine.Engine, sessionID string, a Assertion) error {
	obs, err := observe(ctx, eng, sessionID, a)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Type, err)
	}
	if mismatches := compareExpect(a.Expect, obs); len(mismatches) > 0 {
		return &AssertionError{Type: a.Type, Area: a.Area, Mismatches: mismatches}
	}
	return nil
}

func observe(ctx context.Context, eng *engine.Engine, sessionID string, a Assertion) (observation, error) {
	switch a.Type {
	case AssertSessionStatus:
		sess, err := eng.GetSession(ctx, sessionID)
		if err != nil {
			return observation{}, err
		}
		return observation{status: string(sess.Status)}, nil

	case AssertAreaProgress:
		p, err := eng.ComputeAreaProgress(ctx, a.Area, sessionID)
		if err != nil {
			return observation{}, err
		}
		return progressObservation(p.Status, p.TotalRequired, p.Completed, p.PendingDefects, p.Percentage), nil

	case AssertPendingDefects:
		n, err := eng.CountPendingDefects(ctx, sessionID, a.Area)
		if err != nil {
			return observation{}, err
		}
		return observation{pendingDefects: &n}, nil

	case AssertScore:
		score, err := eng.SessionCompliance(ctx, sessionID, a.Area)
		if err != nil {
			return observation{}, err
		}
		return observation{score: &score}, nil
	}
	return observation{}, fmt.Errorf("unknown assertion type %q", a.Type)
}
