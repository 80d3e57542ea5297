package harness

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_LavatoryLifecycle(t *testing.T) {
	result, err := Run(context.Background(), loadTestScenario(t, "lavatory_lifecycle"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "s-1", result.SessionID)
	require.Len(t, result.Trace, 11)

	assert.Equal(t, "INVALID_STATE", result.Trace[5].Outcome)
	assert.Equal(t, "DEFICIENCY (resolved)", result.Trace[6].Answer)
	require.NotNil(t, result.Trace[8].Score)
	assert.Equal(t, 67, *result.Trace[8].Score)
}

func TestRun_Deterministic(t *testing.T) {
	s := loadTestScenario(t, "cai_activities")

	first, err := Run(context.Background(), s)
	require.NoError(t, err)
	second, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, first.Pass, "errors: %v", first.Errors)
	assert.Equal(t, first, second)
}

func TestRun_ReportsExpectationFailures(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: wrong_expectations
catalog:
  areas:
    - id: lavatory
      name: Lavatory
      items:
        - id: tap
          name: Tap
          questions:
            - {id: Q3, text: "Tap works?"}
session:
  coach: C1
  module: AMENITY
steps:
  - op: submit
    question: Q3
    status: DEFICIENCY
    reasons: [Dripping]
    expect: {status: DEFICIENCY}
  - op: complete
  - op: progress
    area: lavatory
    expect: {error: NOT_FOUND}
  - op: progress
    area: lavatory
    expect: {status: COMPLETED, percentage: 50}
  - op: score
    expect: {total: 1}
assertions:
  - type: session_status
    expect: {status: COMPLETED}
  - type: pending_defects
    expect: {pending_defects: 0}
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	require.Len(t, result.Errors, 7)
	assert.Equal(t, `step 1 (submit): unexpected error: VALIDATION: question "Q3": a before photo is required for a deficiency`, result.Errors[0])
	assert.True(t, strings.HasPrefix(result.Errors[1], "step 2 (complete): unexpected error: INVALID_STATE: "), result.Errors[1])
	assert.Equal(t, []string{
		"step 3 (progress): expected error NOT_FOUND, got success",
		"step 4 (progress): status: expected COMPLETED, got PENDING",
		"step 4 (progress): percentage: expected 50, got 0",
		"step 5 (score): total: expected 1, not reported by this operation",
		"assertion 1: Assertion failed: session_status\n  status: expected COMPLETED, got IN_PROGRESS",
	}, result.Errors[2:])

	assert.Equal(t, "VALIDATION", result.Trace[0].Outcome)
	assert.Equal(t, "INVALID_STATE", result.Trace[1].Outcome)
}

func TestRun_InvalidCatalog(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: dup
catalog:
  areas:
    - {id: a, name: A}
    - {id: a, name: Again}
session: {coach: C1, module: CAI}
steps: [{op: score}]
`))
	require.NoError(t, err)

	_, err = Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build catalog")
	assert.Contains(t, err.Error(), `duplicate area "a"`)
}

func TestCompareExpect(t *testing.T) {
	two, three := 2, 3

	tests := []struct {
		name string
		want Expect
		obs  observation
		out  []string
	}{
		{"empty expect", Expect{}, observation{status: "OK"}, nil},
		{"status match", Expect{Status: "OK"}, observation{status: "OK"}, nil},
		{"status mismatch", Expect{Status: "OK"}, observation{status: "NA"}, []string{"status: expected OK, got NA"}},
		{"status missing", Expect{Status: "OK"}, observation{}, []string{"status: expected OK, got <none>"}},
		{"int match", Expect{Score: &two}, observation{score: &two}, nil},
		{"int mismatch", Expect{Completed: &two}, observation{completed: &three}, []string{"completed: expected 2, got 3"}},
		{"int missing", Expect{Total: &two}, observation{}, []string{"total: expected 2, not reported by this operation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, compareExpect(tt.want, tt.obs))
		})
	}
}
