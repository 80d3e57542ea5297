package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regenerate with:
//
//	go test ./internal/harness -run TestRunWithGolden -update
func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"lavatory_lifecycle", "cai_activities"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, loadTestScenario(t, name)))
		})
	}
}

func TestMarshalSnapshot(t *testing.T) {
	result := NewResult()
	result.SessionID = "s-1"
	score := 100
	result.AddTrace(TraceEvent{Step: 1, Op: OpScore, Outcome: OutcomeOK, Score: &score})

	data, err := MarshalSnapshot("tiny", result)
	require.NoError(t, err)
	assert.Equal(t, `{
  "scenario_name": "tiny",
  "session_id": "s-1",
  "trace": [
    {
      "step": 1,
      "op": "score",
      "outcome": "ok",
      "score": 100
    }
  ]
}
`, string(data))
}

func TestAssertGolden_ExistingResult(t *testing.T) {
	result, err := Run(context.Background(), loadTestScenario(t, "cai_activities"))
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, "cai_activities", result))
}
