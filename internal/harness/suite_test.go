package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenarios(t *testing.T) {
	paths, err := FindScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "scenarios", "cai_activities.yaml"),
		filepath.Join("testdata", "scenarios", "lavatory_lifecycle.yaml"),
	}, paths)
}

func TestFindScenarios_MissingDir(t *testing.T) {
	_, err := FindScenarios(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario directory")
}

func TestRunSuite_AllPass(t *testing.T) {
	result, err := RunSuite(context.Background(), filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalScenarios)
	assert.Equal(t, 2, result.Passed)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Failures)
}

func TestRunSuite_CollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a_ok.yaml", minimalScenario)
	writeScenario(t, dir, "b_broken.yml", "name: broken\n")
	writeScenario(t, dir, "c_failing.yaml", minimalScenario+`assertions:
  - type: score
    expect: {score: 0}
`)
	writeScenario(t, dir, "notes.txt", "ignored")

	result, err := RunSuite(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalScenarios)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Failures, 2)

	assert.Equal(t, filepath.Join(dir, "b_broken.yml"), result.Failures[0].ScenarioPath)
	assert.Contains(t, result.Failures[0].Error, "failed to load scenario")
	assert.Equal(t, filepath.Join(dir, "c_failing.yaml"), result.Failures[1].ScenarioPath)
	assert.Contains(t, result.Failures[1].Error, "scenario assertions failed")
	assert.Contains(t, result.Failures[1].Error, "score: expected 0, got 100")
}
