package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/smoke.yaml")
	require.NoError(t, err)

	assert.Equal(t, "smoke", s.Name)
	assert.Equal(t, []int{1, 2}, s.TaxiDraws)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, "restaurant", s.Steps[0].Domain)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "..", "db"), s.DataDir())
}

func TestLoadScenario_Invalid(t *testing.T) {
	writeScenario := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "s.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing name", "data: db\nsteps:\n  - domain: train\n", "missing name"},
		{"missing data", "name: x\nsteps:\n  - domain: train\n", "missing data"},
		{"no steps", "name: x\ndata: db\n", "no steps"},
		{"step without domain", "name: x\ndata: db\nsteps:\n  - expect_count: 1\n", "missing domain"},
		{"bad yaml", "name: [\n", "parse scenario"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRun_StampsScriptedTokens(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/smoke.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.Len(t, result.Steps, 3)
	// One token per step, in order, same on every run.
	assert.Equal(t, "q-1", result.Steps[0].Token)
	assert.Equal(t, "q-2", result.Steps[1].Token)
	assert.Equal(t, "q-3", result.Steps[2].Token)
}

func TestRun_ExpectCountMismatch(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/smoke.yaml")
	require.NoError(t, err)

	wrong := 5
	s.Steps[0].ExpectCount = &wrong

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 matches")
}

func TestRun_UnknownDomainStep(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/smoke.yaml")
	require.NoError(t, err)

	s.Steps[0].Domain = "bus"

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown domain")
}

func TestScenario_Smoke(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/smoke.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, s))
}

func TestScenario_Facilities(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/facilities.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, s))
}
