package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanDataset(t *testing.T) {
	out, err := executeCommand(t, "validate", "testdata/db")
	require.NoError(t, err)
	assert.Contains(t, out, "all datasets valid")
}

func TestValidate_CleanDatasetJSON(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "validate", "testdata/db")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Valid bool `json:"valid"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
}

func TestValidate_MissingFilesFail(t *testing.T) {
	out, err := executeCommand(t, "validate", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "failed validation")
}
