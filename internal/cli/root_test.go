package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_InvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "get", "seq"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_JSONOutput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "auction.db")

	_, err := execute(t, db, "init",
		"--config", "testdata/auction.yaml", "--height", "200000")
	require.NoError(t, err)
	_, err = execute(t, db, "bid", "110", "--bidder", "buyer", "--height", "200000")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "get", "best")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "buyer", data["bidder"])
	assert.Equal(t, "110", data["price"])
	assert.Equal(t, false, data["sold"])
}

func TestRootCommand_JSONError(t *testing.T) {
	db := filepath.Join(t.TempDir(), "auction.db")

	_, err := execute(t, db, "init",
		"--config", "testdata/auction.yaml", "--height", "200000")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "bid", "80",
		"--bidder", "buyer", "--height", "200000")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BID_BELOW_RESERVE", resp.Error.Code)
}
