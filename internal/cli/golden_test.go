package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against the given database and returns stdout.
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--db", db}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// TestCLI_FullFlow drives one auction from initialization through
// settlement and compares every command's text output against golden
// files. Regenerate with: go test ./internal/cli -update
func TestCLI_FullFlow(t *testing.T) {
	g := newGoldie(t)
	db := filepath.Join(t.TempDir(), "auction.db")

	out, err := execute(t, db, "init",
		"--config", "testdata/auction.yaml", "--height", "200000")
	require.NoError(t, err)
	g.Assert(t, "init", []byte(out))

	// Rejections print the machine-readable code and exit 1.
	out, err = execute(t, db, "bid", "80", "--bidder", "buyer", "--height", "200000")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	g.Assert(t, "bid_below_reserve", []byte(out))

	out, err = execute(t, db, "bid", "110", "--bidder", "buyer", "--height", "200000")
	require.NoError(t, err)
	g.Assert(t, "bid", []byte(out))

	out, err = execute(t, db, "get", "config")
	require.NoError(t, err)
	g.Assert(t, "get_config", []byte(out))

	out, err = execute(t, db, "get", "seq")
	require.NoError(t, err)
	g.Assert(t, "get_seq", []byte(out))

	out, err = execute(t, db, "get", "bid", "1")
	require.NoError(t, err)
	g.Assert(t, "get_bid", []byte(out))

	out, err = execute(t, db, "get", "best")
	require.NoError(t, err)
	g.Assert(t, "get_best", []byte(out))

	out, err = execute(t, db, "status", "--height", "200000")
	require.NoError(t, err)
	g.Assert(t, "status_open", []byte(out))

	out, err = execute(t, db, "settle", "110", "--payer", "buyer", "--height", "200300")
	require.NoError(t, err)
	g.Assert(t, "settle", []byte(out))

	out, err = execute(t, db, "status", "--height", "200300")
	require.NoError(t, err)
	g.Assert(t, "status_settled", []byte(out))

	out, err = execute(t, db, "settle", "110", "--payer", "buyer", "--height", "200300")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	g.Assert(t, "settle_already_sold", []byte(out))
}

func TestCLI_StatusNoBids(t *testing.T) {
	g := newGoldie(t)
	db := filepath.Join(t.TempDir(), "auction.db")

	_, err := execute(t, db, "init",
		"--config", "testdata/auction.yaml", "--height", "200000")
	require.NoError(t, err)

	out, err := execute(t, db, "status", "--height", "200200")
	require.NoError(t, err)
	g.Assert(t, "status_no_bids", []byte(out))
}

func TestCLI_QueryUninitialized(t *testing.T) {
	db := filepath.Join(t.TempDir(), "auction.db")

	out, err := execute(t, db, "get", "config")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [NOT_FOUND]")
}

func TestCLI_InvalidPrice(t *testing.T) {
	db := filepath.Join(t.TempDir(), "auction.db")

	_, err := execute(t, db, "init",
		"--config", "testdata/auction.yaml", "--height", "200000")
	require.NoError(t, err)

	_, err = execute(t, db, "bid", "not-a-number", "--bidder", "buyer", "--height", "200000")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCLI_MissingParamsFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "auction.db")

	_, err := execute(t, db, "init",
		"--config", "testdata/no-such-file.yaml", "--height", "200000")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
