package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bossgym/internal/logging"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	logging.SetOutput(io.Discard)
	t.Cleanup(func() { logging.SetOutput(nil) })

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "bossgym dev")
}

func TestRewardsListsBuiltins(t *testing.T) {
	out := run(t, "rewards")
	for _, name := range []string{"default", "multiboss", "sparse"} {
		assert.Contains(t, out, name)
	}
}

func TestSpaceMatchesFlags(t *testing.T) {
	out := run(t, "space", "--boss-count", "2", "--adds-per-boss", "1")

	var got struct {
		Space struct {
			ActionShape []int `json:"action_shape"`
			BossCount   int   `json:"boss_count"`
		} `json:"space"`
		Legacy []string `json:"legacy_actions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []int{4, 2, 4, 5}, got.Space.ActionShape)
	assert.Equal(t, 2, got.Space.BossCount)
	require.Len(t, got.Legacy, 12)
	assert.Equal(t, "DO_NOTHING", got.Legacy[0])
}

func TestSimulateSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	run(t, "simulate", "--boss-count", "1", "--adds-per-boss", "3", "--max-steps", "50",
		"--episodes", "3", "--workers", "2", "--policy", "random", "--out", path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, float64(3), got["runs"])
	assert.Equal(t, float64(0), got["failed"])

	total := 0.0
	for _, n := range got["by_termination"].(map[string]any) {
		total += n.(float64)
	}
	assert.Equal(t, float64(3), total)
	assert.LessOrEqual(t, got["avg_steps"].(float64), float64(50))
}
