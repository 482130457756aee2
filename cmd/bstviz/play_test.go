package main

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/seipan/bstviz/bst"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps([]string{"insert:5", "+3", "?-2", "delete:5", "remove:-7"})
	require.NoError(t, err)
	require.Equal(t, []step{
		{bst.OpInsert, 5},
		{bst.OpInsert, 3},
		{bst.OpSearch, -2},
		{bst.OpDelete, 5},
		{bst.OpDelete, -7},
	}, steps)

	_, err = parseSteps([]string{"insert:x"})
	require.True(t, errors.Is(err, bst.ErrInvalidKey))

	_, err = parseSteps([]string{"rotate:1"})
	require.True(t, errors.Is(err, bst.ErrUnknownOp))

	_, err = parseSteps([]string{""})
	require.True(t, errors.Is(err, bst.ErrUnknownOp))
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPlayTrace(t *testing.T) {
	out := run(t, "play", "--delay=0", "--trace",
		"insert:5", "insert:3", "insert:8", "insert:1", "insert:4", "delete:5", "search:4", "search:9")
	require.Contains(t, out, "delete 5 #3: visit 8 tree=8(3(1,4),8)\n")
	require.Contains(t, out, "search 4 #4: found 4 tree=8(3(1,4),-)\n")
	require.Contains(t, out, "9 is not in the tree\n")
}

func TestPlayText(t *testing.T) {
	out := run(t, "play", "--delay=0", "--trace=false", "--plain", "+2", "+1", "?1")
	require.Contains(t, out, "search 1 #2: visit 1")
	require.Contains(t, out, "search 1 #3: found 1")
	require.Contains(t, out, "L 1 *")
}

func TestPlayRejectsBeforeRunning(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"play", "--delay=0", "--trace", "insert:1", "insert:one"})
	require.Error(t, rootCmd.Execute())
	require.NotContains(t, out.String(), "insert 1 #1")
}

func TestBench(t *testing.T) {
	out := run(t, "bench", "-N", "100")
	require.Contains(t, out, "STRUCTURE")
	require.Contains(t, out, "bst")
}
