package bst

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func noSleep(time.Duration) {}

func TestAnimate(t *testing.T) {
	tree := New()
	rec := &Recorder{}
	a := NewAnimator(tree, rec.Record, WithSleep(noSleep))

	keys := func(td *datadriven.TestData) []Int {
		var out []Int
		for _, arg := range td.CmdArgs {
			n, err := strconv.Atoi(arg.Key)
			require.NoError(t, err)
			out = append(out, Int(n))
		}
		return out
	}

	datadriven.RunTest(t, "testdata/animate", func(t *testing.T, td *datadriven.TestData) string {
		var buf strings.Builder
		switch td.Cmd {
		case "build":
			tree.Clear(false)
			for _, k := range keys(td) {
				tree.Insert(k)
			}
			require.NoError(t, tree.Check())
			return Format(tree.Root()) + "\n"

		case "insert", "delete", "search":
			op, err := ParseOp(td.Cmd)
			require.NoError(t, err)
			for _, k := range keys(td) {
				rec.Reset()
				res, found := a.Apply(op, k)
				buf.WriteString(rec.String())
				require.Equal(t, len(rec.Steps()), res.Frames)
				if op == OpSearch {
					fmt.Fprintf(&buf, "found=%t\n", found)
				} else {
					fmt.Fprintf(&buf, "changed=%t\n", res.Changed)
				}
				require.NoError(t, tree.Check())
			}
			return buf.String()

		case "layout":
			ps := Positions(tree.Root())
			if ps == nil {
				return "<empty>\n"
			}
			for _, p := range ps {
				fmt.Fprintf(&buf, "%v x=%d y=%d\n", p.Item, p.X, p.Y)
			}
			return buf.String()

		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestAnimatorPauses(t *testing.T) {
	tree := New()
	for _, k := range []Int{5, 3, 8} {
		tree.Insert(k)
	}
	var pauses []time.Duration
	var frames int
	a := NewAnimator(tree, func(Frame) { frames++ }, WithDelay(10*time.Millisecond), WithSleep(func(d time.Duration) {
		pauses = append(pauses, d)
	}))

	// visit 5, visit 3, then the final redraw which does not pause.
	res := a.Insert(Int(1))
	require.True(t, res.Changed)
	require.Equal(t, 3, frames)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, pauses)

	pauses, frames = nil, 0
	require.True(t, a.Search(Int(8)))
	require.Equal(t, 3, frames)
	require.Len(t, pauses, 3)
}

func TestAnimatorZeroDelaySkipsSleep(t *testing.T) {
	tree := New()
	a := NewAnimator(tree, nil, WithDelay(0), WithSleep(func(time.Duration) {
		t.Fatal("unexpected sleep")
	}))
	for _, k := range []Int{2, 1, 3} {
		a.Insert(k)
	}
	require.True(t, a.Search(Int(3)))
	require.Equal(t, []Item{Int(1), Int(2), Int(3)}, tree.Keys())
}

func TestFrameLayoutIsCurrent(t *testing.T) {
	tree := New()
	var last Frame
	var xs []int
	a := NewAnimator(tree, func(f Frame) {
		last = f
		if f.Highlight != nil {
			xs = append(xs, f.Highlight.X())
		}
	}, WithSleep(noSleep))
	for _, k := range []Int{5, 3, 8, 1, 4} {
		a.Insert(k)
	}
	require.Nil(t, last.Highlight)
	require.Equal(t, 3, last.Root.X())

	xs = nil
	require.True(t, a.Search(Int(4)))
	// 5, 3, 4 and the found frame for 4.
	require.Equal(t, []int{3, 1, 2, 2}, xs)
	require.True(t, last.Found)
	require.Equal(t, Int(4), last.Highlight.Item())
}

func TestHighlightByIdentity(t *testing.T) {
	tree := New()
	for _, k := range []Int{50, 30, 70} {
		tree.Insert(k)
	}
	rootID := tree.Root().ID()
	succID := tree.Root().Right().ID()

	rec := &Recorder{}
	a := NewAnimator(tree, rec.Record, WithSleep(noSleep))
	a.Delete(Int(50))

	// The successor copy leaves two nodes keyed 70 for a moment; the highlight
	// must point at the successor node, not the root that now shares its key.
	steps := rec.Steps()
	require.Len(t, steps, 5)
	require.Equal(t, rootID, steps[0].HighlightID)
	require.Equal(t, rootID, steps[1].HighlightID)
	require.Equal(t, succID, steps[2].HighlightID)
	require.Equal(t, succID, steps[3].HighlightID)
	require.Equal(t, "70(30,70)", steps[2].Tree)
	require.Zero(t, steps[4].HighlightID)

	require.Equal(t, rootID, tree.Root().ID())
	require.Equal(t, Int(70), tree.Root().Item())
	require.Equal(t, 2, tree.Len())
}

func TestOpString(t *testing.T) {
	require.Equal(t, "insert", OpInsert.String())
	require.Equal(t, "delete", OpDelete.String())
	require.Equal(t, "search", OpSearch.String())
	require.Equal(t, "unknown", Op(9).String())
}
