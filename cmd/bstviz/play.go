/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/seipan/bstviz/bst"
	"github.com/seipan/bstviz/render"
)

type step struct {
	op  bst.Op
	key bst.Int
}

var playCmd = &cobra.Command{
	Use:   "play OP...",
	Short: "animate operations in the terminal",
	Long: `Each OP is "insert:5", "delete:5" or "search:5", or the short forms +5, -5 and ?5.
All operations are validated before the first one runs. Put -- before the
arguments when using the -5 form.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delay, err := cmd.Flags().GetDuration("delay")
		if err != nil {
			return err
		}
		plain, err := cmd.Flags().GetBool("plain")
		if err != nil {
			return err
		}
		trace, err := cmd.Flags().GetBool("trace")
		if err != nil {
			return err
		}

		steps, err := parseSteps(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var onFrame bst.FrameFunc
		rec := &bst.Recorder{}
		if trace {
			onFrame = rec.Record
		} else {
			onFrame = render.NewText(out, plain).Draw
		}
		a := bst.NewAnimator(bst.New(), onFrame, bst.WithDelay(delay))
		for _, s := range steps {
			res, found := a.Apply(s.op, s.key)
			if s.op == bst.OpSearch && !found {
				fmt.Fprintf(out, "%d is not in the tree\n", s.key)
			}
			logger.Debug("step done", "op", s.op, "key", s.key, "changed", res.Changed, "frames", res.Frames)
		}
		if trace {
			fmt.Fprint(out, rec.String())
		}
		return a.Tree().Check()
	},
}

func parseSteps(args []string) ([]step, error) {
	steps := make([]step, 0, len(args))
	for _, arg := range args {
		var opName, keyStr string
		if i := strings.IndexByte(arg, ':'); i >= 0 {
			opName, keyStr = arg[:i], arg[i+1:]
		} else if arg != "" {
			opName, keyStr = arg[:1], arg[1:]
		}
		op, err := bst.ParseOp(opName)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", arg)
		}
		key, err := bst.ParseInt(keyStr)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %q", arg)
		}
		steps = append(steps, step{op: op, key: key})
	}
	return steps, nil
}

func init() {
	playCmd.Flags().Duration("delay", envDuration("BSTVIZ_DELAY", bst.DefaultDelay), "pause between animation frames")
	playCmd.Flags().Bool("plain", false, "mark highlighted nodes with symbols instead of colour")
	playCmd.Flags().Bool("trace", false, "print a one-line-per-frame trace instead of drawing trees")
}
