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
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/seipan/bstviz/bst"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "compare the tree against a map baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := cmd.Flags().GetInt("N")
		if err != nil {
			return err
		}
		sorted, err := cmd.Flags().GetBool("sorted")
		if err != nil {
			return err
		}
		if n < 2 {
			return errors.Newf("N must be at least 2, got %d", n)
		}

		keys := benchKeys(n, sorted)
		set := bst.NewKeySet()
		defer set.Close()
		tree := bst.New()

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"structure", "operation", "N", "elapsed"})
		row := func(structure, op string, d time.Duration) {
			table.Append([]string{structure, op, fmt.Sprint(n), d.String()})
		}
		row("map", "set", MeasurerSet(keys, set, SetMap))
		row("map", "get", MeasurerSet(keys, set, GetMap))
		row("bst", "insert", MeasurerTree(keys, tree, SetTree))
		row("bst", "get", MeasurerTree(keys, tree, GetTree))
		table.Render()

		logger.Info("bench complete", "n", n, "sorted", sorted, "height", tree.Height())
		return tree.Check()
	},
}

// benchKeys returns 0..n-1, shuffled unless sorted is set. Sorted input
// degenerates the tree into a list.
func benchKeys(n int, sorted bool) []bst.Int {
	keys := make([]bst.Int, n)
	for i := range keys {
		keys[i] = bst.Int(i)
	}
	if !sorted {
		rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	}
	return keys
}

func SetMap(keys []bst.Int, set *bst.KeySet) {
	for _, k := range keys {
		set.Set(k)
	}
}

func GetMap(keys []bst.Int, set *bst.KeySet) {
	for _, k := range keys {
		set.Has(k)
	}
}

func SetTree(keys []bst.Int, tree *bst.Tree) {
	for _, k := range keys {
		tree.Insert(k)
	}
}

func GetTree(keys []bst.Int, tree *bst.Tree) {
	for _, k := range keys {
		tree.Get(k)
	}
}

func MeasurerSet(keys []bst.Int, set *bst.KeySet, fnc func(keys []bst.Int, set *bst.KeySet)) time.Duration {
	start := time.Now()
	fnc(keys, set)
	return time.Since(start)
}

func MeasurerTree(keys []bst.Int, tree *bst.Tree, fnc func(keys []bst.Int, tree *bst.Tree)) time.Duration {
	start := time.Now()
	fnc(keys, tree)
	return time.Since(start)
}

func init() {
	benchCmd.Flags().IntP("N", "N", 10000, "number of keys in the tree")
	benchCmd.Flags().Bool("sorted", false, "insert keys in ascending order")
}
