package bst

import (
	"fmt"
	"strings"
)

// Stepは、記録された1フレームです。コールバックの外でも使えるように、木は文字列として保存する。
type Step struct {
	Op          Op
	Key         Item
	Seq         int
	Highlight   Item
	HighlightID uint64
	Found       bool
	Tree        string
}

// Recorderは、フレームを順番に記録するFrameFuncを提供する。
//
//	rec := &bst.Recorder{}
//	a := bst.NewAnimator(t, rec.Record)
type Recorder struct {
	steps []Step
}

// Recordは、フレームをStepとして保存する。
func (r *Recorder) Record(f Frame) {
	s := Step{
		Op:    f.Op,
		Key:   f.Key,
		Seq:   f.Seq,
		Found: f.Found,
		Tree:  Format(f.Root),
	}
	if f.Highlight != nil {
		s.Highlight = f.Highlight.item
		s.HighlightID = f.Highlight.id
	}
	r.steps = append(r.steps, s)
}

func (r *Recorder) Steps() []Step {
	return r.steps
}

func (r *Recorder) Reset() {
	r.steps = r.steps[:0]
}

// Highlightedは、強調されたキーを記録順に返す。強調なしのフレームは含まない。
func (r *Recorder) Highlighted() []Item {
	var out []Item
	for _, s := range r.steps {
		if s.Highlight != nil {
			out = append(out, s.Highlight)
		}
	}
	return out
}

func (r *Recorder) String() string {
	var b strings.Builder
	for _, s := range r.steps {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (s Step) String() string {
	state := "redraw"
	switch {
	case s.Highlight != nil && s.Found:
		state = fmt.Sprintf("found %v", s.Highlight)
	case s.Highlight != nil:
		state = fmt.Sprintf("visit %v", s.Highlight)
	}
	return fmt.Sprintf("%s %v #%d: %s tree=%s", s.Op, s.Key, s.Seq, state, s.Tree)
}

// Formatは、木を "5(3(1,4),8)" のような前順の文字列で返す。欠けた子は "-" で表す。
func Format(root *Node) string {
	if root == nil {
		return "<empty>"
	}
	var b strings.Builder
	format(&b, root)
	return b.String()
}

func format(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteByte('-')
		return
	}
	fmt.Fprint(b, n.item)
	if n.left == nil && n.right == nil {
		return
	}
	b.WriteByte('(')
	format(b, n.left)
	b.WriteByte(',')
	format(b, n.right)
	b.WriteByte(')')
}
