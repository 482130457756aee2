package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/seipan/bstviz/bst"
	"github.com/xlab/treeprint"
)

// Textは、フレームを端末向けの木として書き出す。
type Text struct {
	w     io.Writer
	plain bool

	highlight *color.Color
	found     *color.Color
}

// NewTextは、wに書き出すTextを作る。plainなら色を使わず、強調を記号で表す。
func NewText(w io.Writer, plain bool) *Text {
	return &Text{
		w:         w,
		plain:     plain,
		highlight: color.New(color.FgYellow, color.Bold),
		found:     color.New(color.FgGreen, color.Bold),
	}
}

// Drawは、bst.FrameFuncとして使える。
func (t *Text) Draw(f bst.Frame) {
	fmt.Fprintln(t.w, Header(f))
	fmt.Fprint(t.w, t.Tree(f.Root, f.Highlight, f.Found))
}

// Headerは、"insert 3 #2: visit 5" のようなフレームの説明を返す。
func Header(f bst.Frame) string {
	state := "redraw"
	if f.Highlight != nil {
		state = fmt.Sprintf("visit %v", f.Highlight.Item())
		if f.Found {
			state = fmt.Sprintf("found %v", f.Highlight.Item())
		}
	}
	return fmt.Sprintf("%s %v #%d: %s", f.Op, f.Key, f.Seq, state)
}

// Treeは、木をtreeprintで描いた文字列を返す。子には左右を示す L / R を付ける。
func (t *Text) Tree(root, highlight *bst.Node, found bool) string {
	if root == nil {
		return "(empty)\n"
	}
	tree := treeprint.NewWithRoot(t.label(root, highlight, found))
	t.addChildren(tree, root, highlight, found)
	return tree.String()
}

func (t *Text) addChildren(branch treeprint.Tree, n, highlight *bst.Node, found bool) {
	for _, c := range []struct {
		side  string
		child *bst.Node
	}{{"L", n.Left()}, {"R", n.Right()}} {
		if c.child == nil {
			continue
		}
		label := c.side + " " + t.label(c.child, highlight, found)
		if c.child.Left() == nil && c.child.Right() == nil {
			branch.AddNode(label)
			continue
		}
		t.addChildren(branch.AddBranch(label), c.child, highlight, found)
	}
}

func (t *Text) label(n, highlight *bst.Node, found bool) string {
	s := fmt.Sprint(n.Item())
	if n != highlight {
		return s
	}
	switch {
	case t.plain && found:
		return s + " *"
	case t.plain:
		return s + " <"
	case found:
		return t.found.Sprint(s)
	default:
		return t.highlight.Sprint(s)
	}
}
