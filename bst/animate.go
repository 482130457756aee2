package bst

import (
	"time"
)

type (
	// Opは、アニメーション付き操作の種類です。
	Op int

	// Frameは、操作中の1ステップのスナップショットです。
	// Root と Highlight はコールバックの間だけ有効で、コールバック内でツリーを変更してはならない。
	// 各ノードの X, Y はコールバック呼び出しの直前に計算済み。
	Frame struct {
		Op        Op
		Key       Item
		Seq       int
		Root      *Node
		Highlight *Node
		Found     bool
	}

	// FrameFuncは、フレームごとに同期的に呼ばれる描画コールバック。
	FrameFunc func(f Frame)

	// Resultは、挿入・削除の結果。重複挿入や存在しないキーの削除は Changed=false で、エラーではない。
	Result struct {
		Changed bool
		Frames  int
	}

	// Animatorは、ツリー操作を (変更または参照, フレーム出力, 一時停止) の列として実行する。
	// 単一スレッドの協調的なドライバで、一度始まった操作は最後まで実行される。
	// 同時に複数の操作を走らせないことは呼び出し側の責任で、Animator自体はロックを持たない。
	Animator struct {
		tree    *Tree
		onFrame FrameFunc
		delay   time.Duration
		sleep   func(time.Duration)

		op  Op
		key Item
		seq int
	}

	// Optionは、NewAnimatorの省略可能な引数です。
	Option func(*Animator)
)

const (
	OpInsert Op = iota
	OpDelete
	OpSearch
)

// DefaultDelay は、フレーム間の一時停止時間の既定値。
const DefaultDelay = 500 * time.Millisecond

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpSearch:
		return "search"
	default:
		return "unknown"
	}
}

// HighlightIDは、強調表示するノードのIDを返す。強調なしなら0。
func (f Frame) HighlightID() uint64 {
	if f.Highlight == nil {
		return 0
	}
	return f.Highlight.id
}

// WithDelayは、フレーム間の一時停止時間を設定する。
func WithDelay(d time.Duration) Option {
	return func(a *Animator) {
		a.delay = d
	}
}

// WithSleepは、一時停止に使う関数を差し替える。テストでは待たない関数を渡す。
func WithSleep(sleep func(time.Duration)) Option {
	return func(a *Animator) {
		a.sleep = sleep
	}
}

func NewAnimator(t *Tree, onFrame FrameFunc, opts ...Option) *Animator {
	a := &Animator{
		tree:    t,
		onFrame: onFrame,
		delay:   DefaultDelay,
		sleep:   time.Sleep,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *Animator) Tree() *Tree { return a.tree }

func (a *Animator) Delay() time.Duration { return a.delay }

func (a *Animator) begin(op Op, key Item) {
	if key == nil {
		panic("nil key passed to animated " + op.String())
	}
	a.op, a.key, a.seq = op, key, 0
}

// drawは、レイアウトを計算してフレームを1つ出力する。
func (a *Animator) draw(highlight *Node, found bool) {
	Layout(a.tree.root)
	a.seq++
	if a.onFrame != nil {
		a.onFrame(Frame{
			Op:        a.op,
			Key:       a.key,
			Seq:       a.seq,
			Root:      a.tree.root,
			Highlight: highlight,
			Found:     found,
		})
	}
}

// stepは、ノードを強調したフレームを出力してから一時停止する。
func (a *Animator) step(n *Node, found bool) {
	a.draw(n, found)
	if a.delay > 0 {
		a.sleep(a.delay)
	}
}

// Insertは、根から葉までたどりながら訪問ノードごとにフレームを出力し、新しい葉を追加する。
// 空の木では即座に根を作り、1フレームだけ出力する。
// 同じキーが見つかった場合は、そのノードのフレームを出力した時点で何もせずに終わる。
func (a *Animator) Insert(item Item) Result {
	a.begin(OpInsert, item)
	t := a.tree
	if t.root == nil {
		t.root = t.newNode(item)
		a.draw(nil, false)
		return Result{Changed: true, Frames: a.seq}
	}
	var parent *Node
	for cur := t.root; cur != nil; {
		a.step(cur, false)
		parent = cur
		switch {
		case item.Less(cur.item):
			cur = cur.left
		case cur.item.Less(item):
			cur = cur.right
		default:
			return Result{Frames: a.seq}
		}
	}
	if item.Less(parent.item) {
		parent.left = t.newNode(item)
	} else {
		parent.right = t.newNode(item)
	}
	a.draw(nil, false)
	return Result{Changed: true, Frames: a.seq}
}

// Deleteは、キーを再帰的に探して削除し、最後に木全体を描画しなおす。
// キーが存在しない場合は構造を変えずに終わる。
func (a *Animator) Delete(item Item) Result {
	a.begin(OpDelete, item)
	before := a.tree.length
	a.tree.root = a.remove(a.tree.root, item)
	a.draw(nil, false)
	return Result{Changed: a.tree.length != before, Frames: a.seq}
}

// removeは、nから下の部分木からキーを削除し、呼び出し元に繋ぎなおす新しい部分木の根を返す。
func (a *Animator) remove(n *Node, item Item) *Node {
	if n == nil {
		return nil
	}
	a.step(n, false)
	switch {
	case item.Less(n.item):
		n.left = a.remove(n.left, item)
		return n
	case n.item.Less(item):
		n.right = a.remove(n.right, item)
		return n
	}

	// 見つかった：削除する前にもう一度強調する。
	a.step(n, false)
	t := a.tree
	if n.left == nil && n.right == nil {
		t.freeNode(n)
		return nil
	}
	if n.left == nil || n.right == nil {
		child := n.left
		if child == nil {
			child = n.right
		}
		a.step(child, false)
		t.freeNode(n)
		return child
	}

	parent, succ := n, n.right
	for succ.left != nil {
		parent, succ = succ, succ.left
		a.step(succ, false)
	}
	n.item = succ.item
	if parent != n {
		parent.left = a.remove(succ, succ.item)
	} else {
		n.right = a.remove(n.right, succ.item)
	}
	return n
}

// Searchは、根から順に訪問ノードを強調し、見つかったノードを「発見」状態でもう一度描画する。
// 葉を越えた場合は強調なしで木全体を描画しなおし、falseを返す。
func (a *Animator) Search(item Item) bool {
	a.begin(OpSearch, item)
	for cur := a.tree.root; cur != nil; {
		a.step(cur, false)
		switch {
		case item.Less(cur.item):
			cur = cur.left
		case cur.item.Less(item):
			cur = cur.right
		default:
			a.step(cur, true)
			return true
		}
	}
	a.draw(nil, false)
	return false
}

// Applyは、opに応じてInsert・Delete・Searchのいずれかを実行する。foundはSearchの場合のみ意味を持つ。
func (a *Animator) Apply(op Op, item Item) (res Result, found bool) {
	switch op {
	case OpInsert:
		return a.Insert(item), false
	case OpDelete:
		return a.Delete(item), false
	case OpSearch:
		found = a.Search(item)
		return Result{Frames: a.seq}, found
	default:
		panic("unknown op " + op.String())
	}
}
