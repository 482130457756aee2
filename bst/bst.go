package bst

import (
	"sync"

	"github.com/cockroachdb/errors"
)

type (
	Item interface {
		// Lessは、現在のアイテムが与えられた引数より小さいかどうかをテストします。
		// !a.Less(b) && !b.Less(a) の場合、a == b とみなします（つまり、ツリーの中でaまたはbのどちらか一方しか保持できない）。
		Less(than Item) bool
	}

	FreeList struct {
		mu       sync.Mutex
		freelist []*Node
	}

	// Nodeは、ツリーの1つの節点です。
	// idはノードの同一性を表し、キーが一時的に重複する後継ノードのコピー中でもハイライト対象を区別できる。
	// x, y はレイアウトのキャッシュで、フレームごとに再計算される。
	Node struct {
		id    uint64
		item  Item
		left  *Node
		right *Node
		x     int
		y     int
	}

	// Treeは、平衡化を行わない二分探索木である。
	// 親ポインタは持たず、祖先の追跡は再帰または明示的な親変数で行う。
	// Write操作は、複数のゴルーチンによる同時変異に対して安全ではない。
	Tree struct {
		root     *Node
		length   int
		nextID   uint64
		freelist *FreeList
	}

	// ItemIteratorは、Ascendの呼び出し元がツリーを順番に反復処理することを可能にします。
	// この関数が false を返すと、反復処理は停止します。
	ItemIterator func(i Item) bool

	Int int
)

const (
	DefaultFreeListSize = 32
)

func NewFreeList(size int) *FreeList {
	return &FreeList{freelist: make([]*Node, 0, size)}
}

// FreeList

// 一番右端のノードを取得して返す、端のノードを取り除いたfreelist設定しなおす。
func (f *FreeList) newNode() (n *Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	index := len(f.freelist) - 1
	if index < 0 {
		return new(Node)
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	return
}

// 与えられたノードをリストに追加し、追加された場合はtrueを、破棄された場合はfalseを返す。
func (f *FreeList) freeNode(n *Node) (out bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	return
}

func New() *Tree {
	return NewWithFreeList(NewFreeList(DefaultFreeListSize))
}

// 与えられたノードフリーリストを使用する新しいツリーを作成します。
func NewWithFreeList(f *FreeList) *Tree {
	return &Tree{freelist: f}
}

// node

// ID は、ツリー内で一意なノードの識別子を返す。再利用されたノードにも新しい値が割り当てられる。
func (n *Node) ID() uint64 { return n.id }

func (n *Node) Item() Item { return n.item }

func (n *Node) Left() *Node { return n.left }

func (n *Node) Right() *Node { return n.right }

// X は、最後のレイアウトで割り当てられた間順の位置を返す。
func (n *Node) X() int { return n.x }

// Y は、最後のレイアウトで割り当てられた深さを返す。
func (n *Node) Y() int { return n.y }

func equal(a, b Item) bool {
	return !a.Less(b) && !b.Less(a)
}

// newNodeは、フリーリストからノードを取り出し、新しいIDを与える。
func (t *Tree) newNode(item Item) *Node {
	n := t.freelist.newNode()
	t.nextID++
	*n = Node{id: t.nextID, item: item}
	t.length++
	return n
}

// freeNodeは、ツリーから切り離されたノードをフリーリストに返す。
func (t *Tree) freeNode(n *Node) {
	*n = Node{}
	t.length--
	t.freelist.freeNode(n)
}

// tree

// Root は、ルートノードを返す。空の木ならnil。
func (t *Tree) Root() *Node {
	return t.root
}

// Insertは、アイテムを葉として追加する。すでに同じキーがある場合は何もせずfalseを返す。
func (t *Tree) Insert(item Item) bool {
	if item == nil {
		panic("nil item being added to BST")
	}
	if t.root == nil {
		t.root = t.newNode(item)
		return true
	}
	parent := t.root
	for {
		switch {
		case item.Less(parent.item):
			if parent.left == nil {
				parent.left = t.newNode(item)
				return true
			}
			parent = parent.left
		case parent.item.Less(item):
			if parent.right == nil {
				parent.right = t.newNode(item)
				return true
			}
			parent = parent.right
		default:
			return false
		}
	}
}

// Deleteは、キーと等しいアイテムをツリーから削除し、それを返します。存在しない場合はnilを返す。
// 子を2つ持つノードは、間順の後継ノードのキーをコピーしてから後継ノードを取り除く。
func (t *Tree) Delete(item Item) Item {
	var out Item
	t.root = t.remove(t.root, item, &out)
	return out
}

func (t *Tree) remove(n *Node, item Item, out *Item) *Node {
	if n == nil {
		return nil
	}
	switch {
	case item.Less(n.item):
		n.left = t.remove(n.left, item, out)
		return n
	case n.item.Less(item):
		n.right = t.remove(n.right, item, out)
		return n
	}
	if *out == nil {
		*out = n.item
	}
	if n.left == nil || n.right == nil {
		child := n.left
		if child == nil {
			child = n.right
		}
		t.freeNode(n)
		return child
	}
	parent, succ := n, n.right
	for succ.left != nil {
		parent, succ = succ, succ.left
	}
	n.item = succ.item
	if parent != n {
		parent.left = t.remove(succ, succ.item, out)
	} else {
		n.right = t.remove(n.right, succ.item, out)
	}
	return n
}

// Get は、ツリーの中からキーとなる項目を探し、それを返す。 その項目が見つからない場合はnilを返す。
func (t *Tree) Get(key Item) Item {
	for n := t.root; n != nil; {
		switch {
		case key.Less(n.item):
			n = n.left
		case n.item.Less(key):
			n = n.right
		default:
			return n.item
		}
	}
	return nil
}

// 与えられたキーがツリー内にある場合、Hasはtrueを返します。
func (t *Tree) Has(key Item) bool {
	return t.Get(key) != nil
}

// Pathは、キーを探すときに比較されるノードを根から順に返す。
// 挿入・探索のアニメーションが強調表示するノード列と一致する。
func (t *Tree) Path(key Item) []*Node {
	var path []*Node
	for n := t.root; n != nil; {
		path = append(path, n)
		switch {
		case key.Less(n.item):
			n = n.left
		case n.item.Less(key):
			n = n.right
		default:
			return path
		}
	}
	return path
}

// iteratorがfalseを返すまで、ツリーのすべての値に対して昇順にiteratorを呼び出します。
func (t *Tree) Ascend(iterator ItemIterator) {
	t.root.iterate(iterator)
}

func (n *Node) iterate(iter ItemIterator) bool {
	if n == nil {
		return true
	}
	if !n.left.iterate(iter) {
		return false
	}
	if !iter(n.item) {
		return false
	}
	return n.right.iterate(iter)
}

// Minは，木の中で最も小さい項目を返し，木が空の場合はnilを返す。
func (t *Tree) Min() Item {
	n := t.root
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n.item
}

// Maxは，木の中で最大の項目を返し，木が空であればnilを返す。
func (t *Tree) Max() Item {
	n := t.root
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n.item
}

// Lenは、現在ツリーにあるアイテムの数を返します。
func (t *Tree) Len() int {
	return t.length
}

// Heightは、木の段数を返す。空の木は0、根だけの木は1。
func (t *Tree) Height() int {
	return height(t.root)
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Clearは、すべてのアイテムを削除します。addNodesToFreelistがtrueの場合、
// ノードはフリーリストが一杯になるまでそこに戻される。
func (t *Tree) Clear(addNodesToFreelist bool) {
	if t.root != nil && addNodesToFreelist {
		t.root.reset(t.freelist)
	}
	t.root, t.length = nil, 0
}

// reset は、freelist にサブツリーを返します。freelistが満杯になった時点でfalseを返す。
func (n *Node) reset(f *FreeList) bool {
	if n == nil {
		return true
	}
	if !n.left.reset(f) || !n.right.reset(f) {
		return false
	}
	*n = Node{}
	return f.freeNode(n)
}

// Checkは、厳密な二分探索木の不変条件（左 < ノード < 右、重複なし）と件数を検証する。
func (t *Tree) Check() error {
	count, err := check(t.root, nil, nil)
	if err != nil {
		return err
	}
	if count != t.length {
		return errors.AssertionFailedf("tree holds %d nodes, length is %d", count, t.length)
	}
	return nil
}

func check(n *Node, lo, hi Item) (int, error) {
	if n == nil {
		return 0, nil
	}
	if lo != nil && !lo.Less(n.item) {
		return 0, errors.AssertionFailedf("node %d: key %v not greater than %v", n.id, n.item, lo)
	}
	if hi != nil && !n.item.Less(hi) {
		return 0, errors.AssertionFailedf("node %d: key %v not less than %v", n.id, n.item, hi)
	}
	l, err := check(n.left, lo, n.item)
	if err != nil {
		return 0, err
	}
	r, err := check(n.right, n.item, hi)
	if err != nil {
		return 0, err
	}
	return l + r + 1, nil
}

// Lessは、int(a) < int(b)の場合に真を返す。
func (a Int) Less(b Item) bool {
	return a < b.(Int)
}
