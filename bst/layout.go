package bst

// Placementは、レイアウト済みのノード1つ分の座標です。
type Placement struct {
	ID   uint64
	Item Item
	X    int
	Y    int
}

// Layoutは、rootから下のすべてのノードに (x, y) を割り当てる。
// y は根からの深さ、x は0から始まる間順（左・自分・右）のカウンタで、同じ x を持つノードは存在しない。
// 戻り値は割り当てた x の最大値で、rootがnilの場合は ok=false となり何も割り当てない。
// 状態を持たないので、毎フレーム最初から計算しなおしてよい。
func Layout(root *Node) (maxX int, ok bool) {
	if root == nil {
		return 0, false
	}
	next := layout(root, 0, 0)
	return next - 1, true
}

// layoutは、次に割り当てる x を受け取り、部分木に割り当てた後の次の値を返す。
func layout(n *Node, depth, next int) int {
	if n == nil {
		return next
	}
	next = layout(n.left, depth+1, next)
	n.x, n.y = next, depth
	return layout(n.right, depth+1, next+1)
}

// Positionsは、レイアウトを計算し、間順に並べた座標を返す。
func Positions(root *Node) []Placement {
	if _, ok := Layout(root); !ok {
		return nil
	}
	var out []Placement
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, Placement{ID: n.id, Item: n.item, X: n.x, Y: n.y})
		walk(n.right)
	}
	walk(root)
	return out
}
