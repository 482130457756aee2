package render

import (
	"fmt"

	"github.com/seipan/bstviz/bst"
)

type (
	// Configは、描画の寸法と色の設定です。
	Config struct {
		Width        float64 `json:"width"`
		Height       float64 `json:"height"`
		NodeRadius   float64 `json:"nodeRadius"`
		NodeSpacing  float64 `json:"nodeSpacing"`
		LevelSpacing float64 `json:"levelSpacing"`
		Margin       float64 `json:"margin"`
		LineWidth    float64 `json:"lineWidth"`

		NodeColor      string `json:"nodeColor"`
		TextColor      string `json:"textColor"`
		StrokeColor    string `json:"strokeColor"`
		LineColor      string `json:"lineColor"`
		HighlightColor string `json:"highlightColor"`
		FoundColor     string `json:"foundColor"`
	}

	// Circleは、ノード1つ分の円。
	Circle struct {
		ID     uint64  `json:"id"`
		Label  string  `json:"label"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Stroke string  `json:"stroke"`
	}

	// Edgeは、親から子への線分。
	Edge struct {
		From uint64  `json:"from"`
		To   uint64  `json:"to"`
		X1   float64 `json:"x1"`
		Y1   float64 `json:"y1"`
		X2   float64 `json:"x2"`
		Y2   float64 `json:"y2"`
	}

	// Sceneは、1フレームを描画するための情報で、座標はビュー変換を適用する前のピクセル値。
	// Circles は描画順（子が先、親が後）に並ぶ。
	Scene struct {
		Op        string   `json:"op,omitempty"`
		Key       string   `json:"key,omitempty"`
		Seq       int      `json:"seq"`
		Highlight uint64   `json:"highlight,omitempty"`
		Found     bool     `json:"found"`
		Circles   []Circle `json:"circles"`
		Edges     []Edge   `json:"edges"`
	}
)

func DefaultConfig() Config {
	return Config{
		Width:        1200,
		Height:       600,
		NodeRadius:   20,
		NodeSpacing:  30,
		LevelSpacing: 40,
		Margin:       50,
		LineWidth:    2,

		NodeColor:      "DodgerBlue",
		TextColor:      "#fff",
		StrokeColor:    "#003300",
		LineColor:      "#000",
		HighlightColor: "coral",
		FoundColor:     "green",
	}
}

// FromFrameは、アニメーションのフレームからSceneを作る。
func FromFrame(cfg Config, f bst.Frame) Scene {
	s := NewScene(cfg, f.Root, f.Highlight, f.Found)
	s.Op = f.Op.String()
	if f.Key != nil {
		s.Key = fmt.Sprint(f.Key)
	}
	s.Seq = f.Seq
	return s
}

// NewSceneは、レイアウトを計算しなおし、各ノードのピクセル座標を求める。
// 強調されたノードの枠線は、foundなら FoundColor、そうでなければ HighlightColor になる。
// rootがnilなら空のSceneを返す。
func NewScene(cfg Config, root, highlight *bst.Node, found bool) Scene {
	s := Scene{
		Circles: []Circle{},
		Edges:   []Edge{},
	}
	if highlight != nil {
		s.Highlight = highlight.ID()
		s.Found = found
	}
	maxX, ok := bst.Layout(root)
	if !ok {
		return s
	}
	treeWidth := float64(maxX+1) * cfg.NodeSpacing
	offsetX := (cfg.Width - treeWidth) / 2
	pos := func(n *bst.Node) (float64, float64) {
		return float64(n.X())*cfg.NodeSpacing + offsetX + cfg.NodeSpacing/2,
			float64(n.Y())*cfg.LevelSpacing + cfg.Margin
	}

	var draw func(n *bst.Node)
	draw = func(n *bst.Node) {
		x, y := pos(n)
		for _, c := range []*bst.Node{n.Left(), n.Right()} {
			if c == nil {
				continue
			}
			cx, cy := pos(c)
			s.Edges = append(s.Edges, Edge{From: n.ID(), To: c.ID(), X1: x, Y1: y, X2: cx, Y2: cy})
			draw(c)
		}
		stroke := cfg.StrokeColor
		if n == highlight {
			stroke = cfg.HighlightColor
			if found {
				stroke = cfg.FoundColor
			}
		}
		s.Circles = append(s.Circles, Circle{
			ID:     n.ID(),
			Label:  fmt.Sprint(n.Item()),
			X:      x,
			Y:      y,
			Stroke: stroke,
		})
	}
	draw(root)
	return s
}

// Findは、IDで円を探す。
func (s Scene) Find(id uint64) (Circle, bool) {
	for _, c := range s.Circles {
		if c.ID == id {
			return c, true
		}
	}
	return Circle{}, false
}
