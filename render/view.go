package render

const (
	KeyScaleAmount   = 1.1
	WheelScaleAmount = 1.05
)

// Viewは、パンとズームの状態です。ツリーの操作とは無関係で、描画時に一様に適用される。
type View struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

func NewView() *View {
	return &View{Scale: 1}
}

func (v *View) Reset() {
	*v = View{Scale: 1}
}

// Panは、画面上のドラッグ量を現在の倍率で割って平行移動量に加える。
func (v *View) Pan(dx, dy float64) {
	v.TranslateX += dx / v.Scale
	v.TranslateY += dy / v.Scale
}

// Wheelは、ホイールを上に回すと拡大し、下に回すと縮小する。
func (v *View) Wheel(deltaY float64) {
	if deltaY < 0 {
		v.Scale *= WheelScaleAmount
	} else {
		v.Scale /= WheelScaleAmount
	}
}

// Keyは、"]" で拡大、"[" で縮小する。処理したキーならtrueを返す。
func (v *View) Key(key string) bool {
	switch key {
	case "]":
		v.Scale *= KeyScaleAmount
	case "[":
		v.Scale /= KeyScaleAmount
	default:
		return false
	}
	return true
}

// Applyは、キャンバス中心を基準に拡大してから平行移動した画面座標を返す。
func (v *View) Apply(cfg Config, x, y float64) (float64, float64) {
	cx, cy := cfg.Width/2, cfg.Height/2
	return (x-cx+v.TranslateX)*v.Scale + cx, (y-cy+v.TranslateY)*v.Scale + cy
}

// LineWidthは、拡大しても画面上の太さが変わらない線幅を返す。
func (v *View) LineWidth(cfg Config) float64 {
	return cfg.LineWidth / v.Scale
}
