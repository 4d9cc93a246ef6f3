package scatter

const (
	MarginTop    = 20
	MarginRight  = 150
	MarginBottom = 100
	MarginLeft   = 130
)

// Layout is the drawing surface geometry for one viewport size.
type Layout struct {
	ViewportWidth, ViewportHeight float64
	ChartWidth, ChartHeight       float64
}

// NewLayout does not guard against viewports smaller than the margins.
func NewLayout(viewport_width, viewport_height float64) Layout {
	return Layout{
		ViewportWidth:  viewport_width,
		ViewportHeight: viewport_height,
		ChartWidth:     viewport_width - MarginLeft - MarginRight,
		ChartHeight:    viewport_height - MarginTop - MarginBottom,
	}
}
