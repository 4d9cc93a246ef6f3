package scatter

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// Style holds the fixed presentation attributes of the chart.
type Style struct {
	PointRadius int
	PointColor  string
	LabelColor  string
	FontSize    string
	AxisColor   string
}

var DefaultStyle = Style{
	PointRadius: 18,
	PointColor:  "lightblue",
	LabelColor:  "white",
	FontSize:    "13px",
	AxisColor:   "black",
}

const tick_size = 6

// Axis selects one of the two axis groups.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// AxisClass is the class of the group holding the ticks of a.
func AxisClass(a Axis) string {
	if a == AxisX {
		return "x-axis"
	}
	return "y-axis"
}

func attr(name string, value interface{}) string {
	return fmt.Sprintf(`%s="%v"`, name, value)
}

func px(v float64) int {
	return int(math.Round(v))
}

// RenderChart writes the complete drawing surface for s as an SVG
// document.
func RenderChart(w io.Writer, s State, style Style) error {
	b := bytes.Buffer{}
	canvas := svg.New(&b)
	l := s.Layout
	canvas.Start(px(l.ViewportWidth), px(l.ViewportHeight))
	canvas.Group(
		attr("class", "chart-area"),
		attr("transform", fmt.Sprintf("translate(%d,%d)", MarginLeft, MarginTop)))

	for i, p := range Positions(s) {
		canvas.Circle(0, 0, style.PointRadius,
			attr("class", "circle"),
			attr("data-index", i),
			attr("transform", p.Transform()),
			attr("fill", style.PointColor))
		canvas.Text(0, 0, s.Records[i].Abbr,
			attr("class", "abbr"),
			attr("data-index", i),
			attr("transform", p.Transform()),
			attr("dx", "-0.65em"),
			attr("dy", "0.4em"),
			fmt.Sprintf("font-size:%s;fill:%s;pointer-events:none", style.FontSize, style.LabelColor))
	}

	canvas.Group(
		attr("class", AxisClass(AxisX)),
		attr("transform", fmt.Sprintf("translate(0,%g)", l.ChartHeight)))
	write_axis(canvas, s, AxisX, style)
	canvas.Gend()
	canvas.Group(attr("class", AxisClass(AxisY)))
	write_axis(canvas, s, AxisY, style)
	canvas.Gend()

	write_axis_labels(canvas, s)

	canvas.Gend()
	canvas.End()
	_, err := w.Write(b.Bytes())
	return err
}

// RenderAxis writes the inner markup of one axis group.
func RenderAxis(w io.Writer, s State, a Axis, style Style) error {
	b := bytes.Buffer{}
	write_axis(svg.New(&b), s, a, style)
	_, err := w.Write(b.Bytes())
	return err
}

func write_axis(canvas *svg.SVG, s State, a Axis, style Style) {
	stroke := "stroke:" + style.AxisColor
	text := "font-size:10px;fill:" + style.AxisColor
	switch a {
	case AxisX:
		canvas.Line(0, 0, px(s.Layout.ChartWidth), 0, stroke)
		for _, t := range AxisTicks(s.X.Domain) {
			at := attr("transform", Point{X: s.X.Apply(t.Value)}.Transform())
			canvas.Line(0, 0, 0, tick_size, at, stroke)
			canvas.Text(0, tick_size+3, t.Label, at, attr("dy", "0.71em"),
				text+";text-anchor:middle")
		}
	case AxisY:
		canvas.Line(0, 0, 0, px(s.Layout.ChartHeight), stroke)
		for _, t := range AxisTicks(s.Y.Domain) {
			at := attr("transform", Point{Y: s.Y.Apply(t.Value)}.Transform())
			canvas.Line(-tick_size, 0, 0, 0, at, stroke)
			canvas.Text(-(tick_size + 3), 0, t.Label, at, attr("dy", "0.32em"),
				text+";text-anchor:end")
		}
	default:
		panic(fmt.Sprintf("This is a bug: axis %d", int(a)))
	}
}

func class_of(classes []LabelClass, c Column) string {
	for _, lc := range classes {
		if lc.Axis == c {
			return lc.Class
		}
	}
	panic(fmt.Sprintf("This is a bug: no label class for %q", c))
}

func write_axis_labels(canvas *svg.SVG, s State) {
	l := s.Layout
	classes := LabelClasses(s.Pair)
	for _, p := range Pairs() {
		canvas.Text(px(-l.ChartHeight/2), -MarginLeft+p.YLabelOffset, p.YTitle,
			attr("transform", "rotate(-90)"),
			attr("dy", "1em"),
			attr("class", "axis-text "+class_of(classes, p.Y)),
			attr("data-axis-name", p.Y),
			attr("id", p.Y),
			"text-anchor:middle")
	}
	for _, p := range Pairs() {
		at := Point{X: l.ChartWidth / 2, Y: l.ChartHeight + MarginTop + float64(p.XLabelOffset)}
		canvas.Text(0, 0, p.XTitle,
			attr("transform", at.Transform()),
			attr("class", "axis-text "+class_of(classes, p.X)),
			attr("data-axis-name", p.X),
			"text-anchor:middle")
	}
}
