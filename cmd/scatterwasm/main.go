//go:build js && wasm

// scatterwasm drives the scatter chart inside the browser. JS callbacks
// only turn DOM events into scatter.Event values; a single goroutine
// feeds them to scatter.Update and executes the returned commands.
package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"syscall/js"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/susji/lilscatter/scatter"
)

const (
	DEFAULT_DATA_URL  = "data/data.csv"
	TOOLTIP_OPACITY   = "0.9"
	EVENT_QUEUE_DEPTH = 256
)

type driver struct {
	window, document js.Value
	container        js.Value
	tooltip          js.Value

	circles, abbrs []js.Value
	anim           scatter.Animator

	state  scatter.State
	style  scatter.Style
	events chan scatter.Event
	frames chan time.Time

	callbacks []js.Func
}

func (d *driver) post(ev scatter.Event) {
	select {
	case d.events <- ev:
	default:
		log.Warn().Str("event", fmt.Sprintf("%T", ev)).Msg("event queue full, dropping")
	}
}

func (d *driver) listen(target js.Value, name string, fn func(js.Value)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn(args[0])
		return nil
	})
	d.callbacks = append(d.callbacks, cb)
	target.Call("addEventListener", name, cb)
}

func data_index(el js.Value) (int, bool) {
	raw := el.Call("getAttribute", "data-index")
	if raw.IsNull() {
		return 0, false
	}
	n, err := strconv.Atoi(raw.String())
	return n, err == nil
}

func has_class(el js.Value, class string) bool {
	cl := el.Get("classList")
	return !cl.IsUndefined() && cl.Call("contains", class).Bool()
}

func (d *driver) viewport() (float64, float64) {
	return d.window.Get("innerWidth").Float(), d.window.Get("innerHeight").Float()
}

func (d *driver) bind() {
	d.listen(d.window, "resize", func(js.Value) {
		w, h := d.viewport()
		d.post(scatter.EventResize{Width: w, Height: h})
	})
	d.listen(d.container, "click", func(ev js.Value) {
		target := ev.Get("target")
		if !has_class(target, "axis-text") {
			return
		}
		axis := target.Call("getAttribute", "data-axis-name").String()
		d.post(scatter.EventClick{Axis: scatter.Column(axis)})
	})
	d.listen(d.container, "mouseover", func(ev js.Value) {
		target := ev.Get("target")
		if !has_class(target, "circle") {
			return
		}
		if i, ok := data_index(target); ok {
			rect := target.Get("ownerSVGElement").Call("getBoundingClientRect")
			d.post(scatter.EventPointerEnter{
				Index:   i,
				OriginX: rect.Get("left").Float() + d.window.Get("scrollX").Float(),
				OriginY: rect.Get("top").Float() + d.window.Get("scrollY").Float(),
			})
		}
	})
	d.listen(d.container, "mouseout", func(ev js.Value) {
		target := ev.Get("target")
		if !has_class(target, "circle") {
			return
		}
		if i, ok := data_index(target); ok {
			d.post(scatter.EventPointerLeave{Index: i})
		}
	})
}

func (d *driver) fetch(raw string) {
	base, err := url.Parse(d.window.Get("location").Get("href").String())
	if err != nil {
		d.post(scatter.EventDataFailed{Err: err})
		return
	}
	ref, err := url.Parse(raw)
	if err != nil {
		d.post(scatter.EventDataFailed{Err: err})
		return
	}
	u := base.ResolveReference(ref).String()
	log.Info().Str("url", u).Msg("fetching chart data")
	resp, err := http.Get(u)
	if err != nil {
		d.post(scatter.EventDataFailed{Err: err})
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		d.post(scatter.EventDataFailed{Err: fmt.Errorf("%s: %s", u, resp.Status)})
		return
	}
	records, err := scatter.ParseRecords(resp.Body)
	if err != nil {
		d.post(scatter.EventDataFailed{Err: err})
		return
	}
	log.Info().Int("records", len(records)).Msg("chart data loaded")
	d.post(scatter.EventDataLoaded{Records: records})
}

func (d *driver) select_all(selector string) []js.Value {
	nodes := d.container.Call("querySelectorAll", selector)
	ret := make([]js.Value, nodes.Length())
	for i := range ret {
		ret[i] = nodes.Index(i)
	}
	return ret
}

func (d *driver) rebuild() error {
	if old := d.container.Call("querySelector", "svg"); !old.IsNull() {
		old.Call("remove")
	}
	b := bytes.Buffer{}
	if err := scatter.RenderChart(&b, d.state, d.style); err != nil {
		return err
	}
	doc := b.String()
	if i := strings.Index(doc, "<svg"); i > 0 {
		doc = doc[i:]
	}
	d.container.Call("insertAdjacentHTML", "afterbegin", doc)
	d.circles = d.select_all(".circle")
	d.abbrs = d.select_all(".abbr")
	d.anim.Rebuild(d.state)
	return nil
}

func (d *driver) redraw_axes(x, y scatter.Domain) error {
	s := d.state.WithDomains(x, y)
	for _, a := range []scatter.Axis{scatter.AxisX, scatter.AxisY} {
		b := bytes.Buffer{}
		if err := scatter.RenderAxis(&b, s, a, d.style); err != nil {
			return err
		}
		g := d.container.Call("querySelector", "."+scatter.AxisClass(a))
		if !g.IsNull() {
			g.Set("innerHTML", b.String())
		}
	}
	return nil
}

func (d *driver) place(pts []scatter.Point) {
	for i, p := range pts {
		tf := p.Transform()
		if i < len(d.circles) {
			d.circles[i].Call("setAttribute", "transform", tf)
		}
		if i < len(d.abbrs) {
			d.abbrs[i].Call("setAttribute", "transform", tf)
		}
	}
}

func (d *driver) request_frame() {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb.Release()
		select {
		case d.frames <- time.Now():
		default:
		}
		return nil
	})
	d.window.Call("requestAnimationFrame", cb)
}

func (d *driver) step(now time.Time) {
	step, more := d.anim.Frame(now)
	if step.Points != nil {
		d.place(step.Points)
	}
	if step.Axes {
		if err := d.redraw_axes(step.X, step.Y); err != nil {
			log.Error().Err(err).Msg("axis redraw failed")
		}
	}
	if more {
		d.request_frame()
	}
}

func (d *driver) set_style(el js.Value, props map[string]string) {
	st := el.Get("style")
	for k, v := range props {
		st.Set(k, v)
	}
}

func (d *driver) execute(cmds []scatter.Command) {
	for _, c := range cmds {
		var err error
		switch c := c.(type) {
		case scatter.CmdRebuild:
			log.Debug().
				Float64("width", d.state.Layout.ChartWidth).
				Float64("height", d.state.Layout.ChartHeight).
				Msg("rebuilding surface")
			err = d.rebuild()
		case scatter.CmdRelabel:
			for _, lc := range c.Classes {
				el := d.container.Call("querySelector",
					fmt.Sprintf(`.axis-text[data-axis-name="%s"]`, lc.Axis))
				if !el.IsNull() {
					el.Call("setAttribute", "class", "axis-text "+lc.Class)
				}
			}
		case scatter.CmdRedrawAxes:
			if d.anim.MoveAxes(c, time.Now()) {
				d.request_frame()
			}
		case scatter.CmdAnimate:
			log.Info().Str("pair", d.state.Pair.String()).Msg("switching axes")
			if d.anim.MovePoints(c, time.Now()) {
				d.request_frame()
			}
		case scatter.CmdShowTooltip:
			d.tooltip.Set("innerHTML", c.HTML)
			d.set_style(d.tooltip, map[string]string{
				"opacity": TOOLTIP_OPACITY,
				"left":    fmt.Sprintf("%gpx", c.Left),
				"top":     fmt.Sprintf("%gpx", c.Top),
			})
		case scatter.CmdHideTooltip:
			d.set_style(d.tooltip, map[string]string{"opacity": "0"})
		case scatter.CmdShowError:
			log.Error().Str("message", c.Message).Msg("chart failed")
			p := d.document.Call("createElement", "p")
			p.Set("className", "chart-error")
			p.Set("textContent", c.Message)
			d.container.Call("appendChild", p)
		default:
			panic(fmt.Sprintf("This is a bug: unhandled command %T", c))
		}
		if err != nil {
			log.Error().Err(err).Msg("command failed")
		}
	}
}

func (d *driver) run() {
	for {
		select {
		case ev := <-d.events:
			var cmds []scatter.Command
			d.state, cmds = scatter.Update(d.state, ev)
			d.execute(cmds)
		case now := <-d.frames:
			d.step(now)
		}
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true})

	window := js.Global()
	document := window.Get("document")
	container := document.Call("querySelector", ".chart")
	if container.IsNull() {
		log.Fatal().Msg("no .chart element on the page")
	}
	tooltip := container.Call("querySelector", ".tooltip")
	if tooltip.IsNull() {
		tooltip = document.Call("createElement", "div")
		tooltip.Set("className", "tooltip")
		tooltip.Get("style").Set("opacity", "0")
		container.Call("appendChild", tooltip)
	}

	d := &driver{
		window:    window,
		document:  document,
		container: container,
		tooltip:   tooltip,
		style:     scatter.DefaultStyle,
		events:    make(chan scatter.Event, EVENT_QUEUE_DEPTH),
		frames:    make(chan time.Time, 1),
	}
	w, h := d.viewport()
	d.state = scatter.NewState(w, h)
	if raw := container.Call("getAttribute", "data-transition"); !raw.IsNull() {
		if dur, err := time.ParseDuration(raw.String()); err == nil {
			d.state.Transition = dur
		} else {
			log.Warn().Err(err).Msg("ignoring bad data-transition")
		}
	}
	data_url := DEFAULT_DATA_URL
	if raw := container.Call("getAttribute", "data-src"); !raw.IsNull() {
		data_url = raw.String()
	}

	d.bind()
	go d.fetch(data_url)
	log.Info().Msg("scatter chart ready")
	d.run()
}
