package scatter

import (
	"fmt"
	"time"
)

// State is everything the chart knows. Update takes a State and returns
// the next one; nothing else holds chart state.
type State struct {
	Records []Record
	Pair    PairID
	Layout  Layout
	X, Y    LinearScale

	Transition time.Duration
	Loaded     bool
}

func NewState(viewport_width, viewport_height float64) State {
	return State{
		Pair:       InitialPair,
		Layout:     NewLayout(viewport_width, viewport_height),
		Transition: DefaultTransition,
	}
}

func rescale(s State) State {
	return s.WithDomains(ComputeDomains(s.Records, s.Pair))
}

// WithDomains returns s with scales built from the given domains for
// the current layout.
func (s State) WithDomains(x, y Domain) State {
	s.X = NewXScale(x, s.Layout.ChartWidth)
	s.Y = NewYScale(y, s.Layout.ChartHeight)
	return s
}

type Event interface {
	is_event()
}

type EventResize struct {
	Width, Height float64
}

type EventDataLoaded struct {
	Records []Record
}

type EventDataFailed struct {
	Err error
}

// EventClick is a click on the axis label with the given data-axis-name.
type EventClick struct {
	Axis Column
}

// EventPointerEnter carries the page coordinates of the top left corner
// of the drawing surface.
type EventPointerEnter struct {
	Index            int
	OriginX, OriginY float64
}

type EventPointerLeave struct {
	Index int
}

func (EventResize) is_event()       {}
func (EventDataLoaded) is_event()   {}
func (EventDataFailed) is_event()   {}
func (EventClick) is_event()        {}
func (EventPointerEnter) is_event() {}
func (EventPointerLeave) is_event() {}

type Command interface {
	is_command()
}

// CmdRebuild discards the drawing surface and renders it again from State.
type CmdRebuild struct{}

type CmdRelabel struct {
	Classes []LabelClass
}

// CmdRedrawAxes moves the axes from what they show now to the X and Y
// domains.
type CmdRedrawAxes struct {
	X, Y     Domain
	Duration time.Duration
}

// CmdAnimate moves every point, in record order, to Targets.
type CmdAnimate struct {
	Targets  []Point
	Duration time.Duration
}

// CmdShowTooltip anchors the tooltip at the center of the hovered point,
// in page coordinates.
type CmdShowTooltip struct {
	HTML      string
	Left, Top float64
}

type CmdHideTooltip struct{}

type CmdShowError struct {
	Message string
}

func (CmdRebuild) is_command()     {}
func (CmdRelabel) is_command()     {}
func (CmdRedrawAxes) is_command()  {}
func (CmdAnimate) is_command()     {}
func (CmdShowTooltip) is_command() {}
func (CmdHideTooltip) is_command() {}
func (CmdShowError) is_command()   {}

// Update is the single transition function of the chart. Nothing is
// rendered before data has arrived.
func Update(s State, ev Event) (State, []Command) {
	switch ev := ev.(type) {
	case EventResize:
		s.Layout = NewLayout(ev.Width, ev.Height)
		if !s.Loaded {
			return s, nil
		}
		return rescale(s), []Command{CmdRebuild{}}
	case EventDataLoaded:
		if len(ev.Records) == 0 {
			return s, []Command{CmdShowError{Message: error_message(ErrNoRecords)}}
		}
		s.Records = ev.Records
		s.Loaded = true
		return rescale(s), []Command{CmdRebuild{}}
	case EventDataFailed:
		return s, []Command{CmdShowError{Message: error_message(ev.Err)}}
	case EventClick:
		if !s.Loaded {
			return s, nil
		}
		id, ok := PairByX(ev.Axis)
		if !ok || id == s.Pair {
			return s, nil
		}
		s.Pair = id
		s = rescale(s)
		return s, []Command{
			CmdRelabel{Classes: LabelClasses(id)},
			CmdRedrawAxes{X: s.X.Domain, Y: s.Y.Domain, Duration: s.Transition},
			CmdAnimate{Targets: Positions(s), Duration: s.Transition},
		}
	case EventPointerEnter:
		if !s.Loaded || ev.Index < 0 || ev.Index >= len(s.Records) {
			return s, nil
		}
		p := Positions(s)[ev.Index]
		return s, []Command{CmdShowTooltip{
			HTML: TooltipHTML(&s.Records[ev.Index], s.Pair),
			Left: ev.OriginX + MarginLeft + p.X,
			Top:  ev.OriginY + MarginTop + p.Y,
		}}
	case EventPointerLeave:
		if !s.Loaded {
			return s, nil
		}
		return s, []Command{CmdHideTooltip{}}
	}
	panic(fmt.Sprintf("This is a bug: unhandled event %T", ev))
}

func error_message(err error) string {
	return fmt.Sprintf("Unable to load chart data: %v", err)
}
