package scatter

import (
	"reflect"
	"testing"
	"time"
)

func click(t *testing.T, s State, axis Column) (State, CmdRedrawAxes, CmdAnimate) {
	t.Helper()
	s, cmds := Update(s, EventClick{Axis: axis})
	if len(cmds) != 3 {
		t.Fatal("wrong commands: ", cmds)
	}
	return s, cmds[1].(CmdRedrawAxes), cmds[2].(CmdAnimate)
}

func TestDomainTween(t *testing.T) {
	t0 := time.Unix(1000, 0)
	fx, fy := Domain{0, 10}, Domain{20, 40}
	tx, ty := Domain{10, 30}, Domain{0, 20}
	tw := NewDomainTween(fx, fy, tx, ty, t0, time.Second)

	x, y := tw.At(t0)
	assert(t, x == fx && y == fy, "start: ", x, y)
	x, y = tw.At(t0.Add(500 * time.Millisecond))
	assert(t, almost_equals(x.Min, 5) && almost_equals(x.Max, 20), "x midpoint: ", x)
	assert(t, almost_equals(y.Min, 10) && almost_equals(y.Max, 30), "y midpoint: ", y)
	x, y = tw.At(t0.Add(time.Second))
	assert(t, x == tx && y == ty, "end: ", x, y)
	assert(t, tw.Done(t0.Add(time.Second)), "not done at end")
}

func TestAnimatorClick(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := loaded_state(t, 1200, 800)
	a := Animator{}
	a.Rebuild(s)
	start := Positions(s)
	assert(t, reflect.DeepEqual(a.Positions(), start), "rebuild positions")

	s, axes, points := click(t, s, ColWhite)
	assert(t, a.MoveAxes(axes, t0), "first animation did not ask for a frame")
	assert(t, !a.MovePoints(points, t0), "second animation asked for another frame")

	step, more := a.Frame(t0)
	assert(t, more, "no frame requested mid-transition")
	assert(t, reflect.DeepEqual(step.Points, start), "points moved at start: ", step.Points)
	assert(t, step.Axes, "axes not redrawn")

	end := t0.Add(s.Transition)
	step, more = a.Frame(end)
	assert(t, !more, "frame requested after the transition")
	assert(t, reflect.DeepEqual(step.Points, Positions(s)), "points not at targets: ", step.Points)
	assert(t, step.X == s.X.Domain && step.Y == s.Y.Domain, "axes not at targets: ", step.X, step.Y)
	assert(t, !a.Active(), "animator still active")

	step, more = a.Frame(end.Add(time.Second))
	assert(t, !more && step.Points == nil && !step.Axes, "idle frame changed something")
}

func TestAnimatorRetarget(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := loaded_state(t, 1200, 800)
	a := Animator{}
	a.Rebuild(s)

	s, axes, points := click(t, s, ColWhite)
	a.MoveAxes(axes, t0)
	a.MovePoints(points, t0)

	mid := t0.Add(s.Transition / 2)
	step, _ := a.Frame(mid)
	midx, midy := step.X, step.Y

	// The latest click wins and starts from where things are now.
	s, axes, points = click(t, s, ColFoodStamp)
	assert(t, !a.MoveAxes(axes, mid), "frame already pending")
	a.MovePoints(points, mid)
	step, more := a.Frame(mid)
	assert(t, more, "retargeted animation stopped")
	assert(t, step.X == midx && step.Y == midy, "axes jumped on retarget: ", step.X, step.Y)

	step, _ = a.Frame(mid.Add(s.Transition))
	assert(t, reflect.DeepEqual(step.Points, Positions(s)), "points not at latest targets")
	assert(t, step.X == s.X.Domain && step.Y == s.Y.Domain, "axes not at latest targets")
}

func TestAnimatorRebuildMidTransition(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := loaded_state(t, 1200, 800)
	a := Animator{}
	a.Rebuild(s)

	s, axes, points := click(t, s, ColWhite)
	assert(t, a.MoveAxes(axes, t0), "no frame requested")
	a.MovePoints(points, t0)

	// Resize while the frame is outstanding.
	s, cmds := Update(s, EventResize{Width: 600, Height: 400})
	_, ok := cmds[0].(CmdRebuild)
	assert(t, ok, "resize did not rebuild")
	a.Rebuild(s)
	assert(t, !a.Active(), "tween survived the rebuild")
	assert(t, reflect.DeepEqual(a.Positions(), Positions(s)), "positions not from the new surface")

	// The outstanding frame arrives to nothing.
	later := t0.Add(100 * time.Millisecond)
	step, more := a.Frame(later)
	assert(t, !more && step.Points == nil && !step.Axes, "stale frame moved the rebuilt surface")

	// The next click starts from the rebuilt positions and gets its own frame.
	rebuilt := a.Positions()
	x0, y0 := a.Domains()
	s, axes, points = click(t, s, ColFoodStamp)
	assert(t, a.MoveAxes(axes, later), "click after rebuild did not ask for a frame")
	a.MovePoints(points, later)
	step, _ = a.Frame(later)
	assert(t, reflect.DeepEqual(step.Points, rebuilt), "click did not start from rebuilt positions")
	assert(t, step.X == x0 && step.Y == y0, "axes did not start from rebuilt domains")
}

func TestAnimatorRebuildWithFramePending(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := loaded_state(t, 1200, 800)
	a := Animator{}
	a.Rebuild(s)

	s, axes, points := click(t, s, ColWhite)
	assert(t, a.MoveAxes(axes, t0), "no frame requested")
	a.Rebuild(s)

	// The frame requested before the rebuild still drives the new tween.
	s, _, points = click(t, s, ColFoodStamp)
	assert(t, !a.MovePoints(points, t0), "second frame loop started")
	_, more := a.Frame(t0)
	assert(t, more, "pending frame did not continue the new tween")
}
