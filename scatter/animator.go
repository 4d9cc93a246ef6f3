package scatter

import "time"

// Step is what one animation frame changed. Points is nil when no point
// moved; X and Y are only meaningful when Axes is set.
type Step struct {
	Points []Point
	Axes   bool
	X, Y   Domain
}

// Animator tracks what the drawing surface currently shows while points
// and axes move towards the latest targets. It asks for at most one
// outstanding animation frame at a time.
type Animator struct {
	positions []Point
	x, y      Domain

	points *Tween
	axes   *DomainTween

	frame_pending bool
}

// Rebuild resets the animator to a freshly rendered surface. Running
// tweens belong to the old surface and are dropped. A frame already
// requested stays outstanding.
func (a *Animator) Rebuild(s State) {
	a.positions = Positions(s)
	a.x, a.y = s.X.Domain, s.Y.Domain
	a.points = nil
	a.axes = nil
}

func (a *Animator) Positions() []Point {
	return a.positions
}

func (a *Animator) Domains() (Domain, Domain) {
	return a.x, a.y
}

func (a *Animator) Active() bool {
	return a.points != nil || a.axes != nil
}

func (a *Animator) want_frame() bool {
	if a.frame_pending || !a.Active() {
		return false
	}
	a.frame_pending = true
	return true
}

// MovePoints starts moving the points to cmd.Targets, retargeting a
// running tween from where it is now. It reports whether the caller
// must request an animation frame.
func (a *Animator) MovePoints(cmd CmdAnimate, now time.Time) bool {
	if a.points != nil {
		a.points.Retarget(cmd.Targets, now, cmd.Duration)
	} else {
		a.points = NewTween(a.positions, cmd.Targets, now, cmd.Duration)
	}
	return a.want_frame()
}

// MoveAxes starts blending the axes from their current domains to the
// ones in cmd.
func (a *Animator) MoveAxes(cmd CmdRedrawAxes, now time.Time) bool {
	x, y := a.x, a.y
	if a.axes != nil {
		x, y = a.axes.At(now)
	}
	a.axes = NewDomainTween(x, y, cmd.X, cmd.Y, now, cmd.Duration)
	return a.want_frame()
}

// Frame advances both tweens to now. The second return value reports
// whether another frame must be requested.
func (a *Animator) Frame(now time.Time) (Step, bool) {
	a.frame_pending = false
	step := Step{}
	if a.points != nil {
		if a.points.Done(now) {
			a.positions = a.points.to
			a.points = nil
		} else {
			a.positions = a.points.At(now)
		}
		step.Points = a.positions
	}
	if a.axes != nil {
		if a.axes.Done(now) {
			a.x, a.y = a.axes.to[0], a.axes.to[1]
			a.axes = nil
		} else {
			a.x, a.y = a.axes.At(now)
		}
		step.Axes = true
		step.X, step.Y = a.x, a.y
	}
	return step, a.want_frame()
}
