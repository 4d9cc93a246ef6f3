package scatter

import (
	"fmt"
	"strconv"
	"time"
)

const DefaultTransition = 1800 * time.Millisecond

// Point is a pixel position inside the chart area.
type Point struct {
	X, Y float64
}

// Transform is the SVG transform placing an element at p.
func (p Point) Transform() string {
	return "translate(" +
		strconv.FormatFloat(p.X, 'g', -1, 64) + "," +
		strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}

// Positions places every record with the current scales.
func Positions(s State) []Point {
	p := s.Pair.Pair()
	ret := make([]Point, len(s.Records))
	for i := range s.Records {
		ret[i] = Point{
			X: s.X.Apply(s.Records[i].Value(p.X)),
			Y: s.Y.Apply(s.Records[i].Value(p.Y)),
		}
	}
	return ret
}

func ease_cubic_in_out(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

func lerp(a, b, k float64) float64 {
	return a + (b-a)*k
}

type timing struct {
	start    time.Time
	duration time.Duration
}

func (t timing) progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (t timing) eased(now time.Time) float64 {
	return ease_cubic_in_out(t.progress(now))
}

func (t timing) done(now time.Time) bool {
	return t.progress(now) >= 1
}

// Tween moves a set of points from one position set to another over a
// fixed duration.
type Tween struct {
	timing
	from, to []Point
}

func NewTween(from, to []Point, start time.Time, duration time.Duration) *Tween {
	if len(from) != len(to) {
		panic(fmt.Sprintf(
			"This is a bug: tween endpoints differ in length: %d != %d",
			len(from), len(to)))
	}
	return &Tween{timing: timing{start: start, duration: duration}, from: from, to: to}
}

func (t *Tween) At(now time.Time) []Point {
	k := t.eased(now)
	ret := make([]Point, len(t.from))
	for i := range t.from {
		ret[i] = Point{
			X: lerp(t.from[i].X, t.to[i].X, k),
			Y: lerp(t.from[i].Y, t.to[i].Y, k),
		}
	}
	return ret
}

func (t *Tween) Done(now time.Time) bool {
	return t.done(now)
}

// Retarget restarts the tween from wherever the points are at now. The
// latest target always wins.
func (t *Tween) Retarget(to []Point, now time.Time, duration time.Duration) {
	from := t.At(now)
	if len(from) != len(to) {
		panic(fmt.Sprintf(
			"This is a bug: retarget length differs: %d != %d",
			len(from), len(to)))
	}
	t.from = from
	t.to = to
	t.timing = timing{start: now, duration: duration}
}

// DomainTween blends the x and y axis domains with the same easing as
// the points.
type DomainTween struct {
	timing
	from, to [2]Domain
}

func NewDomainTween(fromX, fromY, toX, toY Domain, start time.Time, duration time.Duration) *DomainTween {
	return &DomainTween{
		timing: timing{start: start, duration: duration},
		from:   [2]Domain{fromX, fromY},
		to:     [2]Domain{toX, toY},
	}
}

func (t *DomainTween) At(now time.Time) (Domain, Domain) {
	k := t.eased(now)
	var ret [2]Domain
	for i := range ret {
		ret[i] = Domain{
			Min: lerp(t.from[i].Min, t.to[i].Min, k),
			Max: lerp(t.from[i].Max, t.to[i].Max, k),
		}
	}
	return ret[0], ret[1]
}

func (t *DomainTween) Done(now time.Time) bool {
	return t.done(now)
}
