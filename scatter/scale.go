package scatter

import (
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
)

const (
	DomainMinPadding = 0.8
	DomainMaxPadding = 1.1
)

// Domain is the data range mapped onto one axis.
type Domain struct {
	Min, Max float64
}

func column_values(records []Record, c Column) []float64 {
	vals := make([]float64, len(records))
	for i := range records {
		vals[i] = records[i].Value(c)
	}
	return vals
}

// ColumnDomain pads the extrema of column c. It panics when records is
// empty.
func ColumnDomain(records []Record, c Column) Domain {
	vals := column_values(records, c)
	return Domain{
		Min: floats.Min(vals) * DomainMinPadding,
		Max: floats.Max(vals) * DomainMaxPadding,
	}
}

// ComputeDomains returns the x and y domains for the pair. It panics
// when records is empty.
func ComputeDomains(records []Record, id PairID) (Domain, Domain) {
	p := id.Pair()
	return ColumnDomain(records, p.X), ColumnDomain(records, p.Y)
}

// LinearScale maps Domain onto [R0, R1].
type LinearScale struct {
	Domain
	R0, R1 float64
}

func NewXScale(d Domain, width float64) LinearScale {
	return LinearScale{Domain: d, R0: 0, R1: width}
}

// NewYScale is inverted because pixel y grows downwards.
func NewYScale(d Domain, height float64) LinearScale {
	return LinearScale{Domain: d, R0: height, R1: 0}
}

func (s LinearScale) Apply(v float64) float64 {
	return s.R0 + (v-s.Min)/(s.Max-s.Min)*(s.R1-s.R0)
}

type Tick struct {
	Value float64
	Label string
}

func val_format_for_printing(v float64) string {
	return strconv.FormatFloat(v, 'g', 3, 64)
}

// AxisTicks returns the labelled ticks within d. A degenerate domain has
// no ticks.
func AxisTicks(d Domain) []Tick {
	if !(d.Max > d.Min) {
		return nil
	}
	ret := []Tick{}
	for _, t := range (plot.DefaultTicks{}).Ticks(d.Min, d.Max) {
		if t.Label == "" || t.Value < d.Min || t.Value > d.Max {
			continue
		}
		ret = append(ret, Tick{Value: t.Value, Label: val_format_for_printing(t.Value)})
	}
	return ret
}
