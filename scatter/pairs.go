package scatter

import (
	"fmt"
	"strings"
)

// PairID selects one of the fixed (x, y) column combinations.
type PairID int

const (
	PairEducationTeeth PairID = iota
	PairRaceCancer
	PairFoodStampSmoke
)

// Pair is one row of the static pairing table. The x column determines
// the y column; nothing else pairs labels.
type Pair struct {
	ID   PairID
	Name string

	X, Y           Column
	XTitle, YTitle string

	XTooltip, YTooltip string

	// Label placement relative to the chart area: the x label sits
	// XLabelOffset below the margin line, the y label YLabelOffset right
	// of the left surface edge.
	XLabelOffset, YLabelOffset int
}

var pairs = [...]Pair{
	PairEducationTeeth: {
		ID:           PairEducationTeeth,
		Name:         "education",
		X:            ColBachelorOrHigher,
		Y:            ColAllTeethRemoved,
		XTitle:       "Education level: Bachelor or higher (%)",
		YTitle:       "65+ with All Teeth Removed (%)",
		XTooltip:     "Bachelor",
		YTooltip:     "No Teeth",
		XLabelOffset: 20,
		YLabelOffset: 80,
	},
	PairRaceCancer: {
		ID:           PairRaceCancer,
		Name:         "race",
		X:            ColWhite,
		Y:            ColSkinCancer,
		XTitle:       "Race: White (%)",
		YTitle:       "Had Skin Cancer (%)",
		XTooltip:     "White People",
		YTooltip:     "Skin Cancer",
		XLabelOffset: 45,
		YLabelOffset: 55,
	},
	PairFoodStampSmoke: {
		ID:           PairFoodStampSmoke,
		Name:         "foodstamp",
		X:            ColFoodStamp,
		Y:            ColSmoke,
		XTitle:       "Family gets food stamps (%)",
		YTitle:       "Currently Smoking (%)",
		XTooltip:     "Food Stamp",
		YTooltip:     "Smoker",
		XLabelOffset: 70,
		YLabelOffset: 30,
	},
}

const InitialPair = PairEducationTeeth

func Pairs() []Pair {
	return pairs[:]
}

func (id PairID) Pair() Pair {
	if id < 0 || int(id) >= len(pairs) {
		panic(fmt.Sprintf("This is a bug: pair id %d", int(id)))
	}
	return pairs[id]
}

func (id PairID) String() string {
	if id < 0 || int(id) >= len(pairs) {
		return fmt.Sprintf("PairID(%d)", int(id))
	}
	return pairs[id].Name
}

// PairByX finds the pair whose x label carries the given axis name.
func PairByX(axis Column) (PairID, bool) {
	for _, p := range pairs {
		if p.X == axis {
			return p.ID, true
		}
	}
	return 0, false
}

// ParsePair accepts a pair name or the x column of a pair.
func ParsePair(s string) (PairID, error) {
	s = strings.TrimSpace(s)
	for _, p := range pairs {
		if strings.EqualFold(p.Name, s) || string(p.X) == s {
			return p.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown axis pair: %q", s)
}

// Label state classes.
const (
	ClassActive   = "active"
	ClassInactive = "inactive"
	ClassChange   = "change"
	ClassUnchange = "unchange"
)

type LabelClass struct {
	Axis  Column
	Class string
}

// LabelClasses gives the state class of every axis label when pair id is
// active: x labels are active or inactive, y labels change or unchange.
func LabelClasses(id PairID) []LabelClass {
	ret := make([]LabelClass, 0, 2*len(pairs))
	for _, p := range pairs {
		class := ClassInactive
		if p.ID == id {
			class = ClassActive
		}
		ret = append(ret, LabelClass{Axis: p.X, Class: class})
	}
	for _, p := range pairs {
		class := ClassUnchange
		if p.ID == id {
			class = ClassChange
		}
		ret = append(ret, LabelClass{Axis: p.Y, Class: class})
	}
	return ret
}
