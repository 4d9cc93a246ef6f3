package scatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Column names a numeric field of a Record. The string value is the CSV
// header and the data-axis-name of the matching axis label.
type Column string

const (
	ColAllTeethRemoved  Column = "allTeethRemoved"
	ColBachelorOrHigher Column = "bachelorOrHigher"
	ColWhite            Column = "white"
	ColSkinCancer       Column = "skinCancer"
	ColFoodStamp        Column = "foodStamp"
	ColSmoke            Column = "smoke"
)

const (
	HeaderGeography = "geography"
	HeaderAbbr      = "abbr"
)

// Columns lists the numeric columns in the order they are written out.
var Columns = []Column{
	ColAllTeethRemoved,
	ColBachelorOrHigher,
	ColWhite,
	ColSkinCancer,
	ColFoodStamp,
	ColSmoke,
}

var (
	ErrNoRecords     = errors.New("data contains no records")
	ErrMissingColumn = errors.New("missing column")
	ErrBadValue      = errors.New("bad value")
)

// Record is one row of the input table. Values are percentages.
type Record struct {
	Geography string
	Abbr      string

	AllTeethRemoved  float64
	BachelorOrHigher float64
	White            float64
	SkinCancer       float64
	FoodStamp        float64
	Smoke            float64
}

func (r *Record) Value(c Column) float64 {
	switch c {
	case ColAllTeethRemoved:
		return r.AllTeethRemoved
	case ColBachelorOrHigher:
		return r.BachelorOrHigher
	case ColWhite:
		return r.White
	case ColSkinCancer:
		return r.SkinCancer
	case ColFoodStamp:
		return r.FoodStamp
	case ColSmoke:
		return r.Smoke
	}
	panic(fmt.Sprintf("This is a bug: unknown column %q", c))
}

func (r *Record) set(c Column, v float64) {
	switch c {
	case ColAllTeethRemoved:
		r.AllTeethRemoved = v
	case ColBachelorOrHigher:
		r.BachelorOrHigher = v
	case ColWhite:
		r.White = v
	case ColSkinCancer:
		r.SkinCancer = v
	case ColFoodStamp:
		r.FoodStamp = v
	case ColSmoke:
		r.Smoke = v
	default:
		panic(fmt.Sprintf("This is a bug: unknown column %q", c))
	}
}

func IsColumn(name string) bool {
	for _, c := range Columns {
		if string(c) == name {
			return true
		}
	}
	return false
}

func parse_percentage(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 || v > 100 {
		return 0, fmt.Errorf("%v is not within [0, 100]", v)
	}
	return v, nil
}

func header_index(header []string) (map[string]int, error) {
	idx := map[string]int{}
	for n, name := range header {
		if n == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		idx[strings.TrimSpace(name)] = n
	}
	required := []string{HeaderGeography, HeaderAbbr}
	for _, c := range Columns {
		required = append(required, string(c))
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return idx, nil
}

// ParseRecords reads a CSV table with a header row. Extra columns are
// ignored. Every malformed line is logged; the first one is returned.
func ParseRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	idx, err := header_index(header)
	if err != nil {
		return nil, err
	}

	records := []Record{}
	var first_err error
	n_bad := 0
	lineno := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		lineno++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		rec, err := parse_row(row, idx)
		if err != nil {
			err = fmt.Errorf("line %d: %w", lineno, err)
			log.Warn().Err(err).Msg("malformed record")
			if first_err == nil {
				first_err = err
			}
			n_bad++
			continue
		}
		records = append(records, rec)
	}
	if first_err != nil {
		return nil, fmt.Errorf("%d malformed records, first: %w", n_bad, first_err)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func parse_row(row []string, idx map[string]int) (Record, error) {
	field := func(name string) (string, error) {
		n := idx[name]
		if n >= len(row) {
			return "", fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		return row[n], nil
	}
	rec := Record{}
	var err error
	if rec.Geography, err = field(HeaderGeography); err != nil {
		return rec, err
	}
	if rec.Abbr, err = field(HeaderAbbr); err != nil {
		return rec, err
	}
	for _, c := range Columns {
		raw, err := field(string(c))
		if err != nil {
			return rec, err
		}
		v, err := parse_percentage(raw)
		if err != nil {
			return rec, fmt.Errorf("%w in %s: %v", ErrBadValue, c, err)
		}
		rec.set(c, v)
	}
	return rec, nil
}

// WriteRecords writes records as CSV in the layout ParseRecords reads.
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	header := []string{HeaderGeography, HeaderAbbr}
	for _, c := range Columns {
		header = append(header, string(c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range records {
		row := []string{records[i].Geography, records[i].Abbr}
		for _, c := range Columns {
			row = append(row, FormatValue(records[i].Value(c)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatValue prints v the shortest way that reads back exactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
