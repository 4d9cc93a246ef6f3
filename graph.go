package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/susji/lilscatter/scatter"
)

var graph_formats = map[string]bool{
	"svg":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"pdf":  true,
}

// NeatFloatTicker labels the same ticks the interactive axes show.
type NeatFloatTicker struct{}

func (NeatFloatTicker) Ticks(min, max float64) []plot.Tick {
	ret := []plot.Tick{}
	for _, t := range scatter.AxisTicks(scatter.Domain{Min: min, Max: max}) {
		ret = append(ret, plot.Tick{Value: t.Value, Label: t.Label})
	}
	return ret
}

func graph_format(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !graph_formats[format] {
		return "", fmt.Errorf("unsupported output format: %q", format)
	}
	return format, nil
}

func graph_generate(records []scatter.Record, id scatter.PairID, rc *config_render,
	format string, w io.Writer) error {
	if len(records) == 0 {
		return scatter.ErrNoRecords
	}

	t0 := time.Now()

	pair := id.Pair()
	dx, dy := scatter.ComputeDomains(records, id)

	xys := make(plotter.XYs, len(records))
	labels := make([]string, len(records))
	for i := range records {
		xys[i].X = records[i].Value(pair.X)
		xys[i].Y = records[i].Value(pair.Y)
		labels[i] = records[i].Abbr
	}

	s, err := NewLabelScatter(xys, labels)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = COLOR_FILL
	s.GlyphStyle.Radius = vg.Length(rc.glyph_size)
	s.TextStyle.Font = font.From(plot.DefaultFont, vg.Points(float64(rc.font_size)))

	p := plot.New()
	p.Add(s)
	p.BackgroundColor = COLOR_BG
	p.X.LineStyle.Color = COLOR_AXIS
	p.Y.LineStyle.Color = COLOR_AXIS
	p.Title.Text = rc.graph_title
	p.X.Label.Text = pair.XTitle
	p.Y.Label.Text = pair.YTitle
	p.X.Tick.Marker = NeatFloatTicker{}
	p.Y.Tick.Marker = NeatFloatTicker{}

	p.X.Min = dx.Min
	p.X.Max = dx.Max
	p.Y.Min = dy.Min
	p.Y.Max = dy.Max

	wt, err := p.WriterTo(vg.Length(rc.width), vg.Length(rc.height), format)
	if err != nil {
		return err
	}
	if _, err = wt.WriteTo(w); err != nil {
		return err
	}

	log.Debug().
		Str("pair", id.String()).
		Int("records", len(records)).
		Dur("took", time.Since(t0)).
		Msg("snapshot generated")

	return nil
}

func render(p *params_render) error {
	config, err := config_load_file(p.config_path)
	if err != nil {
		return err
	}
	rc, err := config.parse_render()
	if err != nil {
		return err
	}
	id, err := scatter.ParsePair(p.pair)
	if err != nil {
		return err
	}
	format, err := graph_format(p.out_path)
	if err != nil {
		return err
	}
	records, err := records_load_file(rc.path_data)
	if err != nil {
		return err
	}

	f, err := os.Create(p.out_path)
	if err != nil {
		return err
	}
	if err := graph_generate(records, id, rc, format, f); err != nil {
		f.Close()
		os.Remove(p.out_path)
		return fmt.Errorf("snapshot failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", p.out_path).Str("pair", id.String()).Msg("snapshot written")
	return nil
}

// check loads the configuration and data file the way serve would,
// without starting anything.
func check(p *params_check) error {
	config, err := config_load_file(p.config_path)
	if err != nil {
		return err
	}
	sc, err := config.parse_serve()
	if err != nil {
		return err
	}
	records, err := records_load_file(sc.path_data)
	if err != nil {
		return err
	}
	for _, pair := range scatter.Pairs() {
		dx, dy := scatter.ComputeDomains(records, pair.ID)
		log.Info().
			Str("pair", pair.Name).
			Floats64("x_domain", []float64{dx.Min, dx.Max}).
			Floats64("y_domain", []float64{dy.Min, dy.Max}).
			Msg("domains")
	}
	return nil
}
