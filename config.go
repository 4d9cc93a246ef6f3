package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/susji/tinyini"

	"github.com/susji/lilscatter/scatter"
)

func config_load(r io.Reader) (*config, error) {
	sections, errs := tinyini.Parse(r)
	if len(errs) != 0 {
		log.Error().Msg("errors when reading configuration file")
		for n, err := range errs {
			log.Error().Int("n", n+1).Err(err).Msg("configuration")
		}
		return nil, errors.New("invalid configuration file")
	}
	c := &config{sections: map[string]map[string][]config_item{}}
	for name, section := range sections {
		items := map[string][]config_item{}
		for k, pairs := range section {
			for _, pair := range pairs {
				items[k] = append(items[k], config_item{value: pair.Value, lineno: pair.Lineno})
			}
		}
		c.sections[name] = items
	}
	return c, nil
}

func config_load_file(filepath string) (*config, error) {
	log.Info().Str("path", filepath).Msg("attempting to read settings")
	f, err := os.Open(filepath)
	if err != nil {
		log.Error().Err(err).Msg("cannot open configuration file for reading")
		return nil, err
	}
	defer f.Close()
	c, err := config_load(f)
	if err != nil {
		return nil, fmt.Errorf("unable to handle configuration file %q: %w", filepath, err)
	}
	return c, nil
}

func config_parse_list(value string) []string {
	ret := []string{}
	for _, v := range strings.Split(value, CONFIG_LIST_DELIM) {
		v = strings.TrimSpace(v)
		if len(v) > 0 {
			ret = append(ret, v)
		}
	}
	return ret
}

func config_parse_positive(value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err == nil && v < 1 {
		err = errors.New("must be greater than zero")
	}
	return v, err
}

func config_parse_duration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err == nil && d < 0 {
		err = errors.New("must not be negative")
	}
	return d, err
}

func (c *config) parse_common() (string, error) {
	path_data := DEFAULT_DATA_PATH

	in_err := false

	for k, items := range c.sections[""] {
		for _, item := range items {
			var err error
			switch k {
			case "path_data":
				path_data = item.value
			default:
				err = fmt.Errorf("%d: unrecognized config item: %s",
					item.lineno, k)
			}
			if err != nil {
				log.Error().Str("key", k).Err(err).Msg("invalid value")
				in_err = true
			}
		}
	}
	if in_err {
		return "", errors.New("errors in common section")
	}
	if path_data == "" {
		return "", errors.New("no data path in common section")
	}
	return path_data, nil
}

// parse_chart reads the settings shared by the interactive chart and its
// snapshot.
func (c *config) parse_chart(sc *config_serve, rc *config_render) error {
	in_err := false
	for k, items := range c.sections["chart"] {
		for _, item := range items {
			var err error
			switch k {
			case "transition":
				sc.transition, err = config_parse_duration(item.value)
			case "snapshot_width":
				rc.width, err = config_parse_positive(item.value)
			case "snapshot_height":
				rc.height, err = config_parse_positive(item.value)
			case "glyph_size":
				rc.glyph_size, err = config_parse_positive(item.value)
			case "font_size":
				rc.font_size, err = config_parse_positive(item.value)
			case "title":
				rc.graph_title = item.value
			default:
				err = fmt.Errorf(
					"%d: unrecognized config item: %s",
					item.lineno, k)
			}
			if err != nil {
				log.Error().Str("key", k).Err(err).Msg("invalid value")
				in_err = true
			}
		}
	}
	if in_err {
		return errors.New("errors in chart section")
	}
	return nil
}

func default_config_render() *config_render {
	return &config_render{
		path_data:  DEFAULT_DATA_PATH,
		width:      DEFAULT_SNAPSHOT_WIDTH,
		height:     DEFAULT_SNAPSHOT_HEIGHT,
		glyph_size: DEFAULT_GLYPH_SIZE,
		font_size:  DEFAULT_FONT_SIZE,
	}
}

func (c *config) parse_serve() (*config_serve, error) {
	ret := &config_serve{
		path_data:      DEFAULT_DATA_PATH,
		path_wasm:      DEFAULT_WASM_PATH,
		path_wasm_exec: DEFAULT_WASM_EXEC_PATH,
		listen_addr:    DEFAULT_ADDR,
		cors_origins:   []string{},
		transition:     scatter.DefaultTransition,
		read_timeout:   DEFAULT_READ_TIMEOUT,
		write_timeout:  DEFAULT_WRITE_TIMEOUT,
	}

	in_err := false

	if path_data, cerr := c.parse_common(); cerr == nil {
		ret.path_data = path_data
	} else {
		in_err = true
		log.Error().Err(cerr).Msg("common section")
	}

	if cerr := c.parse_chart(ret, default_config_render()); cerr != nil {
		in_err = true
		log.Error().Err(cerr).Msg("chart section")
	}

	for k, items := range c.sections["serve"] {
		for _, item := range items {
			var err error
			switch k {
			case "listen_addr":
				ret.listen_addr = item.value
			case "path_wasm":
				ret.path_wasm = item.value
			case "path_wasm_exec":
				ret.path_wasm_exec = item.value
			case "cors_origins":
				ret.cors_origins = config_parse_list(item.value)
			case "read_timeout":
				ret.read_timeout, err = config_parse_duration(item.value)
			case "write_timeout":
				ret.write_timeout, err = config_parse_duration(item.value)
			default:
				err = fmt.Errorf(
					"%d: unrecognized config item: %s",
					item.lineno, k)
			}
			if err != nil {
				log.Error().Str("key", k).Err(err).Msg("invalid value")
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing serve config failed")
	}

	return ret, nil
}

func (c *config) parse_render() (*config_render, error) {
	ret := default_config_render()

	in_err := false

	if path_data, cerr := c.parse_common(); cerr == nil {
		ret.path_data = path_data
	} else {
		in_err = true
		log.Error().Err(cerr).Msg("common section")
	}

	if cerr := c.parse_chart(&config_serve{}, ret); cerr != nil {
		in_err = true
		log.Error().Err(cerr).Msg("chart section")
	}

	if in_err {
		return nil, errors.New("parsing render config failed")
	}
	return ret, nil
}
