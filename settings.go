package main

import (
	"image/color"
	"time"
)

const (
	FLAG_CONFIG_PATH    = "config-path"
	DEFAULT_CONFIG_PATH = "/etc/lilscatter/lilscatter.ini"
	HELP_CONFIG_PATH    = "Filepath to lilscatter configuration file"

	FLAG_PAIR    = "pair"
	DEFAULT_PAIR = "education"
	HELP_PAIR    = "Axis pair to draw: education, race or foodstamp"

	FLAG_OUT    = "out"
	DEFAULT_OUT = "scatter.svg"
	HELP_OUT    = "Output file, format taken from its extension"

	DEFAULT_DATA_PATH      = "/var/lilscatter/data.csv"
	DEFAULT_WASM_PATH      = "/var/lilscatter/chart.wasm"
	DEFAULT_WASM_EXEC_PATH = "/var/lilscatter/wasm_exec.js"
	DEFAULT_ADDR           = "localhost:15516"
)

const (
	DEFAULT_READ_TIMEOUT     = 30 * time.Second
	DEFAULT_WRITE_TIMEOUT    = 30 * time.Second
	DEFAULT_SHUTDOWN_TIMEOUT = 10 * time.Second
	DEFAULT_SNAPSHOT_WIDTH   = 1200
	DEFAULT_SNAPSHOT_HEIGHT  = 800
	DEFAULT_GLYPH_SIZE       = 18
	DEFAULT_FONT_SIZE        = 13
	CONFIG_LIST_DELIM        = ","
	DATA_ROUTE               = "/data/data.csv"
	DATA_MIMETYPE            = "text/csv; charset=utf-8"
	WASM_MIMETYPE            = "application/wasm"
	JS_MIMETYPE              = "text/javascript; charset=utf-8"
)

var (
	COLOR_BG    = color.RGBA{255, 255, 255, 255}
	COLOR_FILL  = color.RGBA{173, 216, 230, 255}
	COLOR_LABEL = color.RGBA{255, 255, 255, 255}
	COLOR_AXIS  = color.RGBA{0, 0, 0, 255}
)
