package main

import "time"

type params_serve struct {
	config_path string
}

type params_render struct {
	config_path string
	pair        string
	out_path    string
}

type params_check struct {
	config_path string
}

type config_item struct {
	value  string
	lineno int
}

type config struct {
	sections map[string]map[string][]config_item
}

type config_serve struct {
	path_data      string
	path_wasm      string
	path_wasm_exec string
	listen_addr    string
	cors_origins   []string
	transition     time.Duration
	read_timeout   time.Duration
	write_timeout  time.Duration
}

type config_render struct {
	path_data   string
	width       int
	height      int
	glyph_size  int
	font_size   int
	graph_title string
}
