package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func make_sure_not_root() {
	if syscall.Geteuid() == 0 && os.Getenv("LILSCATTER_PERMIT_ROOT") != "live_dangerously" {
		log.Error().Msg("This program will not run as root.")
		os.Exit(20)
	}
}

func setup_logging() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func main() {
	var p_serve params_serve
	var p_render params_render
	var p_check params_check

	setup_logging()

	if len(os.Args) <= 1 {
		fmt.Printf("usage: %s [subcommand]\n", filepath.Base(os.Args[0]))
		fmt.Println("subcommand is either `serve', `render', `check', or `help'.")
		os.Exit(1)
	}

	cmd_serve := flag.NewFlagSet("serve", flag.ExitOnError)
	cmd_serve.StringVar(&p_serve.config_path, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)

	cmd_render := flag.NewFlagSet("render", flag.ExitOnError)
	cmd_render.StringVar(&p_render.config_path, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)
	cmd_render.StringVar(&p_render.pair, FLAG_PAIR, DEFAULT_PAIR, HELP_PAIR)
	cmd_render.StringVar(&p_render.out_path, FLAG_OUT, DEFAULT_OUT, HELP_OUT)

	cmd_check := flag.NewFlagSet("check", flag.ExitOnError)
	cmd_check.StringVar(&p_check.config_path, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)

	switch os.Args[1] {
	case "serve":
		cmd_serve.Parse(os.Args[2:])
		make_sure_not_root()
		serve(p_serve.config_path)
	case "render":
		cmd_render.Parse(os.Args[2:])
		make_sure_not_root()
		if err := render(&p_render); err != nil {
			log.Fatal().Err(err).Msg("cannot render")
		}
	case "check":
		cmd_check.Parse(os.Args[2:])
		if err := check(&p_check); err != nil {
			log.Fatal().Err(err).Msg("check failed")
		}
		log.Info().Msg("configuration and data look fine")
	case "help":
		fmt.Println("The subcommands are:")
		fmt.Println()
		fmt.Println("    serve            serve the interactive chart via HTTP")
		fmt.Println("    render           write a static snapshot of one axis pair")
		fmt.Println("    check            validate configuration and data file")
		fmt.Println("    help             show this help")
		fmt.Println()
		os.Exit(0)
	default:
		fmt.Println("unknown subcommand: ", os.Args[1])
		os.Exit(2)
	}
}
