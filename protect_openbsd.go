//go:build openbsd
// +build openbsd

package main

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

const (
	promises       = "stdio rpath inet dns"
	execpromises   = ""
	unveilflags_ro = "r"
)

// protect_serve limits the serving process to reading its assets and
// talking to the network.
func protect_serve(sc *config_serve) error {
	for _, path := range []string{sc.path_data, sc.path_wasm, sc.path_wasm_exec} {
		log.Info().Str("path", path).Str("flags", unveilflags_ro).Msg("unveil")
		if err := unix.Unveil(path, unveilflags_ro); err != nil {
			return err
		}
	}
	if err := unix.UnveilBlock(); err != nil {
		return err
	}
	log.Info().Str("promises", promises).Str("execpromises", execpromises).Msg("pledge")
	if err := unix.Pledge(promises, execpromises); err != nil {
		return err
	}
	return nil
}
