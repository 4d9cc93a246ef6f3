//go:build !openbsd
// +build !openbsd

package main

func protect_serve(sc *config_serve) error {
	return nil
}
