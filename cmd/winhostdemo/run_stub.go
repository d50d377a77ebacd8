//go:build !windows

package main

import "errors"

func run(demoConfig) error {
	return errors.New("winhostdemo requires windows")
}
