package main

import (
	"context"
	"os"

	"github.com/mpingram/chip8/host"
	"github.com/mpingram/chip8/terminal"
)

func runTerminal(ctx context.Context, cfg host.Config, co host.Collaborators, rom []byte) (err error) {
	frontend, err := terminal.New(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := frontend.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	co.Display = frontend
	co.Input = frontend

	emu, err := host.New(cfg, co)
	if err != nil {
		return err
	}
	if err := emu.Load(rom); err != nil {
		return err
	}
	return emu.Run(ctx)
}
