//go:build !linux
// +build !linux

package main

// Stub for platforms without an MPRIS session bus. The binary still builds
// so the markup and artwork code can be developed anywhere.

type stubPlayer struct{}

func NewPlayer(busName string) (Player, error) {
	return stubPlayer{}, nil
}

func (stubPlayer) Now() (Song, error) { return Song{}, errUnsupported }

func (stubPlayer) Control(Command) error { return errUnsupported }

func (stubPlayer) Close() error { return nil }
