// Package ui contains the small fyne widgets the player windows are built from.
package ui

import "fyne.io/fyne/v2"

// mainThread returns the driver hook that runs a func on the UI thread, or
// nil when the current driver has none.
func mainThread() func(func()) {
	a := fyne.CurrentApp()
	if a == nil {
		return nil
	}
	switch d := a.Driver().(type) {
	case interface{ RunOnMain(func()) }:
		return d.RunOnMain
	case interface{ CallOnMain(func()) }:
		return d.CallOnMain
	}
	return nil
}

// CallOnMain runs f on the UI thread when the driver offers a way there and
// inline otherwise. The player host calls it from the orchestrator loop.
func CallOnMain(f func()) {
	if f == nil {
		return
	}
	if run := mainThread(); run != nil {
		run(f)
		return
	}
	f()
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case hi <= lo:
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
