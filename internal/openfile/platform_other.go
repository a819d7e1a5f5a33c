//go:build !darwin || !cgo

package openfile

// Platform returns the installer for the operating system's open-file
// request. Outside macOS files arrive on the command line, so there is none.
func Platform() Installer { return nil }
