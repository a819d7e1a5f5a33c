// Package trackinfo reads embedded audio tags to build the "now playing"
// line shown under a player window's transport.
package trackinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Info is the subset of tag metadata the player displays.
type Info struct {
	Title  string
	Artist string
	Album  string
}

// Read opens path and parses its tags.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Info{}, fmt.Errorf("read tags %s: %w", filepath.Base(path), err)
	}
	return Info{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
	}, nil
}

// Line renders "Artist - Title", falling back to whichever part is present.
func (i Info) Line() string {
	return strings.Trim(strings.TrimSpace(i.Artist+" - "+i.Title), " -")
}

// Describe returns the tag line for path, or the file name when the file has
// no usable tags.
func Describe(path string) string {
	if info, err := Read(path); err == nil {
		if s := info.Line(); s != "" {
			return s
		}
	}
	return filepath.Base(path)
}
