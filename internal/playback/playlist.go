package playback

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ParsePlaylist reads an M3U/M3U8 playlist. Comment and directive lines are
// skipped; relative entries are resolved against baseDir. URLs are rejected
// because the player only plays local files.
func ParsePlaylist(r io.Reader, baseDir string) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "://") {
			continue
		}
		line = filepath.FromSlash(line)
		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}
		out = append(out, filepath.Clean(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return out, nil
}

// ResolveTracks expands a playlist into its entries. Any other path must be
// an existing regular file and is returned as the only track.
func ResolveTracks(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("open media: %s is a directory", path)
	}
	if !isPlaylist(path) {
		return []string{path}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()
	tracks, err := ParsePlaylist(f, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("playlist %s has no entries", filepath.Base(path))
	}
	return tracks, nil
}

func isPlaylist(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		return true
	}
	return false
}
