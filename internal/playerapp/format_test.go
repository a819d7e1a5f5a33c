package playerapp

import (
	"math"
	"testing"

	"fyne.io/fyne/v2/theme"

	"github.com/edward-ap/miniplayer/internal/ui"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59.4, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-3, "00:00"},
		{math.NaN(), "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.in); got != tt.want {
			t.Fatalf("formatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVolumeIcon(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, theme.VolumeMuteIcon().Name()},
		{-5, theme.VolumeMuteIcon().Name()},
		{30, theme.VolumeDownIcon().Name()},
		{50, theme.VolumeUpIcon().Name()},
		{100, theme.VolumeUpIcon().Name()},
	}
	for _, tt := range tests {
		if got := volumeIcon(tt.percent).Name(); got != tt.want {
			t.Fatalf("volumeIcon(%v) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}

func TestIndicatorState(t *testing.T) {
	tests := []struct {
		loaded, playing bool
		want            ui.PlayState
	}{
		{false, false, ui.Idle},
		{false, true, ui.Idle},
		{true, false, ui.Paused},
		{true, true, ui.Playing},
	}
	for _, tt := range tests {
		if got := indicatorState(tt.loaded, tt.playing); got != tt.want {
			t.Fatalf("indicatorState(%v, %v) = %v, want %v", tt.loaded, tt.playing, got, tt.want)
		}
	}
}
