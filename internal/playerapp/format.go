package playerapp

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/edward-ap/miniplayer/internal/ui"
)

// formatClock renders seconds as mm:ss, or h:mm:ss from one hour on.
func formatClock(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Round(seconds))
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// volumeIcon picks the speaker icon for a 0..100 volume.
func volumeIcon(percent float64) fyne.Resource {
	switch {
	case percent <= 0:
		return theme.VolumeMuteIcon()
	case percent < 50:
		return theme.VolumeDownIcon()
	default:
		return theme.VolumeUpIcon()
	}
}

func playIcon(playing bool) fyne.Resource {
	if playing {
		return theme.MediaPauseIcon()
	}
	return theme.MediaPlayIcon()
}

func indicatorState(loaded, playing bool) ui.PlayState {
	switch {
	case !loaded:
		return ui.Idle
	case playing:
		return ui.Playing
	default:
		return ui.Paused
	}
}
