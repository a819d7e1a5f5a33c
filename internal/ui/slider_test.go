package ui

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestNormalizeSliderValueClamp(t *testing.T) {
	tests := []struct {
		name  string
		min   float64
		max   float64
		step  float64
		value float64
		want  float64
	}{
		{name: "below min", min: 0, max: 100, step: 0, value: -5, want: 0},
		{name: "above max", min: 0, max: 100, step: 0, value: 250, want: 100},
		{name: "max <= min", min: 5, max: 5, step: 0, value: 7, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSliderValue(tt.min, tt.max, tt.step, tt.value)
			if got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalizeSliderValueStep(t *testing.T) {
	tests := []struct {
		name  string
		step  float64
		value float64
		want  float64
	}{
		{name: "fine timeline step", step: 0.1, value: 42.34, want: 42.3},
		{name: "volume step rounds up", step: 1, value: 66.6, want: 67},
		{name: "clamp after rounding", step: 65, value: 98, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSliderValue(0, 100, tt.step, tt.value)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetValueQuietDoesNotNotify(t *testing.T) {
	test.NewApp()
	s := NewTransportSlider(0, 100)
	calls := 0
	s.OnChanged = func(float64) { calls++ }

	s.SetValueQuiet(40)
	if s.Value != 40 || calls != 0 {
		t.Fatalf("value %v calls %d, want 40 and no callback", s.Value, calls)
	}
	s.SetValue(55)
	s.SetValue(55)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	s.SetValueQuiet(math.NaN())
	if s.Value != 55 {
		t.Fatalf("NaN moved the thumb to %v", s.Value)
	}
}

func TestDragHoldsOffQuietUpdates(t *testing.T) {
	test.NewApp()
	s := NewTransportSlider(0, 100)
	s.Resize(fyne.NewSize(200, 20))
	var got []float64
	s.OnChanged = func(v float64) { got = append(got, v) }

	s.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 10)}})
	if !s.Dragging() || s.Value != 25 {
		t.Fatalf("dragging %v value %v, want true/25", s.Dragging(), s.Value)
	}
	s.SetValueQuiet(80)
	if s.Value != 25 {
		t.Fatalf("quiet update moved a dragged thumb to %v", s.Value)
	}
	s.DragEnd()
	s.SetValueQuiet(80)
	if s.Value != 80 {
		t.Fatalf("value = %v after drag end, want 80", s.Value)
	}
	if len(got) != 1 || got[0] != 25 {
		t.Fatalf("OnChanged = %v, want [25]", got)
	}
}

func TestTappedAndScrolled(t *testing.T) {
	test.NewApp()
	s := NewTransportSlider(0, 100)
	s.Resize(fyne.NewSize(100, 20))
	s.Tapped(&fyne.PointEvent{Position: fyne.NewPos(150, 0)})
	if s.Value != 100 {
		t.Fatalf("tap past the end = %v, want 100", s.Value)
	}
	s.Step = 10
	s.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -1)})
	if s.Value != 90 {
		t.Fatalf("scroll down = %v, want 90", s.Value)
	}
	s.Scrolled(nil)
}
