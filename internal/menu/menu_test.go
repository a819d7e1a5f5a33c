package menu

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func findItem(t *testing.T, m *fyne.MainMenu, label string) *fyne.MenuItem {
	t.Helper()
	for _, menu := range m.Items {
		for _, it := range menu.Items {
			if it.Label == label {
				return it
			}
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestActionIDsRoundTrip(t *testing.T) {
	want := map[Action]string{
		About:     "about",
		NewWindow: "new_window",
		Open:      "open",
		ZoomIn:    "zoom_in",
		ZoomOut:   "zoom_out",
	}
	for a, id := range want {
		if a.ID() != id {
			t.Errorf("%d.ID() = %q, want %q", a, a.ID(), id)
		}
		got, ok := ParseID(id)
		if !ok || got != a {
			t.Errorf("ParseID(%q) = %v, %v", id, got, ok)
		}
	}
	if _, ok := ParseID("quit"); ok {
		t.Error("unknown id should not parse")
	}
}

func TestClicksArePolledInOrder(t *testing.T) {
	n := build()
	findItem(t, n.Main(), "Open…").Action()
	findItem(t, n.Main(), "Zoom In").Action()
	findItem(t, n.Main(), "About MiniPlayer").Action()

	var got []Action
	for {
		a, ok := n.PollAction()
		if !ok {
			break
		}
		got = append(got, a)
	}
	want := []Action{Open, ZoomIn, About}
	if len(got) != len(want) {
		t.Fatalf("polled %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("polled %v, want %v", got, want)
		}
	}
}

func TestPollIsNonBlockingWhenEmpty(t *testing.T) {
	n := build()
	if _, ok := n.PollAction(); ok {
		t.Fatal("empty menu should report no action")
	}
}

func TestUnknownEventReportsFalse(t *testing.T) {
	n := build()
	n.push("preferences")
	n.push("new_window")
	if _, ok := n.PollAction(); ok {
		t.Fatal("unknown id should report false")
	}
	if a, ok := n.PollAction(); !ok || a != NewWindow {
		t.Fatalf("next poll = %v, %v", a, ok)
	}
}

func TestEventBufferDropsOverflow(t *testing.T) {
	n := build()
	item := findItem(t, n.Main(), "Zoom Out")
	for i := 0; i < EventBuffer+10; i++ {
		item.Action()
	}
	count := 0
	for {
		if _, ok := n.PollAction(); !ok {
			break
		}
		count++
	}
	if count != EventBuffer {
		t.Fatalf("polled %d actions, want %d", count, EventBuffer)
	}
}

func TestInstallWithoutApp(t *testing.T) {
	if _, err := Install(nil); !errors.Is(err, ErrNoApp) {
		t.Fatalf("Install(nil) = %v, want ErrNoApp", err)
	}
}

func TestAttachSetsMainMenuOnce(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := a.NewWindow("player")
	n := build()
	n.Attach(w)
	n.Attach(w)
	n.Attach(nil)
	if w.MainMenu() != n.Main() {
		t.Fatal("window should carry the installed menu")
	}
	if len(n.attached) != 1 {
		t.Fatalf("attached = %d windows, want 1", len(n.attached))
	}
	n.Detach(w)
	if len(n.attached) != 0 {
		t.Fatal("Detach should forget the window")
	}
}
