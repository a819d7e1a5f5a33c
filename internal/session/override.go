package session

import "time"

// OverrideWindow is how long a user-set slider value wins over engine reports.
const OverrideWindow = 250 * time.Millisecond

// Override protects an optimistic UI value until the engine catches up.
// The zero value is inactive.
type Override struct {
	value     float64
	expiresAt time.Time
	armed     bool
}

// Arm records v as the displayed value until now+window.
func (o *Override) Arm(v float64, now time.Time, window time.Duration) {
	o.value = v
	o.expiresAt = now.Add(window)
	o.armed = true
}

// Active reports whether the override still holds at now.
func (o Override) Active(now time.Time) bool {
	return o.armed && now.Before(o.expiresAt)
}

// Resolve returns the value to display: the pending override while it is
// active, otherwise truth. An expired override is cleared.
func (o *Override) Resolve(now time.Time, truth float64) float64 {
	if o.Active(now) {
		return o.value
	}
	*o = Override{}
	return truth
}

// Pending returns the override value and deadline when armed.
func (o Override) Pending() (float64, time.Time, bool) {
	return o.value, o.expiresAt, o.armed
}
