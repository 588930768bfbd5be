package domain

// IsCollisionCheckActive combines the two skip switches: the candidate
// event's own flag and the global configuration flag are OR'd, either one
// disables collision checking for that candidate entirely.
func IsCollisionCheckActive(e *EffectiveEvent, skipGlobally bool) bool {
	return !e.SkipCollisionCheck && !skipGlobally
}

// Collides reports whether the candidate window overlaps any window the user
// is already booked for. Windows without a begin date never collide.
func Collides(candidate TimeWindow, booked []TimeWindow) bool {
	for _, w := range booked {
		if candidate.Overlaps(w) {
			return true
		}
	}
	return false
}
