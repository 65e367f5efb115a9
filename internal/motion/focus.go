package motion

import "time"

// updateFocus picks a new attention point when there is none, at random, or
// when the current one has grown stale.
func (e *Engine) updateFocus(now time.Time, size Size) {
	s := &e.state
	stale := now.Sub(s.LastFocusChange) > FocusMaxAge
	if s.Focus != nil && !stale && !e.chance(FocusChangeChance) {
		return
	}

	// Central 50%×50% of the screen.
	s.Focus = &Point{
		X: e.uniform(size.Width*0.25, size.Width*0.75),
		Y: e.uniform(size.Height*0.25, size.Height*0.75),
	}
	s.LastFocusChange = now
}
