// Package display is the boundary between the session and whatever presents it.
package display

// Hooks receive presentation updates from a session. Implementations must not
// call back into the session.
type Hooks interface {
	UpdateTitle(title string)
	// UpdateRemainingTime receives seconds left in the current item; negative means unknown.
	UpdateRemainingTime(seconds float64)
	UpdateVolumeLabel(label string)
	UpdateRolloffLabel(label string)
	UpdateControlsVisible(visible bool)
}

// Nop ignores every update.
type Nop struct{}

func (Nop) UpdateTitle(string)          {}
func (Nop) UpdateRemainingTime(float64) {}
func (Nop) UpdateVolumeLabel(string)    {}
func (Nop) UpdateRolloffLabel(string)   {}
func (Nop) UpdateControlsVisible(bool)  {}

// Multi forwards every update to each of its hooks in order.
type Multi []Hooks

func (m Multi) UpdateTitle(title string) {
	for _, h := range m {
		h.UpdateTitle(title)
	}
}

func (m Multi) UpdateRemainingTime(seconds float64) {
	for _, h := range m {
		h.UpdateRemainingTime(seconds)
	}
}

func (m Multi) UpdateVolumeLabel(label string) {
	for _, h := range m {
		h.UpdateVolumeLabel(label)
	}
}

func (m Multi) UpdateRolloffLabel(label string) {
	for _, h := range m {
		h.UpdateRolloffLabel(label)
	}
}

func (m Multi) UpdateControlsVisible(visible bool) {
	for _, h := range m {
		h.UpdateControlsVisible(visible)
	}
}
