// keytracker.go - minimal input utility for Ebiten v2.8.8
// Provides edge-triggered presses for toggle keys.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// IsKeyJustPressed returns true if the key was not pressed last frame but is pressed this frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.Update(ebiten.IsKeyPressed(key))
}

// Update records the current state and reports a released-to-pressed edge.
func (k *KeyStateTracker) Update(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Toggle flips a boolean setting on each press of its key.
type Toggle struct {
	Key     ebiten.Key
	On      bool
	tracker KeyStateTracker
}

// Poll reads the key and reports whether the setting changed this frame.
func (t *Toggle) Poll() bool {
	return t.Apply(ebiten.IsKeyPressed(t.Key))
}

// Apply feeds one frame of key state into the toggle.
func (t *Toggle) Apply(pressed bool) bool {
	if !t.tracker.Update(pressed) {
		return false
	}
	t.On = !t.On
	return true
}
