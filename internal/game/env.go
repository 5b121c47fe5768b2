package game

import "github.com/vovakirdan/blappy/internal/core"

// Environment reports the play area size in world units.
// ok is false while no window or terminal is attached.
type Environment interface {
	Bounds() (size core.Size, ok bool)
}

// Assets reports whether the host finished loading what the menu needs.
type Assets interface {
	Ready() bool
}

// FixedBounds is an Environment with a constant size. The zero value is unavailable.
type FixedBounds core.Size

// Bounds implements Environment.
func (b FixedBounds) Bounds() (core.Size, bool) {
	s := core.Size(b)
	return s, !s.Empty()
}

// Bounds is an Environment the host updates as the play area changes.
type Bounds struct {
	size core.Size
	ok   bool
}

// Set records the current size. An empty size marks the bounds unavailable.
func (b *Bounds) Set(s core.Size) {
	b.size = s
	b.ok = !s.Empty()
}

// Unset marks the bounds unavailable.
func (b *Bounds) Unset() {
	b.ok = false
}

// Bounds implements Environment.
func (b *Bounds) Bounds() (core.Size, bool) {
	return b.size, b.ok
}

// AssetFlag is an Assets the host flips once.
type AssetFlag struct {
	ready bool
}

// MarkReady records that loading finished.
func (a *AssetFlag) MarkReady() { a.ready = true }

// Ready implements Assets.
func (a *AssetFlag) Ready() bool { return a.ready }

type alwaysReady struct{}

func (alwaysReady) Ready() bool { return true }
