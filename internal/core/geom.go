// Package core provides fundamental types and utilities for blappy.
// It contains no external dependencies (especially no Bubble Tea or physics
// backend) to keep game logic pure and testable.
package core

// Vec2 is a point or direction in world units.
// World x is centered on the play area, world y grows upward from the floor.
type Vec2 struct {
	X, Y float64
}

// V returns a Vec2 with the given components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Size is the extent of the play area in world units.
type Size struct {
	W, H float64
}

// HalfW returns half of the width. The right boundary sits at +HalfW.
func (s Size) HalfW() float64 {
	return s.W / 2
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}
