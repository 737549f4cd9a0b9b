// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned box in screen cells, used by the renderer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Vec2 is a position, size, or velocity in world units. One world unit maps
// to one screen cell at render time.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns the vector multiplied by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the euclidean length of the vector.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo returns the euclidean distance between two points.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalized returns the unit vector in the same direction, or the zero
// vector when the length is zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// RectF is an axis-aligned box in world units used by the simulation for
// collision volumes. Like Rect it is addressed by its top-left corner.
type RectF struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRectF creates a world-space rectangle from its top-left corner.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// RectFAround creates a world-space rectangle centered on the given point.
func RectFAround(center Vec2, w, h float64) RectF {
	return RectF{X: center.X - w/2, Y: center.Y - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r RectF) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r RectF) Intersects(other RectF) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// ContainsPoint returns true if the point is inside this rectangle.
func (r RectF) ContainsPoint(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Inflate grows the rectangle by the given amount per axis, keeping the
// center fixed. Trigger volumes are solid volumes inflated a little so exit
// events cannot be missed at normal movement speeds.
func (r RectF) Inflate(dx, dy float64) RectF {
	return RectF{
		X: r.X - dx/2,
		Y: r.Y - dy/2,
		W: r.W + dx,
		H: r.H + dy,
	}
}

// MoveTo returns the rectangle relocated so its center sits on the point.
func (r RectF) MoveTo(center Vec2) RectF {
	return RectF{X: center.X - r.W/2, Y: center.Y - r.H/2, W: r.W, H: r.H}
}

// Cells converts a world-space rectangle to the screen cells it covers.
func (r RectF) Cells() Rect {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.Right()))
	y1 := int(math.Ceil(r.Bottom()))
	return Rect{X: x0, Y: y0, W: Max(x1-x0, 1), H: Max(y1-y0, 1)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
