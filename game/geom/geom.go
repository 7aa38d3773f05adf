// Package geom holds the continuous-space math shared by actors: world
// positions, direction vectors and axis-aligned bounding boxes.
package geom

import "math"

// Vec2 is a point or direction in world units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector in v's direction, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Toward returns the unit vector pointing from v to target.
func (v Vec2) Toward(target Vec2) Vec2 {
	return target.Sub(v).Normalize()
}

// Rect is an axis-aligned box. X/Y is the top-left corner; the right and
// bottom edges are exclusive.
type Rect struct {
	X, Y, W, H float64
}

// CenteredAt returns a w×h box whose center is c.
func CenteredAt(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Left() float64 { return r.X }
func (r Rect) Top() float64 { return r.Y }
func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the box center.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// InsetCorners returns the four corners of r pulled inward by inset units,
// in the order top-left, top-right, bottom-left, bottom-right.
func (r Rect) InsetCorners(inset float64) [4]Vec2 {
	return [4]Vec2{
		{r.Left() + inset, r.Top() + inset},
		{r.Right() - inset, r.Top() + inset},
		{r.Left() + inset, r.Bottom() - inset},
		{r.Right() - inset, r.Bottom() - inset},
	}
}

// ClampInto moves r the minimum distance needed to lie inside bounds.
// A box larger than bounds is aligned to the bounds' top-left corner.
func (r Rect) ClampInto(bounds Rect) Rect {
	if r.Right() > bounds.Right() {
		r.X = bounds.Right() - r.W
	}
	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Bottom() > bounds.Bottom() {
		r.Y = bounds.Bottom() - r.H
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	return r
}
