package core

import "math"

// minAxisSize is the smallest extent an AABB axis is allowed to have.
// Flat shapes such as quads would otherwise produce zero-width slabs.
const minAxisSize = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// UniverseAABB bounds everything
var UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}

// NewAABB creates an AABB from per-axis intervals
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB from two opposite corners given in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	)
}

// NewAABBFromBoxes returns the tightest AABB enclosing both boxes
func NewAABBFromBoxes(a, b AABB) AABB {
	return AABB{
		X: NewIntervalFromIntervals(a.X, b.X),
		Y: NewIntervalFromIntervals(a.Y, b.Y),
		Z: NewIntervalFromIntervals(a.Z, b.Z),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return NewAABBFromBoxes(aabb, other)
}

// Axis returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) Axis(n int) Interval {
	switch n {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects this AABB within rayT using the slab method.
// A zero direction component divides to an infinity and is handled by IEEE rules.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		ax := aabb.Axis(axis)
		adinv := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (ax.Min - origin) * adinv
		t1 := (ax.Max - origin) * adinv

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest Size. Because
// Size is Min - Max this is the axis with the smallest extent.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y {
		if x > z {
			return 0
		}
		return 2
	}
	if y > z {
		return 1
	}
	return 2
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return NewVec3(
		(aabb.X.Min+aabb.X.Max)/2,
		(aabb.Y.Min+aabb.Y.Max)/2,
		(aabb.Z.Min+aabb.Z.Max)/2,
	)
}

// Offset returns the AABB translated by v
func (aabb AABB) Offset(v Vec3) AABB {
	return AABB{X: aabb.X.Offset(v.X), Y: aabb.Y.Offset(v.Y), Z: aabb.Z.Offset(v.Z)}
}

// IsEmpty returns true if any axis interval is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.Min > aabb.X.Max || aabb.Y.Min > aabb.Y.Max || aabb.Z.Min > aabb.Z.Max
}

func (aabb *AABB) padToMinimums() {
	if l := aabb.X.Length(); l >= 0 && l < minAxisSize {
		aabb.X = aabb.X.Expand(minAxisSize)
	}
	if l := aabb.Y.Length(); l >= 0 && l < minAxisSize {
		aabb.Y = aabb.Y.Expand(minAxisSize)
	}
	if l := aabb.Z.Length(); l >= 0 && l < minAxisSize {
		aabb.Z = aabb.Z.Expand(minAxisSize)
	}
}
