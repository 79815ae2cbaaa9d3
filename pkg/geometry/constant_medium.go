package geometry

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// exitSearchOffset separates the entry hit from the search for the exit hit
const exitSearchOffset = 0.0001

// ConstantMedium is a homogeneous participating medium filling a closed boundary
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64 // Zero for a medium that never scatters
}

// NewConstantMedium fills boundary with a medium of the given density whose
// scattering albedo comes from texture. A non-positive density gives an empty medium.
func NewConstantMedium(boundary Hittable, density float64, texture material.ColorSource) *ConstantMedium {
	medium := &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(texture),
	}
	if density > 0 {
		medium.negInvDensity = -1 / density
	}
	return medium
}

// NewConstantMediumFromColor fills boundary with a medium of a solid color
func NewConstantMediumFromColor(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// Hit samples a free-flight distance through the medium. The ray scatters
// when that distance is shorter than the span it travels inside the boundary.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if m.negInvDensity == 0 {
		return false
	}

	var rec1, rec2 material.HitRecord
	if !m.Boundary.Hit(ray, core.UniverseInterval, &rec1, sampler) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(rec1.T+exitSearchOffset, math.Inf(1)), &rec2, sampler) {
		return false
	}

	if rec1.T < rayT.Min {
		rec1.T = rayT.Min
	}
	if rec2.T > rayT.Max {
		rec2.T = rayT.Max
	}
	if rec1.T >= rec2.T {
		return false
	}
	if rec1.T < 0 {
		rec1.T = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (rec2.T - rec1.T) * rayLength
	hitDistance := m.negInvDensity * math.Log(1-sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = rec1.T + hitDistance/rayLength
	rec.Point = ray.At(rec.T)

	// A volume has no surface; normal and face are arbitrary
	rec.Normal = core.NewVec3(1, 0, 0)
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction

	return true
}

func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
