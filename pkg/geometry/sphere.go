package geometry

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// Sphere represents a sphere shape. The center is a ray over the shutter
// interval [0,1]; a stationary sphere has a zero direction.
type Sphere struct {
	Center   core.Ray
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return newSphere(core.NewRay(center, core.Vec3{}), radius, mat)
}

// NewMovingSphere creates a sphere moving linearly from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *Sphere {
	return newSphere(core.NewRay(center1, center2.Subtract(center1)), radius, mat)
}

func newSphere(center core.Ray, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	box0 := core.NewAABBFromPoints(center.At(0).Subtract(rvec), center.At(0).Add(rvec))
	box1 := core.NewAABBFromPoints(center.At(1).Subtract(rvec), center.At(1).Add(rvec))

	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromBoxes(box0, box1),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if s.Radius == 0 {
		return false
	}

	currentCenter := s.Center.At(ray.Time)
	oc := currentCenter.Subtract(ray.Origin)

	// Quadratic equation coefficients with h = -b/2
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root that lies strictly inside the acceptable range
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	outwardNormal := rec.Point.Subtract(currentCenter).Divide(s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.UV = sphereUV(outwardNormal)
	rec.Material = s.Material

	return true
}

// BoundingBox returns the box enclosing the sphere over the whole shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u is the angle around the Y axis from X=-1, v the angle from Y=-1 to Y=+1.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
