package geometry

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// Translate moves a child object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Offset(offset),
	}
}

func (t *Translate) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	// Move the ray into object space
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	if !t.Object.Hit(offsetRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	return true
}

func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a child object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Rotate all 8 corners of the child's box and bound the result
	box := object.BoundingBox()
	lo := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.X.Max + float64(1-i)*box.X.Min
				y := float64(j)*box.Y.Max + float64(1-j)*box.Y.Min
				z := float64(k)*box.Z.Max + float64(1-k)*box.Z.Min

				corner := r.toWorld(core.NewVec3(x, y, z))
				lo = core.NewVec3(math.Min(lo.X, corner.X), math.Min(lo.Y, corner.Y), math.Min(lo.Z, corner.Z))
				hi = core.NewVec3(math.Max(hi.X, corner.X), math.Max(hi.Y, corner.Y), math.Max(hi.Z, corner.Z))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(lo, hi)

	return r
}

func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	if !r.Object.Hit(rotated, rayT, rec, sampler) {
		return false
	}

	rec.Point = r.toWorld(rec.Point)
	rec.Normal = r.toWorld(rec.Normal)
	return true
}

func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}
