package geometry

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// Hittable is anything a ray can intersect: primitives, transforms, media and aggregates.
// Implementations are immutable once built and safe for concurrent use.
type Hittable interface {
	// Hit reports whether ray hits the object at some t within rayT. On a hit,
	// rec is overwritten. sampler supplies the caller's random stream for
	// objects with stochastic intersections such as participating media.
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool
	BoundingBox() core.AABB
}
