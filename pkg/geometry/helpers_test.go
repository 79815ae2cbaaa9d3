package geometry

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// DummyMaterial never scatters
type DummyMaterial struct{}

func (DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// MockHittable for testing
type MockHittable struct {
	boundingBox core.AABB
	hitFn       func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool
	calls       int
}

func (m *MockHittable) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	m.calls++
	return m.hitFn(ray, rayT, rec)
}

func (m *MockHittable) BoundingBox() core.AABB {
	return m.boundingBox
}

var forwardRange = core.NewInterval(0.001, math.Inf(1))

func newTestSampler() core.Sampler {
	return core.NewSeededSampler(42)
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
