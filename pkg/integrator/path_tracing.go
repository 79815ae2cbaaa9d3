package integrator

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/material"
)

// hitEpsilon keeps scattered rays from re-hitting the surface they left
const hitEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// maximum depth and no light sampling
type PathTracingIntegrator struct {
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSolidBackground(core.Vec3{})
	}
	return &PathTracingIntegrator{background: background}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !world.Hit(ray, core.NewInterval(hitEpsilon, math.Inf(1)), &hit, sampler) {
		return pt.background.Color(ray)
	}

	colorEmitted := material.Emitted(hit.Material, hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, world, depth-1, sampler))
	return colorEmitted.Add(colorScattered)
}
