package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	// Create a 1x1 quad in the XZ plane at y=0
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), DummyMaterial{})

	// Ray shooting down at the center of the quad
	ray := core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0))

	var rec material.HitRecord
	if !quad.Hit(ray, forwardRange, &rec, newTestSampler()) {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(rec.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", rec.T)
	}
	if !vecClose(rec.Point, core.NewVec3(0.5, 0, 0.5), 1e-9) {
		t.Errorf("Expected hit point (0.5,0,0.5), got %v", rec.Point)
	}
}

func TestQuad_Hit_CenterPlanarCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		corner  core.Vec3
		u, v    core.Vec3
		viewDir core.Vec3
	}{
		{"axis aligned", core.NewVec3(-3, -2, 5), core.NewVec3(6, 0, 0), core.NewVec3(0, 4, 0), core.NewVec3(0, 0, 1)},
		{"skewed", core.NewVec3(1, 1, 1), core.NewVec3(2, 1, 0), core.NewVec3(0.5, 0, 3), core.NewVec3(1, -3, 0.2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quad := NewQuad(tt.corner, tt.u, tt.v, DummyMaterial{})
			center := tt.corner.Add(tt.u.Multiply(0.5)).Add(tt.v.Multiply(0.5))
			ray := core.NewRay(center.Subtract(tt.viewDir.Multiply(10)), tt.viewDir)

			var rec material.HitRecord
			if !quad.Hit(ray, forwardRange, &rec, newTestSampler()) {
				t.Fatal("Expected hit at the quad center")
			}
			if math.Abs(rec.UV.X-0.5) > 1e-9 || math.Abs(rec.UV.Y-0.5) > 1e-9 {
				t.Errorf("Expected planar coordinates (0.5,0.5), got (%f,%f)", rec.UV.X, rec.UV.Y)
			}
		})
	}
}

func TestQuad_Hit_IndependentUV(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})
	ray := core.NewRay(core.NewVec3(0.25, 0.75, 1), core.NewVec3(0, 0, -1))

	var rec material.HitRecord
	if !quad.Hit(ray, forwardRange, &rec, newTestSampler()) {
		t.Fatal("Expected hit")
	}
	if math.Abs(rec.UV.X-0.25) > 1e-9 || math.Abs(rec.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected UV (0.25,0.75), got (%f,%f)", rec.UV.X, rec.UV.Y)
	}
}

func TestQuad_Hit_OutsideBounds(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), DummyMaterial{})

	tests := []struct {
		name      string
		rayOrigin core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 1, 0.5)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 1, 0.5)},
		{"outside Z bounds (negative)", core.NewVec3(0.5, 1, -0.5)},
		{"outside Z bounds (positive)", core.NewVec3(0.5, 1, 1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			ray := core.NewRay(tt.rayOrigin, core.NewVec3(0, -1, 0))
			if quad.Hit(ray, forwardRange, &rec, newTestSampler()) {
				t.Errorf("Expected miss for ray outside bounds, but got hit at t=%f", rec.T)
			}
		})
	}
}

func TestQuad_Hit_CornerHits(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), DummyMaterial{})

	corners := []core.Vec3{
		{X: 0, Y: 0, Z: 0}, // corner
		{X: 1, Y: 0, Z: 0}, // corner + u
		{X: 0, Y: 0, Z: 1}, // corner + v
		{X: 1, Y: 0, Z: 1}, // corner + u + v
	}

	for i, cornerPoint := range corners {
		t.Run(fmt.Sprintf("corner_%d", i), func(t *testing.T) {
			var rec material.HitRecord
			ray := core.NewRay(cornerPoint.Add(core.NewVec3(0, 1, 0)), core.NewVec3(0, -1, 0))
			if !quad.Hit(ray, forwardRange, &rec, newTestSampler()) {
				t.Errorf("Expected hit at corner %v, but got miss", cornerPoint)
			}
		})
	}
}

func TestQuad_Hit_ParallelRay(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), DummyMaterial{})

	origins := []core.Vec3{
		core.NewVec3(0.5, 1, 0.5),
		core.NewVec3(-1, 0, 0.5), // in the plane itself
	}
	for _, origin := range origins {
		var rec material.HitRecord
		ray := core.NewRay(origin, core.NewVec3(1, 0, 0))
		if quad.Hit(ray, core.UniverseInterval, &rec, newTestSampler()) {
			t.Errorf("Expected parallel ray from %v to miss", origin)
		}
	}
}

func TestQuad_BoundingBoxPadded(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), DummyMaterial{})
	box := quad.BoundingBox()
	if box.Y.Length() <= 0 {
		t.Errorf("Expected flat quad to have a padded Y extent, got %v", box.Y)
	}

	// A ray straight down must hit the bounding box of the flat quad
	ray := core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0))
	if !box.Hit(ray, forwardRange) {
		t.Error("Expected ray to hit padded bounding box")
	}
}

func TestQuad_FaceNormal(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), DummyMaterial{})

	var rec material.HitRecord
	front := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1))
	if !quad.Hit(front, forwardRange, &rec, newTestSampler()) || !rec.FrontFace || rec.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected front-face hit with +Z normal, got front=%v normal=%v", rec.FrontFace, rec.Normal)
	}

	back := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))
	if !quad.Hit(back, forwardRange, &rec, newTestSampler()) || rec.FrontFace || rec.Normal != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected back-face hit with -Z normal, got front=%v normal=%v", rec.FrontFace, rec.Normal)
	}
}

func TestQuad_CoplanarTieKeepsFirstHit(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewLambertian(core.NewVec3(0, 1, 0))
	corner, u, v := core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)
	list := NewHittableList(NewQuad(corner, u, v, first), NewQuad(corner, u, v, second))

	ray := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1))
	var rec material.HitRecord
	if !list.Hit(ray, forwardRange, &rec, newTestSampler()) {
		t.Fatal("Expected a hit")
	}
	if rec.Material != first {
		t.Error("A quad at the same t replaced the closer-or-equal earlier hit")
	}

	// The far end of the interval is exclusive
	quad := NewQuad(corner, u, v, first)
	if quad.Hit(ray, core.NewInterval(0.001, 1), &rec, newTestSampler()) {
		t.Error("Expected no hit at t equal to rayT.Max")
	}
}
