package geometry

import (
	"math"
	"testing"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

func randomSpheres(n int, sampler core.Sampler) []Hittable {
	objects := make([]Hittable, n)
	for i := range objects {
		center := core.RandomColor(sampler, -10, 10)
		objects[i] = NewSphere(center, core.RandomRange(sampler, 0.1, 1.5), DummyMaterial{})
	}
	return objects
}

func TestBVH_EmptyList(t *testing.T) {
	bvh := NewBVH(nil, newTestSampler())

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if bvh.Hit(ray, forwardRange, &rec, newTestSampler()) {
		t.Error("Expected empty BVH never to report a hit")
	}
	if !bvh.BoundingBox().IsEmpty() {
		t.Errorf("Expected empty bounding box, got %v", bvh.BoundingBox())
	}
	if stats := bvh.getStats(); stats.totalNodes != 0 {
		t.Errorf("Expected no nodes, got %d", stats.totalNodes)
	}

	list := NewHittableList()
	if NewBVHFromList(list, newTestSampler()).Hit(ray, forwardRange, &rec, newTestSampler()) {
		t.Error("Expected BVH from empty list never to report a hit")
	}
}

func TestBVH_SingleObjectAliasedIntoBothChildren(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, DummyMaterial{})
	bvh := NewBVH([]Hittable{sphere}, newTestSampler())

	if bvh.Left != bvh.Right {
		t.Error("Expected a single object to occupy both children")
	}

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !bvh.Hit(ray, forwardRange, &rec, newTestSampler()) || math.Abs(rec.T-4) > 1e-9 {
		t.Errorf("Expected hit at t=4, got hit t=%f", rec.T)
	}

	stats := bvh.getStats()
	if stats.totalNodes != 1 || stats.leafNodes != 1 || stats.totalShapes != 1 {
		t.Errorf("Unexpected stats for single object: %+v", stats)
	}
}

func TestBVH_AgreesWithDirectHits(t *testing.T) {
	sampler := newTestSampler()
	objects := randomSpheres(60, sampler)
	objects = append(objects,
		NewQuad(core.NewVec3(-12, -12, -12), core.NewVec3(24, 0, 0), core.NewVec3(0, 24, 0), DummyMaterial{}),
	)
	bvh := NewBVH(objects, sampler)

	stats := bvh.getStats()
	if stats.totalShapes != len(objects) {
		t.Errorf("Expected %d shapes in leaves, got %d", len(objects), stats.totalShapes)
	}

	for i := 0; i < 500; i++ {
		origin := core.RandomColor(sampler, -20, 20)
		target := core.RandomColor(sampler, -10, 10)
		ray := core.NewRay(origin, target.Subtract(origin))

		var bvhRec material.HitRecord
		bvhHit := bvh.Hit(ray, forwardRange, &bvhRec, sampler)

		for _, object := range objects {
			var rec material.HitRecord
			if !object.Hit(ray, forwardRange, &rec, sampler) {
				continue
			}
			if !bvhHit {
				t.Fatalf("ray %d: object hit at t=%f but BVH reported a miss", i, rec.T)
			}
			if bvhRec.T > rec.T+1e-9 {
				t.Fatalf("ray %d: BVH t=%f is farther than direct hit t=%f", i, bvhRec.T, rec.T)
			}
		}
	}
}

func TestBVH_MatchesHittableList(t *testing.T) {
	sampler := newTestSampler()
	objects := randomSpheres(40, sampler)
	list := NewHittableList(objects...)
	bvh := NewBVHFromList(list, sampler)

	for i := 0; i < 300; i++ {
		origin := core.RandomColor(sampler, -20, 20)
		ray := core.NewRay(origin, core.RandomUnitVector(sampler))

		var listRec, bvhRec material.HitRecord
		listHit := list.Hit(ray, forwardRange, &listRec, sampler)
		bvhHit := bvh.Hit(ray, forwardRange, &bvhRec, sampler)

		if listHit != bvhHit {
			t.Fatalf("ray %d: list hit=%v, BVH hit=%v", i, listHit, bvhHit)
		}
		if listHit && math.Abs(listRec.T-bvhRec.T) > 1e-9 {
			t.Fatalf("ray %d: list t=%f, BVH t=%f", i, listRec.T, bvhRec.T)
		}
	}
}

func TestBVH_DoesNotModifyInput(t *testing.T) {
	sampler := newTestSampler()
	objects := randomSpheres(10, sampler)
	original := make([]Hittable, len(objects))
	copy(original, objects)

	NewBVH(objects, sampler)

	for i := range objects {
		if objects[i] != original[i] {
			t.Fatalf("Input slice reordered at index %d", i)
		}
	}
}

func TestBVH_RightSubtreeClampedToLeftHit(t *testing.T) {
	near := &MockHittable{
		boundingBox: core.NewAABBFromPoints(core.NewVec3(-1, -1, -3), core.NewVec3(1, 1, -2)),
		hitFn: func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool {
			if !rayT.Contains(2) {
				return false
			}
			rec.T = 2
			return true
		},
	}
	var seenMax float64
	far := &MockHittable{
		boundingBox: core.NewAABBFromPoints(core.NewVec3(-1, -1, -9), core.NewVec3(1, 1, -8)),
		hitFn: func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool {
			seenMax = rayT.Max
			return false
		},
	}

	// Two objects are stored in input order
	bvh := NewBVH([]Hittable{near, far}, newTestSampler())

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !bvh.Hit(ray, forwardRange, &rec, newTestSampler()) || rec.T != 2 {
		t.Fatalf("Expected closest hit at t=2, got %f", rec.T)
	}
	if seenMax != 2 {
		t.Errorf("Expected right subtree to be queried up to t=2, got %f", seenMax)
	}
}

func TestBVH_PrunesOnBoundingBoxMiss(t *testing.T) {
	mock := &MockHittable{
		boundingBox: core.NewAABBFromPoints(core.NewVec3(5, 5, 5), core.NewVec3(6, 6, 6)),
		hitFn: func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool {
			return true
		},
	}
	bvh := NewBVH([]Hittable{mock}, newTestSampler())

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if bvh.Hit(ray, forwardRange, &rec, newTestSampler()) {
		t.Error("Expected miss when the ray misses the node bounding box")
	}
	if mock.calls != 0 {
		t.Errorf("Expected no primitive tests after a box miss, got %d", mock.calls)
	}
}
