package geometry

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (from U × V)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // n / (n · n), for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	// Bounds of both diagonals
	diag1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	diag2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        n.Divide(n.Dot(n)),
		bbox:     core.NewAABBFromBoxes(diag1, diag2),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	denominator := q.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	// Open at the far end so a coplanar quad at the current closest t keeps the earlier hit
	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if t < rayT.Min || t >= rayT.Max {
		return false
	}

	// Planar coordinates of the hit point relative to the corner
	intersection := ray.At(t)
	planarHit := intersection.Subtract(q.Corner)
	alpha := q.W.Dot(planarHit.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planarHit))

	if !isInterior(alpha, beta) {
		return false
	}

	rec.T = t
	rec.Point = intersection
	rec.UV = core.NewVec2(alpha, beta)
	rec.Material = q.Material
	rec.SetFaceNormal(ray, q.Normal)

	return true
}

func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

func isInterior(alpha, beta float64) bool {
	unit := core.NewInterval(0, 1)
	return unit.Contains(alpha) && unit.Contains(beta)
}
