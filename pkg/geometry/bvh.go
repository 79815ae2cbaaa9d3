package geometry

import (
	"sort"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// BVHNode is a node of a bounding volume hierarchy. Leaves hold primitives
// directly in Left and Right; a single-object range puts the same object in both.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVH builds a hierarchy over objects. The split axis at every node is
// drawn from sampler. The input slice is not modified.
func NewBVH(objects []Hittable, sampler core.Sampler) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{bbox: core.EmptyAABB}
	}

	// Make a copy of the objects slice to avoid modifying the original
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, 0, len(objectsCopy), sampler)
}

// NewBVHFromList builds a hierarchy over the objects of list
func NewBVHFromList(list *HittableList, sampler core.Sampler) *BVHNode {
	return NewBVH(list.Objects, sampler)
}

// buildBVH builds the node for objects[start:end]
func buildBVH(objects []Hittable, start, end int, sampler core.Sampler) *BVHNode {
	node := &BVHNode{bbox: core.EmptyAABB}
	for _, object := range objects[start:end] {
		node.bbox = core.NewAABBFromBoxes(node.bbox, object.BoundingBox())
	}

	axis := core.RandomInt(sampler, 0, 2)

	switch span := end - start; span {
	case 1:
		node.Left = objects[start]
		node.Right = objects[start]
	case 2:
		node.Left = objects[start]
		node.Right = objects[start+1]
	default:
		sortByAxis(objects[start:end], axis)
		mid := start + span/2
		node.Left = buildBVH(objects, start, mid, sampler)
		node.Right = buildBVH(objects, mid, end, sampler)
	}

	return node
}

// sortByAxis orders objects by the minimum of their bounding box along axis
func sortByAxis(objects []Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Axis(axis).Min < objects[j].BoundingBox().Axis(axis).Min
	})
}

// Hit tests the left subtree over rayT, then the right subtree only up to
// the closest hit found on the left.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if n.Left == nil || !n.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.Left.Hit(ray, rayT, rec, sampler)
	rightMax := rayT.Max
	if hitLeft {
		rightMax = rec.T
	}
	hitRight := n.Right.Hit(ray, core.NewInterval(rayT.Min, rightMax), rec, sampler)

	return hitLeft || hitRight
}

func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	avgDepth    float64
	totalShapes int
}

// getStats returns statistics about the BVH structure
func (n *BVHNode) getStats() bvhStats {
	stats := bvhStats{}
	if n.Left == nil {
		return stats
	}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.leafNodes > 0 {
		stats.avgDepth = stats.avgDepth / float64(stats.leafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	left, leftIsNode := n.Left.(*BVHNode)
	right, rightIsNode := n.Right.(*BVHNode)
	if !leftIsNode && !rightIsNode {
		stats.leafNodes++
		stats.avgDepth += float64(depth)
		stats.totalShapes += 2
		if n.Left == n.Right {
			stats.totalShapes--
		}
		return
	}

	if leftIsNode {
		left.collectStats(depth+1, stats)
	}
	if rightIsNode {
		right.collectStats(depth+1, stats)
	}
}
