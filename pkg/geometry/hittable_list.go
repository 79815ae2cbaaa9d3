package geometry

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/material"
)

// HittableList is a flat collection of objects tested one after another
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends object and grows the list's bounding box
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
	l.bbox = core.NewAABBFromBoxes(l.bbox, object.BoundingBox())
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.Objects = nil
	l.bbox = core.EmptyAABB
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	var tempRec material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), &tempRec, sampler) {
			hitAnything = true
			closestSoFar = tempRec.T
			*rec = tempRec
		}
	}

	return hitAnything
}

func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}
