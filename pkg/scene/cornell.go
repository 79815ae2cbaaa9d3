package scene

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
	"github.com/iommu/raytracing/pkg/material"
	"github.com/iommu/raytracing/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellWalls returns the five walls of the Cornell box plus its ceiling light
func cornellWalls(lightCorner, lightU, lightV core.Vec3) (*geometry.HittableList, material.Material) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	walls := geometry.NewHittableList(
		// Right wall (green) - YZ plane at x=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red),
		geometry.NewQuad(lightCorner, lightU, lightV, light),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
	)

	return walls, white
}

// cornellBlocks returns the tall and short boxes, rotated and placed in the room
func cornellBlocks(mat material.Material) (tall, short geometry.Hittable) {
	tall = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat), 15),
		core.NewVec3(265, 0, 295),
	)
	short = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat), -18),
		core.NewVec3(130, 0, 65),
	)
	return tall, short
}

// cornellCamera looks into the open side of the box
func cornellCamera() renderer.CameraConfig {
	return cameraLookingAt(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), 40, 1.0, 600)
}

// NewCornellBoxScene creates a classic Cornell box with two rotated boxes
func NewCornellBoxScene(sampler core.Sampler, logger core.Logger) *Scene {
	world, white := cornellWalls(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105))
	tall, short := cornellBlocks(white)
	world.Add(tall)
	world.Add(short)

	return &Scene{
		World:          geometry.NewBVHFromList(world, sampler),
		CameraConfig:   cornellCamera(),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 20, MaxDepth: 20},
		Background:     integrator.NewSolidBackground(core.Vec3{}),
	}
}

// NewCornellSmokeScene replaces the Cornell boxes with black and white smoke of the
// same shapes, under a larger light
func NewCornellSmokeScene(sampler core.Sampler, logger core.Logger) *Scene {
	world, white := cornellWalls(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305))
	tall, short := cornellBlocks(white)
	world.Add(geometry.NewConstantMediumFromColor(tall, 0.01, core.NewVec3(0, 0, 0)))
	world.Add(geometry.NewConstantMediumFromColor(short, 0.01, core.NewVec3(1, 1, 1)))

	return &Scene{
		World:          geometry.NewBVHFromList(world, sampler),
		CameraConfig:   cornellCamera(),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 200, MaxDepth: 100},
		Background:     integrator.NewSolidBackground(core.Vec3{}),
	}
}
