package scene

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
	"github.com/iommu/raytracing/pkg/material"
	"github.com/iommu/raytracing/pkg/renderer"
)

// NewQuadsScene creates five colored quads facing the camera axis
func NewQuadsScene(sampler core.Sampler, logger core.Logger) *Scene {
	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	world := geometry.NewHittableList(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	return &Scene{
		World:          world,
		CameraConfig:   cameraLookingAt(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0), 80, 1.0, 400),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 10, MaxDepth: 10},
		Background:     integrator.NewSolidBackground(skyBlue),
	}
}

// NewSimpleLightsScene creates marble spheres in darkness, lit by a quad light and a
// sphere light
func NewSimpleLightsScene(sampler core.Sampler, logger core.Logger) *Scene {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))
	diffLight := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), diffLight),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, diffLight),
	)

	return &Scene{
		World:          world,
		CameraConfig:   cameraLookingAt(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20, 16.0/9.0, 800),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 10},
		Background:     integrator.NewSolidBackground(core.Vec3{}),
	}
}
