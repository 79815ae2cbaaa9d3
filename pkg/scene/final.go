package scene

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
	"github.com/iommu/raytracing/pkg/material"
	"github.com/iommu/raytracing/pkg/renderer"
)

const (
	boxesPerSide  = 20
	groundBoxSize = 100.0
	foamSpheres   = 1000
)

// NewFinalScene creates the showcase scene that combines every primitive, material,
// texture and medium over a field of random-height boxes
func NewFinalScene(sampler core.Sampler, logger core.Logger) *Scene {
	world := geometry.NewHittableList()

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := geometry.NewHittableList()
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000.0 + float64(i)*groundBoxSize
			z0 := -1000.0 + float64(j)*groundBoxSize
			y1 := core.RandomRange(sampler, 1, 101)
			boxes.Add(geometry.NewBox(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+groundBoxSize, y1, z0+groundBoxSize),
				ground,
			))
		}
	}
	world.Add(geometry.NewBVHFromList(boxes, sampler))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	world.Add(geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	world.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	world.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)))

	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	world.Add(boundary)
	world.Add(geometry.NewConstantMediumFromColor(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	world.Add(geometry.NewConstantMediumFromColor(mist, 0.0001, core.NewVec3(1, 1, 1)))

	earth := material.NewTexturedLambertian(material.NewImageTextureFromFile("earthmap.jpg", logger))
	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth))

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(0.2, sampler))
	world.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	foam := geometry.NewHittableList()
	for i := 0; i < foamSpheres; i++ {
		foam.Add(geometry.NewSphere(core.RandomColor(sampler, 0, 165), 10, white))
	}
	world.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVHFromList(foam, sampler), 15),
		core.NewVec3(-100, 270, 395),
	))

	camera := cameraLookingAt(core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0), 40, 1.0, 400)
	camera.MotionBlur = true

	return &Scene{
		World:          world,
		CameraConfig:   camera,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 10, MaxDepth: 4},
		Background:     integrator.NewSolidBackground(core.Vec3{}),
	}
}
