package scene

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
	"github.com/iommu/raytracing/pkg/material"
	"github.com/iommu/raytracing/pkg/renderer"
)

// NewBouncingSpheresScene creates a checkered ground covered in small random spheres,
// the diffuse ones moving upward during the shutter interval, plus one large glass,
// one large diffuse and one large metal sphere
func NewBouncingSpheresScene(sampler core.Sampler, logger core.Logger) *Scene {
	world := geometry.NewHittableList()

	checker := material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	landmark := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(landmark).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				center2 := center.Add(core.NewVec3(0, core.RandomRange(sampler, 0, 0.5), 0))
				world.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	camera := cameraLookingAt(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 16.0/9.0, 600)
	camera.DefocusAngle = 0.6
	camera.FocusDistance = 10.0
	camera.MotionBlur = true

	return &Scene{
		World:          geometry.NewBVHFromList(world, sampler),
		CameraConfig:   camera,
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 10, MaxDepth: 10},
		Background:     integrator.NewSolidBackground(skyBlue),
	}
}

// NewCheckeredSpheresScene creates two large spheres sharing one spatial checker texture
func NewCheckeredSpheresScene(sampler core.Sampler, logger core.Logger) *Scene {
	checker := material.NewTexturedLambertian(
		material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return &Scene{
		World:          world,
		CameraConfig:   cameraLookingAt(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 16.0/9.0, 400),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 10, MaxDepth: 10},
		Background:     integrator.NewSolidBackground(skyBlue),
	}
}

// NewEarthScene creates a globe textured with earthmap.jpg. A missing image renders
// cyan instead of failing.
func NewEarthScene(sampler core.Sampler, logger core.Logger) *Scene {
	earthTexture := material.NewImageTextureFromFile("earthmap.jpg", logger)
	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earthTexture))

	return &Scene{
		World:          geometry.NewHittableList(globe),
		CameraConfig:   cameraLookingAt(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), 20, 16.0/9.0, 400),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 10, MaxDepth: 10},
		Background:     integrator.NewSolidBackground(skyBlue),
	}
}

// NewPerlinSpheresScene creates a marble ground and a marble sphere
func NewPerlinSpheresScene(sampler core.Sampler, logger core.Logger) *Scene {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	return &Scene{
		World:          world,
		CameraConfig:   cameraLookingAt(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 16.0/9.0, 400),
		SamplingConfig: renderer.SamplingConfig{SamplesPerPixel: 10, MaxDepth: 10},
		Background:     integrator.NewSolidBackground(skyBlue),
	}
}
