package scene

import (
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
	"github.com/iommu/raytracing/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          geometry.Hittable // Root of the scene graph, usually a BVH
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     integrator.Background // Radiance for rays that escape the scene
}

// GetCamera builds the camera from the scene's camera configuration
func (s *Scene) GetCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// GetWorld returns the root hittable
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// GetBackground returns the background radiance
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetSamplingConfig returns the scene's sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// ApplyOverrides replaces the image width, samples per pixel and max depth with
// any positive value given
func (s *Scene) ApplyOverrides(imageWidth, samplesPerPixel, maxDepth int) {
	if imageWidth > 0 {
		s.CameraConfig.ImageWidth = imageWidth
	}
	if samplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = samplesPerPixel
	}
	if maxDepth > 0 {
		s.SamplingConfig.MaxDepth = maxDepth
	}
}

// skyBlue is the flat background of the daylight scenes
var skyBlue = core.NewVec3(0.70, 0.80, 1.00)

// cameraLookingAt returns a camera configuration without depth of field
func cameraLookingAt(lookFrom, lookAt core.Vec3, vfov, aspectRatio float64, imageWidth int) renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio:   aspectRatio,
		ImageWidth:    imageWidth,
		VFov:          vfov,
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 10,
	}
}
