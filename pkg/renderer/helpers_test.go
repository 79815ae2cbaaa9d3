package renderer

import (
	"testing"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
	"github.com/iommu/raytracing/pkg/material"
)

// testScene implements Scene for tests
type testScene struct {
	camera     CameraConfig
	world      geometry.Hittable
	background integrator.Background
	sampling   SamplingConfig
}

func (s *testScene) GetCamera() *Camera                  { return NewCamera(s.camera) }
func (s *testScene) GetWorld() geometry.Hittable          { return s.world }
func (s *testScene) GetBackground() integrator.Background { return s.background }
func (s *testScene) GetSamplingConfig() SamplingConfig    { return s.sampling }

// newSphereScene creates a square image looking down -Z at a single diffuse sphere
func newSphereScene(width int, sampling SamplingConfig, background integrator.Background) *testScene {
	return &testScene{
		camera: CameraConfig{
			AspectRatio:   1.0,
			ImageWidth:    width,
			VFov:          90,
			LookFrom:      core.NewVec3(0, 0, 0),
			LookAt:        core.NewVec3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			FocusDistance: 1.0,
		},
		world: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		),
		background: background,
		sampling:   sampling,
	}
}

// constSampler returns the same value for every dimension
type constSampler struct {
	value float64
}

func (s constSampler) Get1D() float64 { return s.value }
func (s constSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}
func (s constSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value, s.value, s.value)
}

// testLogger routes render logging to the test output
type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Helper()
	l.t.Logf(format, args...)
}
