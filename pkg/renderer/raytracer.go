package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/geometry"
	"github.com/iommu/raytracing/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Hittable
	GetBackground() integrator.Background
	GetSamplingConfig() SamplingConfig
}

// Raytracer renders a scene by averaging independent path samples per pixel
type Raytracer struct {
	scene      Scene
	camera     *Camera
	world      geometry.Hittable
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
}

// NewRaytracer creates a raytracer for the scene; the image size comes from its camera
func NewRaytracer(scene Scene) *Raytracer {
	camera := scene.GetCamera()
	width, height := camera.ImageSize()

	return &Raytracer{
		scene:      scene,
		camera:     camera,
		world:      scene.GetWorld(),
		width:      width,
		height:     height,
		config:     scene.GetSamplingConfig(),
		integrator: integrator.NewPathTracingIntegrator(scene.GetBackground()),
	}
}

// SetSamplingConfig replaces the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// MergeSamplingConfig overrides only the non-zero fields of the current configuration
func (rt *Raytracer) MergeSamplingConfig(updates SamplingConfig) {
	if updates.SamplesPerPixel > 0 {
		rt.config.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxDepth > 0 {
		rt.config.MaxDepth = updates.MaxDepth
	}
}

// GetSamplingConfig returns the active sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// ImageSize returns the rendered image dimensions
func (rt *Raytracer) ImageSize() (width, height int) {
	return rt.width, rt.height
}

// samplePixel traces one camera path through pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	ray := rt.camera.GetRay(i, j, sampler)
	return rt.integrator.RayColor(ray, rt.world, rt.config.MaxDepth, sampler)
}

// RenderPass renders the full image on the calling goroutine, row by row from the top,
// drawing every random number from sampler. The same sampler seed always yields the
// same image.
func (rt *Raytracer) RenderPass(sampler core.Sampler) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	samplesPerPixel := max(rt.config.SamplesPerPixel, 1)
	scale := 1.0 / float64(samplesPerPixel)

	for j := 0; j < rt.height; j++ {
		for i := 0; i < rt.width; i++ {
			colorAccum := core.Vec3{}
			for sample := 0; sample < samplesPerPixel; sample++ {
				colorAccum = colorAccum.Add(rt.samplePixel(i, j, sampler))
			}
			img.SetRGBA(i, j, ColorToRGBA(colorAccum.Multiply(scale)))
		}
	}

	return img
}

// RenderBounds adds samples to every pixel inside bounds until each holds
// targetSamples, writing into the shared pixel statistics grid. Tiles never overlap,
// so concurrent calls on distinct bounds are safe.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := initRenderStats(bounds, targetSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			for ps.SampleCount < targetSamples {
				ps.AddSample(rt.samplePixel(i, j, sampler))
			}
			stats.updateStats(ps.SampleCount)
		}
	}

	stats.finalizeStats()
	return stats
}

// ColorToRGBA converts a linear color to an 8-bit pixel. Each component is gamma
// corrected with gamma 2, clamped to [0, 0.999] and scaled by 256.
func ColorToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(component float64) uint8 {
	// NaN fails every comparison and would otherwise turn into an arbitrary byte
	if !(component > 0) {
		return 0
	}
	intensity := core.NewInterval(0, 0.999)
	return uint8(256 * intensity.Clamp(math.Sqrt(component)))
}
