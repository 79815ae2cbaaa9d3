package renderer

import (
	"math"

	"github.com/iommu/raytracing/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	AspectRatio   float64   // Ratio of image width over height
	ImageWidth    int       // Rendered image width in pixel count
	VFov          float64   // Vertical field of view in degrees
	LookFrom      core.Vec3 // Point camera is looking from
	LookAt        core.Vec3 // Point camera is looking at
	Up            core.Vec3 // Camera-relative "up" direction
	DefocusAngle  float64   // Variation angle of rays through each pixel, in degrees
	FocusDistance float64   // Distance from LookFrom to plane of perfect focus
	MotionBlur    bool      // Sample a ray time in [0, 1) for moving objects
}

// DefaultCameraConfig returns the camera used when a scene does not override it
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:   1.0,
		ImageWidth:    100,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 10,
	}
}

// Camera generates primary rays for pixel coordinates
type Camera struct {
	config       CameraConfig
	imageWidth   int
	imageHeight  int
	center       core.Vec3
	pixel00      core.Vec3 // Location of pixel (0, 0)
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	imageWidth := config.ImageWidth
	if imageWidth < 1 {
		imageWidth = 1
	}
	aspectRatio := config.AspectRatio
	if aspectRatio <= 0 {
		aspectRatio = 1.0
	}

	// Image height is at least one pixel
	imageHeight := int(float64(imageWidth) / aspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * (float64(imageWidth) / float64(imageHeight))

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(imageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.LookFrom.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(config.DefocusAngle*math.Pi/180.0/2)

	return &Camera{
		config:       config,
		imageWidth:   imageWidth,
		imageHeight:  imageHeight,
		center:       config.LookFrom,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// ImageSize returns the image dimensions derived from the configuration
func (c *Camera) ImageSize() (width, height int) {
	return c.imageWidth, c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns a ray through a random point in the square around pixel (i, j),
// originating from the defocus disk when depth of field is enabled
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	time := 0.0
	if c.config.MotionBlur {
		time = sampler.Get1D()
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), time)
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
