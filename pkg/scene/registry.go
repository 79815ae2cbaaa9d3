package scene

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/iommu/raytracing/pkg/core"
)

// ErrUnknownScene is returned by Create for names that are not registered
var ErrUnknownScene = xerrors.New("unknown scene")

// Builder constructs a scene, drawing any randomness from sampler
type Builder func(sampler core.Sampler, logger core.Logger) *Scene

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

type registration struct {
	info  SceneInfo
	build Builder
}

var registry = map[string]registration{}

func register(name, description string, build Builder) {
	registry[name] = registration{
		info:  SceneInfo{Name: name, Description: description},
		build: build,
	}
}

func init() {
	register("bouncing-spheres", "Random small spheres with motion blur around three large spheres", NewBouncingSpheresScene)
	register("checkered-spheres", "Two large spheres with a 3D checker texture", NewCheckeredSpheresScene)
	register("earth", "Image-textured globe (earthmap.jpg)", NewEarthScene)
	register("perlin-spheres", "Marble noise on a ground sphere and a small sphere", NewPerlinSpheresScene)
	register("quads", "Five colored quads around the camera axis", NewQuadsScene)
	register("simple-lights", "Noise-textured spheres lit by a quad light and a sphere light", NewSimpleLightsScene)
	register("cornell-box", "Cornell box with two rotated boxes", NewCornellBoxScene)
	register("cornell-smoke", "Cornell box with black and white smoke blocks", NewCornellSmokeScene)
	register("final-scene", "Everything: box field, media, textures, motion blur and instancing", NewFinalScene)
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns information about every registered scene, sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}

// Create builds the named scene
func Create(name string, sampler core.Sampler, logger core.Logger) (*Scene, error) {
	reg, ok := registry[name]
	if !ok {
		return nil, xerrors.Errorf("%q: %w", name, ErrUnknownScene)
	}
	s := reg.build(sampler, logger)
	s.Name = name
	return s, nil
}
