package material

import (
	"testing"

	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/loaders"
)

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Create a 2x2 checkerboard pattern
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), // Row 0 (top in image coords)
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom-left", core.NewVec2(0.1, 0.1), black},
		{"bottom-right", core.NewVec2(0.9, 0.1), white},
		{"top-left", core.NewVec2(0.1, 0.9), white},
		{"top-right", core.NewVec2(0.9, 0.9), black},
		{"u=1 clamps to last column", core.NewVec2(1.0, 0.9), black},
		{"v=0 clamps to last row", core.NewVec2(0.1, 0.0), black},
		{"out of range clamps", core.NewVec2(-3, 7), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := texture.Evaluate(tt.uv, core.Vec3{}); result != tt.expected {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, result)
			}
		})
	}
}

func TestImageTexture_EmptyFallsBackToCyan(t *testing.T) {
	texture := &ImageTexture{}
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan fallback, got %v", got)
	}
}

type testLogger struct {
	messages []string
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}

func TestNewImageTextureFromFile_Missing(t *testing.T) {
	t.Setenv(loaders.ImagesEnvVar, t.TempDir())
	logger := &testLogger{}

	texture := NewImageTextureFromFile("does-not-exist.jpg", logger)
	if got := texture.Evaluate(core.NewVec2(0.3, 0.3), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan fallback for missing image, got %v", got)
	}
	if len(logger.messages) != 1 {
		t.Errorf("Expected one logged warning, got %d", len(logger.messages))
	}
}

func TestNewImageTextureFromData(t *testing.T) {
	data := &loaders.ImageData{
		Width:  2,
		Height: 1,
		Pixels: []byte{255, 0, 0, 0, 51, 255},
	}
	texture := NewImageTextureFromData(data)

	if got := texture.Evaluate(core.NewVec2(0.2, 0.5), core.Vec3{}); !vecClose(got, core.NewVec3(1, 0, 0), 1e-12) {
		t.Errorf("Expected red, got %v", got)
	}
	if got := texture.Evaluate(core.NewVec2(0.8, 0.5), core.Vec3{}); !vecClose(got, core.NewVec3(0, 0.2, 1), 1e-12) {
		t.Errorf("Expected (0,0.2,1), got %v", got)
	}
}
