package renderer

import (
	"strings"

	"github.com/golang/glog"

	"github.com/iommu/raytracing/pkg/core"
)

// DefaultLogger writes render progress through glog
type DefaultLogger struct{}

// NewDefaultLogger creates a glog-backed logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Printf logs at info level, dropping the trailing newline glog adds itself
func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
