package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}

// Camera turns normalized screen coordinates into primary rays.
// s runs left to right and t bottom to top, both in [0,1].
type Camera interface {
	GetRay(s, t float64, sampler Sampler) Ray
}
