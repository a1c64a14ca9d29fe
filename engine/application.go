package engine

type ApplicationConfig struct {
	// The application name used in logs and renderer output.
	Name string
	// Output surface size in pixels, if applicable.
	Width  uint32
	Height uint32
	// Projection workers. 0 or 1 projects on the frame loop goroutine.
	Workers int
}
