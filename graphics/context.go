package graphics

// Context defines the interface for an OpenGL rendering context. Components
// that issue driver calls take a Context explicitly rather than relying on
// the implicit current-context global; the caller owns thread affinity and
// must have made the context current on the locked OS thread.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
