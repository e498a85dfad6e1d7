//go:build !windows

package webgpu

import "fmt"

// Session is the GPU compute session. On platforms where the go-webgpu
// native layer is not built, every operation reports ErrUnavailable so the
// rest of the tool still compiles and the CLI can explain the situation at
// runtime instead of failing to build.
type Session struct{}

// New always fails on this platform.
func New() (*Session, error) {
	return nil, fmt.Errorf("%w: webgpu backend is not built for this platform", ErrUnavailable)
}

// Dot is unreachable on this platform; New never returns a session.
func (s *Session) Dot(a, b []float32) (float32, error) {
	return 0, ErrUnavailable
}

// Release is a no-op on this platform.
func (s *Session) Release() {}

// Name identifies the backend for reporting.
func (s *Session) Name() string { return "WebGPU (unavailable)" }

// Info returns an empty adapter description.
func (s *Session) Info() AdapterInfo { return AdapterInfo{} }

// IsAvailable reports whether a WebGPU compute device is present.
func IsAvailable() bool { return false }

// ListAdapters always fails on this platform.
func ListAdapters() ([]AdapterInfo, error) {
	return nil, fmt.Errorf("%w: webgpu backend is not built for this platform", ErrUnavailable)
}
