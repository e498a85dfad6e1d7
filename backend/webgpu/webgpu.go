// Package webgpu provides the GPU dot-product session for library use.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via wgpu-native/D3D12)
//   - macOS (via wgpu-native/Metal)
//   - Linux (via wgpu-native/Vulkan)
//
// Example:
//
//	session, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Release()
//
//	dot, err := session.Dot(a, b)
package webgpu

import (
	internalwebgpu "github.com/born-ml/dotbench/internal/backend/webgpu"
)

// Session owns the compute device, queue, and compiled dot-product pipeline.
type Session = internalwebgpu.Session

// AdapterInfo describes a GPU adapter.
type AdapterInfo = internalwebgpu.AdapterInfo

// Error classes surfaced by the session.
var (
	ErrUnavailable   = internalwebgpu.ErrUnavailable
	ErrKernelCompile = internalwebgpu.ErrKernelCompile
	ErrExecution     = internalwebgpu.ErrExecution
)

// New opens the default compute device and compiles the kernel.
// Call Release() when done to free GPU resources.
func New() (*Session, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
// Useful for graceful fallback when no GPU is present.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}

// ListAdapters returns information about available GPU adapters.
func ListAdapters() ([]AdapterInfo, error) {
	return internalwebgpu.ListAdapters()
}
