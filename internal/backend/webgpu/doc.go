// Package webgpu runs the dot-product kernel on a GPU compute device.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// A Session owns the device, its submission queue, and the compiled compute
// pipeline; it is created once per process and released at exit. Each call
// to Dot uploads both input vectors, dispatches the kernel, blocks until the
// device finishes, and reduces the per-element products on the host.
package webgpu
