package webgpu

import "errors"

// Error classes. All of them are unrecoverable for a benchmark run: callers
// are expected to log and exit rather than retry.
var (
	// ErrUnavailable means no compute-capable adapter or device exists.
	ErrUnavailable = errors.New("webgpu: no compute device available")

	// ErrKernelCompile means the kernel source failed schema validation or
	// did not compile into a pipeline.
	ErrKernelCompile = errors.New("webgpu: kernel compilation failed")

	// ErrExecution means a dispatch or readback fault after submission.
	ErrExecution = errors.New("webgpu: device execution fault")
)

// AdapterInfo describes a GPU adapter for reporting.
type AdapterInfo struct {
	Device       string
	Vendor       string
	Architecture string
	Description  string
}
