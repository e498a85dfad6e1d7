//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/dotbench/internal/backend/cpu"
	"github.com/born-ml/dotbench/internal/vec"
)

// Dot computes the dot product of a and b on the GPU.
//
// One iteration of work: three fresh buffers are allocated (no pooling),
// the kernel is dispatched over ceil(n/workgroupSize) groups, the call
// blocks until the device retires the command buffer, and the per-element
// products are summed on the host in index order.
func (s *Session) Dot(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("webgpu: length mismatch: %d vs %d", len(a), len(b))
	}
	n := len(a)
	if n == 0 {
		return 0, fmt.Errorf("webgpu: empty input vectors")
	}
	size := uint64(n) * 4

	bufA := s.createBuffer(vec.Bytes(a), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufA.Release()

	bufB := s.createBuffer(vec.Bytes(b), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufB.Release()

	// Output accumulator, zero-initialized by buffer creation.
	bufOut := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer bufOut.Release()

	// Element count for the kernel's tail guard.
	params := make([]byte, 16)
	//nolint:gosec // G115: n is a positive element count
	binary.LittleEndian.PutUint32(params[0:4], uint32(n))
	bufParams := s.createUniformBuffer(params)
	defer bufParams.Release()

	bindGroupLayout := s.pipeline.GetBindGroupLayout(0)
	bindGroup := s.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(bindInputA, bufA, 0, size),
		wgpu.BufferBindingEntry(bindInputB, bufB, 0, size),
		wgpu.BufferBindingEntry(bindOutput, bufOut, 0, size),
		wgpu.BufferBindingEntry(bindParams, bufParams, 0, 16),
	})
	defer bindGroup.Release()

	// One command buffer, one encoding pass.
	encoder := s.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(s.pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.DispatchWorkgroups(groupCount(n), 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	s.queue.Submit(cmdBuffer)

	// The staging-buffer map blocks until the dispatch has retired, so the
	// readback doubles as the completion wait.
	out, err := s.readBuffer(bufOut, size)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExecution, err)
	}

	products, err := vec.Float32View(out, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExecution, err)
	}
	return cpu.Sum(products), nil
}

// createBuffer creates a GPU buffer and uploads initial data.
func (s *Session) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	// Create buffer with MappedAtCreation for initial data upload
	buffer := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	// Copy data to mapped buffer
	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (s *Session) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15 // Round up to 16-byte boundary

	buffer := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (s *Session) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := s.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	s.queue.Submit(cmdBuffer)

	// MapAsync blocks until all submitted work touching the buffer is done.
	err := stagingBuffer.MapAsync(s.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}
