//go:build windows

package webgpu

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Session owns the compute device, its submission queue, and the compiled
// dot-product pipeline. Immutable after New; safe to share across sequential
// dispatches. Only one command buffer is ever in flight.
type Session struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline

	info AdapterInfo
}

// New opens the default high-performance adapter and compiles the kernel.
// Fails with ErrUnavailable if no compute device exists and ErrKernelCompile
// if the kernel does not validate or build. There is no software fallback.
func New() (s *Session, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("%w: native library not available: %v", ErrUnavailable, r)
		}
	}()

	if verr := validateKernel(dotProductShader, kernelEntryPoint, dotProductBindings); verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrKernelCompile, verr)
	}

	instance := wgpu.CreateInstance(nil)

	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request adapter: %v", ErrUnavailable, adapterErr)
	}

	info := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request device: %v", ErrUnavailable, deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to get queue", ErrUnavailable)
	}

	shader, pipeline, perr := compilePipeline(device)
	if perr != nil {
		queue.Release()
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, perr
	}

	return &Session{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
		shader:   shader,
		pipeline: pipeline,
		info: AdapterInfo{
			Device:       info.Device,
			Vendor:       info.Vendor,
			Architecture: info.Architecture,
			Description:  info.Description,
		},
	}, nil
}

// compilePipeline builds the compute pipeline for the dot-product kernel.
// WGSL compile errors surface as panics in the native layer.
func compilePipeline(device *wgpu.Device) (shader *wgpu.ShaderModule, pipeline *wgpu.ComputePipeline, err error) {
	defer func() {
		if r := recover(); r != nil {
			shader, pipeline = nil, nil
			err = fmt.Errorf("%w: %v", ErrKernelCompile, r)
		}
	}()

	shader = device.CreateShaderModuleWGSL(dotProductShader)
	pipeline = device.CreateComputePipelineSimple(nil, shader, kernelEntryPoint)
	return shader, pipeline, nil
}

// Release frees all device resources. Must be called when the session is no
// longer needed; the session is unusable afterwards.
func (s *Session) Release() {
	if s.pipeline != nil {
		s.pipeline.Release()
		s.pipeline = nil
	}
	if s.shader != nil {
		s.shader.Release()
		s.shader = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
	if s.instance != nil {
		s.instance.Release()
		s.instance = nil
	}
}

// Name returns a human-readable description of the device in use.
func (s *Session) Name() string {
	if s.info.Device != "" || s.info.Vendor != "" {
		return fmt.Sprintf("WebGPU (%s %s)", s.info.Device, s.info.Vendor)
	}
	return "WebGPU"
}

// Info returns information about the adapter backing this session.
func (s *Session) Info() AdapterInfo {
	return s.info
}

// IsAvailable checks if a WebGPU compute device is present on this system.
func IsAvailable() (available bool) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// ListAdapters returns information about available GPU adapters.
// WebGPU has no enumeration API, so this reports the default adapter.
func ListAdapters() (adapters []AdapterInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			adapters = nil
			err = fmt.Errorf("%w: native library not available: %v", ErrUnavailable, r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, adapterErr := instance.RequestAdapter(nil)
	if adapterErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, adapterErr)
	}
	defer adapter.Release()

	info := adapter.GetInfo()

	return []AdapterInfo{{
		Device:       info.Device,
		Vendor:       info.Vendor,
		Architecture: info.Architecture,
		Description:  info.Description,
	}}, nil
}
