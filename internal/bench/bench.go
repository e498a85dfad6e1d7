// Package bench drives the GPU-vs-CPU dot-product benchmark loop.
//
// Each iteration generates fresh random vectors, computes the dot product on
// the GPU and on the CPU reference, verifies the two agree within a relative
// tolerance, and reports timings. The loop runs until the context is
// cancelled or the configured iteration count is reached.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/goccy/go-json"

	"github.com/born-ml/dotbench/internal/backend/cpu"
	"github.com/born-ml/dotbench/internal/logger"
	"github.com/born-ml/dotbench/internal/vec"
)

// ErrMismatch means the GPU result disagreed with the CPU reference beyond
// the configured tolerance. It terminates the loop; there is no retry.
var ErrMismatch = errors.New("bench: GPU and CPU results disagree")

// Dotter computes a dot product on some compute device.
type Dotter interface {
	Dot(a, b []float32) (float32, error)
	Name() string
}

// Config holds the benchmark parameters.
type Config struct {
	Size       int     // elements per vector
	Iterations int     // 0 means run until the context is cancelled
	Warmup     int     // unreported iterations before measurement
	Seed       int64   // RNG seed; 0 derives one from the clock
	Tolerance  float64 // relative error bound for verification
	JSON       bool    // emit one JSON object per iteration instead of text
}

// Result is one iteration's measurements.
type Result struct {
	Iteration int           `json:"iteration"`
	Size      int           `json:"size"`
	GenTime   time.Duration `json:"gen_time_ns"`
	GPUDot    float32       `json:"gpu_dot"`
	GPUTime   time.Duration `json:"gpu_time_ns"`
	CPUDot    float32       `json:"cpu_dot"`
	CPUTime   time.Duration `json:"cpu_time_ns"`
	RelError  float64       `json:"rel_error"`
}

// Runner executes the benchmark loop against a Dotter.
type Runner struct {
	cfg Config
	gpu Dotter
	out io.Writer
	log logger.Logger
	rng *rand.Rand
}

// NewRunner validates cfg and builds a Runner writing reports to out.
func NewRunner(cfg Config, gpu Dotter, out io.Writer, log logger.Logger) (*Runner, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("bench: size must be positive, got %d", cfg.Size)
	}
	if cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("bench: tolerance must be positive, got %g", cfg.Tolerance)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		cfg: cfg,
		gpu: gpu,
		out: out,
		log: log,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Run executes warmup plus the measured loop. It returns nil when the
// iteration budget is exhausted or the context is cancelled, and an error on
// any device fault or verification mismatch.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("starting benchmark",
		"device", r.gpu.Name(),
		"size", r.cfg.Size,
		"iterations", r.cfg.Iterations,
		"warmup", r.cfg.Warmup,
		"tolerance", r.cfg.Tolerance,
	)

	for i := 0; i < r.cfg.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if _, err := r.iterate(0); err != nil {
			return err
		}
	}

	for i := 1; r.cfg.Iterations == 0 || i <= r.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			r.log.Info("benchmark stopped", "completed", i-1)
			return nil
		}
		res, err := r.iterate(i)
		if err != nil {
			return err
		}
		if err := r.report(res); err != nil {
			return err
		}
	}
	return nil
}

// iterate runs one generate → GPU → CPU → verify cycle.
func (r *Runner) iterate(iteration int) (Result, error) {
	genStart := time.Now()
	a := vec.Uniform(r.rng, r.cfg.Size)
	b := vec.Uniform(r.rng, r.cfg.Size)
	genElapsed := time.Since(genStart)

	gpuStart := time.Now()
	gpuDot, err := r.gpu.Dot(a, b)
	if err != nil {
		return Result{}, fmt.Errorf("bench: iteration %d: %w", iteration, err)
	}
	gpuElapsed := time.Since(gpuStart)

	cpuStart := time.Now()
	cpuDot := cpu.Dot(a, b)
	cpuElapsed := time.Since(cpuStart)

	relErr := relativeError(gpuDot, cpuDot)
	if relErr > r.cfg.Tolerance {
		return Result{}, fmt.Errorf("%w: gpu=%v cpu=%v rel_error=%g tolerance=%g",
			ErrMismatch, gpuDot, cpuDot, relErr, r.cfg.Tolerance)
	}

	return Result{
		Iteration: iteration,
		Size:      r.cfg.Size,
		GenTime:   genElapsed,
		GPUDot:    gpuDot,
		GPUTime:   gpuElapsed,
		CPUDot:    cpuDot,
		CPUTime:   cpuElapsed,
		RelError:  relErr,
	}, nil
}

func (r *Runner) report(res Result) error {
	if r.cfg.JSON {
		line, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("bench: marshal report: %w", err)
		}
		_, err = fmt.Fprintf(r.out, "%s\n", line)
		return err
	}

	_, err := fmt.Fprintf(r.out,
		"Vector gen : %v\n\nGPU dot    : %v\nGPU time   : %v\n\nCPU dot    : %v\nCPU time   : %v\n\n",
		res.GenTime, res.GPUDot, res.GPUTime, res.CPUDot, res.CPUTime)
	return err
}

// relativeError returns |gpu-cpu| scaled by the reference magnitude.
// For references below 1 the absolute difference is used, so near-zero
// results don't blow up the ratio.
func relativeError(gpuDot, cpuDot float32) float64 {
	diff := float64(gpuDot) - float64(cpuDot)
	if diff < 0 {
		diff = -diff
	}
	ref := float64(cpuDot)
	if ref < 0 {
		ref = -ref
	}
	if ref > 1 {
		return diff / ref
	}
	return diff
}
