package bench

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dotbench/internal/backend/cpu"
	"github.com/born-ml/dotbench/internal/logger"
)

// cpuDotter mimics a GPU that agrees with the reference exactly.
type cpuDotter struct{}

func (cpuDotter) Dot(a, b []float32) (float32, error) { return cpu.Dot(a, b), nil }
func (cpuDotter) Name() string                        { return "fake (cpu)" }

// skewedDotter returns results off by a fixed factor.
type skewedDotter struct{ factor float32 }

func (d skewedDotter) Dot(a, b []float32) (float32, error) { return cpu.Dot(a, b) * d.factor, nil }
func (d skewedDotter) Name() string                        { return "fake (skewed)" }

// faultyDotter fails every dispatch.
type faultyDotter struct{ err error }

func (d faultyDotter) Dot(a, b []float32) (float32, error) { return 0, d.err }
func (d faultyDotter) Name() string                        { return "fake (faulty)" }

func testLog() logger.Logger {
	return logger.Text(io.Discard, logger.ParseLevel("error"))
}

func TestRunnerCompletesIterations(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRunner(Config{Size: 512, Iterations: 3, Seed: 1, Tolerance: 1e-3}, cpuDotter{}, &buf, testLog())
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background()))

	// One text block per iteration.
	assert.Equal(t, 3, strings.Count(buf.String(), "GPU dot"))
	assert.Contains(t, buf.String(), "CPU time")
}

func TestRunnerWarmupNotReported(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRunner(Config{Size: 128, Iterations: 1, Warmup: 2, Seed: 1, Tolerance: 1e-3}, cpuDotter{}, &buf, testLog())
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, strings.Count(buf.String(), "GPU dot"))
}

func TestRunnerJSONReport(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRunner(Config{Size: 256, Iterations: 2, Seed: 7, Tolerance: 1e-3, JSON: true}, cpuDotter{}, &buf, testLog())
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &res))
	assert.Equal(t, 1, res.Iteration)
	assert.Equal(t, 256, res.Size)
	assert.Equal(t, res.CPUDot, res.GPUDot)
	assert.Zero(t, res.RelError)
}

func TestRunnerMismatchTerminates(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRunner(Config{Size: 512, Iterations: 10, Seed: 3, Tolerance: 1e-3}, skewedDotter{factor: 1.5}, &buf, testLog())
	require.NoError(t, err)

	err = r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMismatch)
	// Nothing reported before the mismatch killed the loop.
	assert.Empty(t, buf.String())
}

func TestRunnerDeviceFaultPropagates(t *testing.T) {
	fault := errors.New("device lost")
	r, err := NewRunner(Config{Size: 64, Iterations: 1, Seed: 3, Tolerance: 1e-3}, faultyDotter{err: fault}, io.Discard, testLog())
	require.NoError(t, err)

	err = r.Run(context.Background())
	assert.ErrorIs(t, err, fault)
}

func TestRunnerUnboundedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf bytes.Buffer
	r, err := NewRunner(Config{Size: 64, Iterations: 0, Seed: 5, Tolerance: 1e-3}, cpuDotter{}, &buf, testLog())
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("unbounded run did not stop after cancellation")
	}
	assert.NotEmpty(t, buf.String())
}

func TestNewRunnerRejectsBadConfig(t *testing.T) {
	_, err := NewRunner(Config{Size: 0, Tolerance: 1e-3}, cpuDotter{}, io.Discard, testLog())
	require.Error(t, err)

	_, err = NewRunner(Config{Size: 10, Tolerance: 0}, cpuDotter{}, io.Discard, testLog())
	require.Error(t, err)
}

func TestRelativeError(t *testing.T) {
	// Large reference: scaled by magnitude.
	assert.InDelta(t, 0.01, relativeError(101, 100), 1e-9)
	assert.InDelta(t, 0.01, relativeError(-101, -100), 1e-9)
	// Small reference: absolute difference.
	assert.InDelta(t, 0.5, relativeError(0.5, 0), 1e-9)
	// Exact agreement.
	assert.Zero(t, relativeError(20, 20))
}
