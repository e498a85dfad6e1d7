package webgpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCountCoverage(t *testing.T) {
	cases := []struct {
		n    int
		want uint32
	}{
		{1, 1},
		{63, 1},
		{64, 1},
		{65, 2},
		{128, 2},
		{129, 3},
		{1_000_000, 15625},
		{1_000_001, 15626},
	}
	for _, tc := range cases {
		got := groupCount(tc.n)
		assert.Equal(t, tc.want, got, "n=%d", tc.n)
		// Invariants: full coverage, no spare group.
		assert.GreaterOrEqual(t, int(got)*workgroupSize, tc.n, "n=%d under-covered", tc.n)
		assert.Less(t, (int(got)-1)*workgroupSize, tc.n, "n=%d has a spare group", tc.n)
	}
}

func TestValidateKernelAcceptsShipped(t *testing.T) {
	require.NoError(t, validateKernel(dotProductShader, kernelEntryPoint, dotProductBindings))
}

func TestValidateKernelMissingEntryPoint(t *testing.T) {
	err := validateKernel(dotProductShader, "dot", dotProductBindings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry point")
}

func TestValidateKernelMissingBinding(t *testing.T) {
	// Drop the output binding from the source.
	broken := strings.Replace(dotProductShader,
		"@group(0) @binding(2) var<storage, read_write> result: array<f32>;", "", 1)
	err := validateKernel(broken, kernelEntryPoint, dotProductBindings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding 2")
}

func TestValidateKernelWrongAddressSpace(t *testing.T) {
	// An output declared read-only breaks the contract even though the
	// binding number still matches.
	broken := strings.Replace(dotProductShader,
		"var<storage, read_write> result", "var<storage, read> result", 1)
	err := validateKernel(broken, kernelEntryPoint, dotProductBindings)
	require.Error(t, err)
}

func TestKernelGuardsTail(t *testing.T) {
	// The padded tail invocations must be masked against the element count.
	assert.Contains(t, dotProductShader, "idx < params.size")
}
