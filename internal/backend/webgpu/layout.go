package webgpu

import (
	"fmt"
	"strings"
)

// Fixed argument slots shared between the host and the kernel. The bind
// group entries and the WGSL @binding declarations must agree on these.
const (
	bindInputA = 0
	bindInputB = 1
	bindOutput = 2
	bindParams = 3
)

// kernelBinding declares one slot of the host/kernel buffer contract.
type kernelBinding struct {
	binding uint32
	name    string
	space   string // WGSL address space qualifier, e.g. "storage, read"
}

// dotProductBindings is the slot contract for the dot-product kernel.
var dotProductBindings = []kernelBinding{
	{bindInputA, "a", "storage, read"},
	{bindInputB, "b", "storage, read"},
	{bindOutput, "result", "storage, read_write"},
	{bindParams, "params", "uniform"},
}

// validateKernel checks that the WGSL source declares the entry point and
// every binding of the schema. This runs at pipeline-build time so a kernel
// edit that breaks the slot contract fails at startup instead of producing
// silently wrong bindings.
func validateKernel(source, entryPoint string, schema []kernelBinding) error {
	if !strings.Contains(source, "fn "+entryPoint+"(") {
		return fmt.Errorf("kernel source missing entry point %q", entryPoint)
	}
	for _, kb := range schema {
		decl := fmt.Sprintf("@binding(%d) var<%s> %s", kb.binding, kb.space, kb.name)
		if !strings.Contains(source, decl) {
			return fmt.Errorf("kernel source missing binding %d: want %q", kb.binding, decl)
		}
	}
	return nil
}

// groupCount returns ceil(n / workgroupSize), the number of workgroups
// needed to cover n elements. The final group may contain padding
// invocations; the kernel masks those against params.size.
func groupCount(n int) uint32 {
	//nolint:gosec // G115: n is a positive element count
	return uint32((n + workgroupSize - 1) / workgroupSize)
}
