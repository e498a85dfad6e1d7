package webgpu

// workgroupSize is the number of invocations per workgroup. The dispatch
// rounds the element count up to a whole number of groups, so the kernel
// guards the padded tail invocations against out-of-bounds access.
const workgroupSize = 64

// kernelEntryPoint is the name of the compute entry function.
const kernelEntryPoint = "dot_product"

// dotProductShader multiplies corresponding elements of a and b into result.
// No on-device reduction; the host sums the products after readback.
const dotProductShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(64)
fn dot_product(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = a[idx] * b[idx];
    }
}
`
