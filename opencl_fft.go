//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// openCLFFT runs the 2-D inverse transform on an OpenCL device. The
// butterfly schedule is uploaded once from the precomputed table; each
// transform ping-pongs between two device buffers exactly like the CPU
// engine. A single command queue serializes concurrent channel transforms.
type openCLFFT struct {
	mu sync.Mutex

	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program

	rowKernel     *cl.Kernel
	colKernel     *cl.Kernel
	permRowKernel *cl.Kernel
	permColKernel *cl.Kernel

	ping   *cl.MemObject
	pong   *cl.MemObject
	twBuf  *cl.MemObject
	idxBuf *cl.MemObject
	revBuf *cl.MemObject

	n          int
	stages     int
	deviceName string
}

const fftKernelSource = `__kernel void butterfly_rows(
    const int n,
    const int span,
    const int stage_base,
    __global const float4* src,
    __global float4* dst,
    __global const float2* twiddles,
    __global const int2* indices)
{
    int gid = get_global_id(0);
    if (gid >= n * n) {
        return;
    }
    int x = gid % n;
    int y = gid / n;
    int2 ab = indices[stage_base + x];
    float4 a = src[y * n + ab.x];
    float4 b = src[y * n + ab.y];
    float4 v;
    if ((x & span) != 0) {
        float2 w = twiddles[stage_base + x];
        float4 d = a - b;
        v = (float4)(d.x * w.x - d.y * w.y, d.x * w.y + d.y * w.x,
                     d.z * w.x - d.w * w.y, d.z * w.y + d.w * w.x);
    } else {
        v = a + b;
    }
    dst[gid] = v;
}

__kernel void butterfly_cols(
    const int n,
    const int span,
    const int stage_base,
    __global const float4* src,
    __global float4* dst,
    __global const float2* twiddles,
    __global const int2* indices)
{
    int gid = get_global_id(0);
    if (gid >= n * n) {
        return;
    }
    int x = gid % n;
    int y = gid / n;
    int2 ab = indices[stage_base + y];
    float4 a = src[ab.x * n + x];
    float4 b = src[ab.y * n + x];
    float4 v;
    if ((y & span) != 0) {
        float2 w = twiddles[stage_base + y];
        float4 d = a - b;
        v = (float4)(d.x * w.x - d.y * w.y, d.x * w.y + d.y * w.x,
                     d.z * w.x - d.w * w.y, d.z * w.y + d.w * w.x);
    } else {
        v = a + b;
    }
    dst[gid] = v;
}

__kernel void permute_rows(
    const int n,
    __global const float4* src,
    __global float4* dst,
    __global const int* rev)
{
    int gid = get_global_id(0);
    if (gid >= n * n) {
        return;
    }
    int x = gid % n;
    int y = gid / n;
    dst[gid] = src[y * n + rev[x]];
}

__kernel void permute_cols(
    const int n,
    const float scale,
    __global const float4* src,
    __global float4* dst,
    __global const int* rev)
{
    int gid = get_global_id(0);
    if (gid >= n * n) {
        return;
    }
    int x = gid % n;
    int y = gid / n;
    dst[gid] = src[rev[y] * n + x] * scale;
}`

// pickDevice prefers a GPU and falls back to any CPU device.
func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	for _, deviceType := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(deviceType)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// newOpenCLFFT compiles the transform kernels and uploads the butterfly
// schedule for the table's size.
func newOpenCLFFT(t *fftTable) (s *openCLFFT, err error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	s = &openCLFFT{n: t.n, stages: t.stages, deviceName: device.Name()}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{fftKernelSource}); err != nil {
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err = s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.rowKernel, err = s.program.CreateKernel("butterfly_rows"); err != nil {
		return nil, fmt.Errorf("creating row kernel: %w", err)
	}
	if s.colKernel, err = s.program.CreateKernel("butterfly_cols"); err != nil {
		return nil, fmt.Errorf("creating column kernel: %w", err)
	}
	if s.permRowKernel, err = s.program.CreateKernel("permute_rows"); err != nil {
		return nil, fmt.Errorf("creating row permutation kernel: %w", err)
	}
	if s.permColKernel, err = s.program.CreateKernel("permute_cols"); err != nil {
		return nil, fmt.Errorf("creating column permutation kernel: %w", err)
	}

	n := t.n
	texelBytes := n * n * 4 * int(unsafe.Sizeof(float32(0)))
	if s.ping, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, texelBytes); err != nil {
		return nil, fmt.Errorf("allocating ping buffer: %w", err)
	}
	if s.pong, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, texelBytes); err != nil {
		return nil, fmt.Errorf("allocating pong buffer: %w", err)
	}

	entries := len(t.entries)
	twiddles := make([]float32, entries*2)
	indices := make([]int32, entries*2)
	for i, e := range t.entries {
		twiddles[i*2] = e.twRe
		twiddles[i*2+1] = e.twIm
		indices[i*2] = e.srcA
		indices[i*2+1] = e.srcB
	}
	if s.twBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, len(twiddles)*int(unsafe.Sizeof(float32(0)))); err != nil {
		return nil, fmt.Errorf("allocating twiddle buffer: %w", err)
	}
	if s.idxBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, len(indices)*int(unsafe.Sizeof(int32(0)))); err != nil {
		return nil, fmt.Errorf("allocating index buffer: %w", err)
	}
	if s.revBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, len(t.rev)*int(unsafe.Sizeof(int32(0)))); err != nil {
		return nil, fmt.Errorf("allocating permutation buffer: %w", err)
	}
	if _, err = s.queue.EnqueueWriteBufferFloat32(s.twBuf, false, 0, twiddles, nil); err != nil {
		return nil, fmt.Errorf("writing twiddle buffer: %w", err)
	}
	if _, err = s.queue.EnqueueWriteBuffer(s.idxBuf, false, 0,
		len(indices)*int(unsafe.Sizeof(int32(0))), unsafe.Pointer(&indices[0]), nil); err != nil {
		return nil, fmt.Errorf("writing index buffer: %w", err)
	}
	if _, err = s.queue.EnqueueWriteBuffer(s.revBuf, true, 0,
		len(t.rev)*int(unsafe.Sizeof(int32(0))), unsafe.Pointer(&t.rev[0]), nil); err != nil {
		return nil, fmt.Errorf("writing permutation buffer: %w", err)
	}
	return s, nil
}

// transform runs the full 2-D inverse FFT on the device and reads the result
// back into f.
func (s *openCLFFT) transform(f *texField, normalize bool) error {
	if f.n != s.n {
		return fmt.Errorf("opencl fft: engine built for size %d, field has size %d", s.n, f.n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.queue.EnqueueWriteBufferFloat32(s.ping, false, 0, f.px, nil); err != nil {
		return fmt.Errorf("writing field buffer: %w", err)
	}
	src, dst := s.ping, s.pong
	global := []int{s.n * s.n}

	n32 := int32(s.n)
	for stage := 0; stage < s.stages; stage++ {
		span := int32(s.n >> (stage + 1))
		base := int32(stage * s.n)
		if err := s.rowKernel.SetArgs(n32, span, base, src, dst, s.twBuf, s.idxBuf); err != nil {
			return fmt.Errorf("binding row stage %d: %w", stage, err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.rowKernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing row stage %d: %w", stage, err)
		}
		src, dst = dst, src
	}
	if err := s.permRowKernel.SetArgs(n32, src, dst, s.revBuf); err != nil {
		return fmt.Errorf("binding row permutation: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.permRowKernel, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing row permutation: %w", err)
	}
	src, dst = dst, src

	for stage := 0; stage < s.stages; stage++ {
		span := int32(s.n >> (stage + 1))
		base := int32(stage * s.n)
		if err := s.colKernel.SetArgs(n32, span, base, src, dst, s.twBuf, s.idxBuf); err != nil {
			return fmt.Errorf("binding column stage %d: %w", stage, err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.colKernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing column stage %d: %w", stage, err)
		}
		src, dst = dst, src
	}
	scale := float32(1)
	if normalize {
		scale = 1 / float32(s.n*s.n)
	}
	if err := s.permColKernel.SetArgs(n32, scale, src, dst, s.revBuf); err != nil {
		return fmt.Errorf("binding column permutation: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.permColKernel, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing column permutation: %w", err)
	}
	src, dst = dst, src

	if _, err := s.queue.EnqueueReadBufferFloat32(src, true, 0, f.px, nil); err != nil {
		return fmt.Errorf("reading field buffer: %w", err)
	}
	return nil
}

// Close releases all device resources; safe on a partially constructed engine.
func (s *openCLFFT) Close() {
	for _, buf := range []*cl.MemObject{s.revBuf, s.idxBuf, s.twBuf, s.pong, s.ping} {
		if buf != nil {
			buf.Release()
		}
	}
	s.revBuf, s.idxBuf, s.twBuf, s.pong, s.ping = nil, nil, nil, nil, nil
	for _, k := range []*cl.Kernel{s.permColKernel, s.permRowKernel, s.colKernel, s.rowKernel} {
		if k != nil {
			k.Release()
		}
	}
	s.permColKernel, s.permRowKernel, s.colKernel, s.rowKernel = nil, nil, nil, nil
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

func (s *openCLFFT) DeviceName() string {
	return s.deviceName
}
