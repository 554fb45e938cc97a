// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/backend"
	"github.com/gogpu/gridtext/pnm"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// halProvider is a gpucontext.DeviceProvider exposing a HAL device.
type halProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p *halProvider) Device() gpucontext.Device { return nil }
func (p *halProvider) Queue() gpucontext.Queue { return nil }
func (p *halProvider) Adapter() gpucontext.Adapter { return nil }
func (p *halProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *halProvider) HalDevice() any { return p.device }
func (p *halProvider) HalQueue() any { return p.queue }

// plainProvider has no HAL accessors.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device { return nil }
func (plainProvider) Queue() gpucontext.Queue { return nil }
func (plainProvider) Adapter() gpucontext.Adapter { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }

func testConfig(w, h int) Config {
	return Config{Config: backend.Config{Width: w, Height: h}}
}

func testAtlas() *pnm.Image {
	const w, h = 2 * gridtext.AtlasColumns, 2 * gridtext.AtlasRows
	img := &pnm.Image{Width: w, Height: h, Pix: make([]byte, w*h)}
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	return img
}

func TestCompileShader(t *testing.T) {
	words, err := compileShader(gridShaderSource)
	if err != nil {
		t.Fatalf("compileShader() error = %v", err)
	}
	if len(words) == 0 {
		t.Fatal("compileShader() returned no words")
	}
	const spirvMagic = 0x07230203
	if words[0] != spirvMagic {
		t.Errorf("first word = %#x, want SPIR-V magic %#x", words[0], spirvMagic)
	}

	if _, err := compileShader(""); err == nil {
		t.Error("compileShader(\"\") succeeded")
	}
}

func TestVertexLayout(t *testing.T) {
	layout := vertexLayout()
	if len(layout) != 1 {
		t.Fatalf("got %d buffer layouts, want 1", len(layout))
	}
	if layout[0].ArrayStride != gridtext.VertexStride {
		t.Errorf("ArrayStride = %d, want %d", layout[0].ArrayStride, gridtext.VertexStride)
	}
	if n := len(layout[0].Attributes); n != 2 {
		t.Fatalf("got %d attributes, want 2", n)
	}
	if layout[0].Attributes[1].Offset != 8 {
		t.Errorf("uv offset = %d, want 8", layout[0].Attributes[1].Offset)
	}
}

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil, nil, testConfig(4, 4)); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("New(nil) error = %v, want ErrNilHALDevice", err)
	}
}

func TestNewInvalid(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := New(device, queue, testConfig(0, 4)); err == nil {
		t.Error("New() with zero width succeeded")
	}
	cfg := testConfig(4, 4)
	cfg.Format = gputypes.TextureFormatDepth24PlusStencil8
	if _, err := New(device, queue, cfg); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("New() with depth format error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRendererDraw(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, testConfig(200, 100))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()

	if r.Format() != gputypes.TextureFormatR8Unorm {
		t.Errorf("Format() = %v, want R8Unorm", r.Format())
	}

	grid := gridtext.NewGrid(10, 200, 100)
	grid.InsertText("hello, world")
	var f gridtext.Frame
	if err := f.Build(grid); err != nil {
		t.Fatal(err)
	}

	if err := r.Draw(f.Vertices, f.Indices); !errors.Is(err, backend.ErrNoAtlas) {
		t.Errorf("Draw() before SetAtlas error = %v, want ErrNoAtlas", err)
	}

	if err := r.SetAtlas(testAtlas()); err != nil {
		t.Fatalf("SetAtlas() error = %v", err)
	}
	if r.pipeline == nil || r.bindGroup == nil {
		t.Fatal("SetAtlas() did not create pipeline and bind group")
	}

	if err := r.Draw(f.Vertices, f.Indices); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	// Frames can be drawn repeatedly and may be empty.
	if err := r.Draw(f.Vertices, f.Indices); err != nil {
		t.Fatalf("second Draw() error = %v", err)
	}
	if err := r.Draw(nil, nil); err != nil {
		t.Fatalf("empty Draw() error = %v", err)
	}

	img, err := r.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("ReadPixels() bounds = %v, want 200x100", b)
	}
}

func TestRendererDrawInvalidIndices(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, testConfig(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	verts := make([]gridtext.Vertex, 3)
	if err := r.Draw(verts, gridtext.QuadIndices[:]); !errors.Is(err, backend.ErrInvalidIndices) {
		t.Errorf("Draw() error = %v, want ErrInvalidIndices", err)
	}
}

func TestRendererSetAtlasReplaces(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, testConfig(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.SetAtlas(testAtlas()); err != nil {
		t.Fatal(err)
	}
	if err := r.SetAtlas(testAtlas()); err != nil {
		t.Fatalf("second SetAtlas() error = %v", err)
	}
	if r.atlasTex == nil || r.bindGroup == nil {
		t.Error("second SetAtlas() left no atlas bound")
	}
	if err := r.SetAtlas(&pnm.Image{Width: 2, Height: 2}); err == nil {
		t.Error("SetAtlas() with short Pix succeeded")
	}
}

func TestRendererResize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, testConfig(100, 50))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	view := r.TargetView()
	if err := r.Resize(100, 50); err != nil {
		t.Fatal(err)
	}
	if r.TargetView() != view {
		t.Error("same-size Resize() recreated the target")
	}
	if err := r.Resize(300, 200); err != nil {
		t.Fatal(err)
	}
	if w, h := r.Size(); w != 300 || h != 200 {
		t.Errorf("Size() = (%d, %d), want (300, 200)", w, h)
	}
	if err := r.Resize(0, 1); err == nil {
		t.Error("Resize(0, 1) succeeded")
	}
}

func TestRendererClose(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, testConfig(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetAtlas(testAtlas()); err != nil {
		t.Fatal(err)
	}
	r.Close()
	r.Close()

	if err := r.Draw(nil, nil); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("Draw() after Close error = %v, want ErrClosed", err)
	}
	if err := r.SetAtlas(testAtlas()); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("SetAtlas() after Close error = %v, want ErrClosed", err)
	}
	if _, err := r.ReadPixels(); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("ReadPixels() after Close error = %v, want ErrClosed", err)
	}
}

func TestNewFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := &halProvider{device: device, queue: queue, format: gputypes.TextureFormatBGRA8Unorm}
	r, err := NewFromProvider(p, testConfig(16, 16))
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	defer r.Close()
	if r.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want surface format BGRA8Unorm", r.Format())
	}

	if _, err := NewFromProvider(plainProvider{}, testConfig(16, 16)); err == nil {
		t.Error("NewFromProvider() without HAL accessors succeeded")
	}
}

func TestSetDeviceProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	t.Cleanup(func() { _ = SetDeviceProvider(nil) })

	if err := SetDeviceProvider(plainProvider{}); err == nil {
		t.Error("SetDeviceProvider() without HAL accessors succeeded")
	}

	if err := SetDeviceProvider(&halProvider{device: device, queue: queue}); err != nil {
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}
	r, err := backend.New(backend.NameWGPU, backend.Config{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("backend.New(wgpu) error = %v", err)
	}
	defer r.Close()
	if r.Name() != backend.NameWGPU {
		t.Errorf("Name() = %q, want %q", r.Name(), backend.NameWGPU)
	}
}

func TestVulkanBackendRegistered(t *testing.T) {
	if _, ok := hal.GetBackend(gputypes.BackendVulkan); !ok {
		t.Fatal("vulkan HAL backend not registered; NewStandalone can never open a device")
	}
	if !backend.IsRegistered(backend.NameWGPU) {
		t.Errorf("%q not in backend registry", backend.NameWGPU)
	}
}
