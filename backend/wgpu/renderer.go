// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/backend"
	"github.com/gogpu/gridtext/pnm"
)

// Renderer errors.
var (
	// ErrNilHALDevice is returned when a renderer is created without a device.
	ErrNilHALDevice = errors.New("wgpu: nil HAL device")

	// ErrUnsupportedFormat is returned for target formats the renderer cannot
	// read back.
	ErrUnsupportedFormat = errors.New("wgpu: unsupported target format")
)

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// Config configures a Renderer.
type Config struct {
	backend.Config

	// Format is the render target format. Undefined selects R8Unorm.
	Format gputypes.TextureFormat
}

// Renderer draws glyph frames on a HAL device into an offscreen texture.
//
// The atlas is uploaded once as an R8Unorm texture; vertex and index
// buffers are created for every frame and released after the frame's
// fence signals. Renderer is safe for concurrent use.
type Renderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	// owned is set when the renderer opened the device itself.
	owned    bool
	instance hal.Instance

	format        gputypes.TextureFormat
	width, height uint32

	pipeline *gridPipeline

	atlasTex  hal.Texture
	atlasView hal.TextureView
	bindGroup hal.BindGroup

	targetTex  hal.Texture
	targetView hal.TextureView

	closed bool
}

// New creates a renderer on an existing device and queue. The caller keeps
// ownership of the device.
func New(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHALDevice
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format := cfg.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatR8Unorm
	}
	if bytesPerPixel(format) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	r := &Renderer{device: device, queue: queue, format: format}
	if err := r.resize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return r, nil
}

// NewFromProvider creates a renderer on the device of a host application.
// The provider must also expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue. When cfg.Format is Undefined and the provider
// reports a surface format, the renderer targets that format.
func NewFromProvider(provider gpucontext.DeviceProvider, cfg Config) (*Renderer, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if cfg.Format == gputypes.TextureFormatUndefined {
		if f := provider.SurfaceFormat(); bytesPerPixel(f) != 0 {
			cfg.Format = f
		}
	}
	return New(device, queue, cfg)
}

// halFromProvider extracts HAL objects from a provider.
func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return device, queue, nil
}

// Name returns "wgpu".
func (r *Renderer) Name() string { return backend.NameWGPU }

// Format returns the target format.
func (r *Renderer) Format() gputypes.TextureFormat { return r.format }

// Size returns the target size in pixels.
func (r *Renderer) Size() (width, height uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// TargetView returns the view of the texture frames are drawn into, for
// hosts that composite it onto their surface.
func (r *Renderer) TargetView() hal.TextureView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targetView
}

// Resize recreates the target texture at the new size.
func (r *Renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return backend.ErrClosed
	}
	return r.resize(width, height)
}

func (r *Renderer) resize(width, height int) error {
	if err := (backend.Config{Width: width, Height: height}).Validate(); err != nil {
		return err
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // validated positive
	if r.targetTex != nil && r.width == w && r.height == h {
		return nil
	}
	r.destroyTarget()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "grid_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "grid_target_view",
		Format:        r.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create target view: %w", err)
	}
	r.targetTex, r.targetView = tex, view
	r.width, r.height = w, h
	return nil
}

// SetAtlas uploads atlas as an R8Unorm texture. Row 0 of the atlas, its
// bottom row, becomes texture row 0, so texture V runs bottom-up.
func (r *Renderer) SetAtlas(atlas *pnm.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return backend.ErrClosed
	}
	if atlas == nil || atlas.Width <= 0 || atlas.Height <= 0 || len(atlas.Pix) != atlas.Width*atlas.Height {
		return fmt.Errorf("wgpu: invalid atlas")
	}
	if err := r.ensurePipeline(); err != nil {
		return err
	}
	r.destroyAtlas()

	w, h := uint32(atlas.Width), uint32(atlas.Height) //nolint:gosec // validated positive
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "grid_atlas",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create atlas texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "grid_atlas_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create atlas view: %w", err)
	}

	r.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		atlas.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "grid_bind",
		Layout: r.pipeline.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: r.pipeline.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		r.device.DestroyTextureView(view)
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create grid bind group: %w", err)
	}

	r.atlasTex, r.atlasView, r.bindGroup = tex, view, bindGroup
	gridtext.Logger().Info("wgpu: atlas uploaded", "width", w, "height", h)
	return nil
}

// Draw renders one frame into the target texture and waits for the GPU.
func (r *Renderer) Draw(vertices []gridtext.Vertex, indices []uint16) error {
	if err := backend.CheckFrame(vertices, indices); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return backend.ErrClosed
	}
	if len(indices) > 0 && r.bindGroup == nil {
		return backend.ErrNoAtlas
	}
	if err := r.ensurePipeline(); err != nil {
		return err
	}

	res, err := r.buildFrameResources(vertices, indices)
	if err != nil {
		return err
	}
	defer r.destroyFrameResources(res)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "grid_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("grid_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "grid_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.targetView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	r.pipeline.recordDraw(rp, res)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return err
	}
	gridtext.Logger().Debug("wgpu: frame drawn",
		"vertices", len(vertices), "indices", len(indices))
	return nil
}

// buildFrameResources uploads the frame's vertex and index data. It
// returns nil resources for an empty frame.
func (r *Renderer) buildFrameResources(vertices []gridtext.Vertex, indices []uint16) (*frameResources, error) {
	if len(indices) == 0 {
		return nil, nil
	}
	frame := gridtext.Frame{Vertices: vertices, Indices: indices}

	vertBuf, err := r.createAndUploadBuffer("grid_vertices", frame.VertexBytes(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	idxBuf, err := r.createAndUploadBuffer("grid_indices", frame.IndexBytes(),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.device.DestroyBuffer(vertBuf)
		return nil, err
	}
	return &frameResources{
		vertBuf:    vertBuf,
		idxBuf:     idxBuf,
		bindGroup:  r.bindGroup,
		indexCount: uint32(len(indices)), //nolint:gosec // bounded by gridtext.MaxQuads
	}, nil
}

func (r *Renderer) destroyFrameResources(res *frameResources) {
	if res == nil {
		return
	}
	r.device.DestroyBuffer(res.idxBuf)
	r.device.DestroyBuffer(res.vertBuf)
}

// createAndUploadBuffer creates a GPU buffer and uploads data to it.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// submitAndWait submits cmdBuf and blocks until its fence signals.
func (r *Renderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

func (r *Renderer) ensurePipeline() error {
	if r.pipeline != nil {
		return nil
	}
	p, err := createPipeline(r.device, r.format)
	if err != nil {
		return err
	}
	r.pipeline = p
	return nil
}

func (r *Renderer) destroyAtlas() {
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.atlasView != nil {
		r.device.DestroyTextureView(r.atlasView)
		r.atlasView = nil
	}
	if r.atlasTex != nil {
		r.device.DestroyTexture(r.atlasTex)
		r.atlasTex = nil
	}
}

func (r *Renderer) destroyTarget() {
	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.targetTex != nil {
		r.device.DestroyTexture(r.targetTex)
		r.targetTex = nil
	}
	r.width, r.height = 0, 0
}

// Close releases all GPU resources. A device opened by the renderer is
// destroyed too. Safe to call multiple times.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true

	r.destroyAtlas()
	r.destroyTarget()
	if r.pipeline != nil {
		r.pipeline.destroy(r.device)
		r.pipeline = nil
	}
	if r.owned {
		r.device.Destroy()
		if r.instance != nil {
			r.instance.Destroy()
			r.instance = nil
		}
	}
	r.device = nil
	r.queue = nil
}

// ReadPixels copies the target texture back to the CPU as an *image.Gray
// in top-down orientation, taking the first channel of wider formats.
func (r *Renderer) ReadPixels() (*image.Gray, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, backend.ErrClosed
	}
	w, h := r.width, r.height
	bpp := bytesPerPixel(r.format)

	// WebGPU requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := w * bpp
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "grid_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "grid_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("grid_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(r.targetTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.targetTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewGray(image.Rect(0, 0, int(w), int(h)))
	for y := range int(h) {
		row := readback[y*int(alignedBytesPerRow):]
		for x := range int(w) {
			img.Pix[y*img.Stride+x] = row[x*int(bpp)]
		}
	}
	return img, nil
}

// bytesPerPixel returns the texel size of the target formats the renderer
// can read back, or 0.
func bytesPerPixel(f gputypes.TextureFormat) uint32 {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}

var _ backend.Renderer = (*Renderer)(nil)
