// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/backend"
)

var (
	providerMu sync.RWMutex
	provider   gpucontext.DeviceProvider
)

func init() {
	backend.Register(backend.NameWGPU, func(cfg backend.Config) (backend.Renderer, error) {
		return newRegistered(Config{Config: cfg})
	})
}

// SetDeviceProvider makes renderers created through the backend registry
// share the device of a host application. Passing nil restores standalone
// device creation.
func SetDeviceProvider(p gpucontext.DeviceProvider) error {
	if p != nil {
		if _, _, err := halFromProvider(p); err != nil {
			return err
		}
	}
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
	return nil
}

// newRegistered creates a renderer on the shared provider if one is set,
// else on a device it opens itself.
func newRegistered(cfg Config) (*Renderer, error) {
	providerMu.RLock()
	p := provider
	providerMu.RUnlock()
	if p != nil {
		return NewFromProvider(p, cfg)
	}
	return NewStandalone(cfg)
}

// NewStandalone opens a device on the Vulkan HAL backend and creates a
// renderer that owns it.
func NewStandalone(cfg Config) (*Renderer, error) {
	instance, selected, err := openAdapter()
	if err != nil {
		return nil, err
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	r, err := New(openDev.Device, openDev.Queue, cfg)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	r.owned = true
	r.instance = instance
	gridtext.Logger().Info("wgpu: device opened", "adapter", selected.Info.Name)
	return r, nil
}

// openAdapter creates a Vulkan instance and picks a hardware adapter,
// preferring discrete and integrated GPUs.
func openAdapter() (hal.Instance, *hal.ExposedAdapter, error) {
	b, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, fmt.Errorf("%w: vulkan HAL backend not registered", backend.ErrBackendNotAvailable)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, fmt.Errorf("%w: no GPU adapters found", backend.ErrBackendNotAvailable)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	return instance, selected, nil
}
