// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded grid shader source.
//
//go:embed shaders/grid.wgsl
var gridShaderSource string

// compileShader compiles WGSL source to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileShader(source string) ([]uint32, error) {
	if source == "" {
		return nil, fmt.Errorf("grid shader source is empty")
	}
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile grid shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile grid shader: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}
