// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrInvalidBufferSize is returned when a buffer would be created empty.
var ErrInvalidBufferSize = errors.New("gpu: invalid buffer size")

// copyAlignment is the required size and offset alignment of queue writes.
const copyAlignment = 4

// alignCopy rounds n up to copyAlignment.
func alignCopy(n uint64) uint64 {
	return (n + copyAlignment - 1) &^ (copyAlignment - 1)
}

// createBuffer creates a buffer that can be written from the queue.
// size is rounded up to the copy alignment.
func createBuffer(device hal.Device, label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	if size == 0 {
		return nil, fmt.Errorf("%s: %w", label, ErrInvalidBufferSize)
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignCopy(size),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	slogger().Debug("gpu: buffer created", "label", label, "size", alignCopy(size))
	return buf, nil
}

// createAndUploadBuffer creates a buffer sized for data and uploads it.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := createBuffer(device, label, uint64(len(data)), usage)
	if err != nil {
		return nil, err
	}
	if err := writeBuffer(queue, buf, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, err
	}
	return buf, nil
}

// writeBuffer uploads data at offset 0, padding it to the copy alignment.
func writeBuffer(queue hal.Queue, buf hal.Buffer, data []byte) error {
	if n := alignCopy(uint64(len(data))); n != uint64(len(data)) {
		padded := make([]byte, n)
		copy(padded, data)
		data = padded
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		return fmt.Errorf("write buffer: %w", err)
	}
	return nil
}
