// Package accel decodes accelerometer telemetry frames from BLE manufacturer data.
package accel

import (
	"fmt"

	"github.com/mlsorensen/blemotion/pkg/frames"
)

// Axis fields, big-endian signed 16-bit.
var (
	FieldX = frames.Field{Offset: 13, Size: 2}
	FieldY = frames.Field{Offset: 15, Size: 2}
	FieldZ = frames.Field{Offset: 17, Size: 2}
)

// MinLength is the shortest packet that carries all three axes.
var MinLength = FieldZ.End()

// Sample is a single tri-axis reading in raw accelerometer units.
type Sample struct {
	X int16
	Y int16
	Z int16
}

// Values returns the axes in X, Y, Z order.
func (s Sample) Values() []float64 {
	return []float64{float64(s.X), float64(s.Y), float64(s.Z)}
}

func (s Sample) String() string {
	return fmt.Sprintf("x=%d y=%d z=%d", s.X, s.Y, s.Z)
}

// Decode extracts the accelerometer sample from packet. Returns the sample and
// whether decode was successful; a short packet is an expected miss.
func Decode(packet []byte) (Sample, bool) {
	if !frames.HasLength(packet, MinLength) {
		return Sample{}, false
	}

	x, ok := frames.Int16BE(packet, FieldX.Offset)
	if !ok {
		return Sample{}, false
	}
	y, ok := frames.Int16BE(packet, FieldY.Offset)
	if !ok {
		return Sample{}, false
	}
	z, ok := frames.Int16BE(packet, FieldZ.Offset)
	if !ok {
		return Sample{}, false
	}

	return Sample{X: x, Y: y, Z: z}, true
}
