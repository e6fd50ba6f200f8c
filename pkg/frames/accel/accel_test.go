package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packetWithAxes(length int, axes ...byte) []byte {
	p := make([]byte, length)
	copy(p[FieldX.Offset:], axes)
	return p
}

func TestDecodeShortPackets(t *testing.T) {
	for n := 0; n < MinLength; n++ {
		_, ok := Decode(make([]byte, n))
		assert.False(t, ok, "length %d should not decode", n)
	}
	_, ok := Decode(nil)
	assert.False(t, ok)
}

func TestDecodeBoundaryLength(t *testing.T) {
	require.Equal(t, 19, MinLength)

	_, ok := Decode(make([]byte, 18))
	assert.False(t, ok)

	s, ok := Decode(make([]byte, 19))
	require.True(t, ok)
	assert.Equal(t, Sample{}, s)
}

func TestDecodeSignConversion(t *testing.T) {
	p := packetWithAxes(19, 0x00, 0x32, 0xFF, 0xCE, 0x00, 0x00)

	s, ok := Decode(p)
	require.True(t, ok)
	assert.Equal(t, Sample{X: 50, Y: -50, Z: 0}, s)
}

func TestDecodeExtremes(t *testing.T) {
	p := packetWithAxes(19, 0x7F, 0xFF, 0x80, 0x00, 0xFF, 0xFF)

	s, ok := Decode(p)
	require.True(t, ok)
	assert.Equal(t, int16(32767), s.X)
	assert.Equal(t, int16(-32768), s.Y)
	assert.Equal(t, int16(-1), s.Z)
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	p := packetWithAxes(31, 0x00, 0x01, 0x00, 0x02, 0x00, 0x03)
	for i := MinLength; i < len(p); i++ {
		p[i] = 0xEE
	}

	s, ok := Decode(p)
	require.True(t, ok)
	assert.Equal(t, Sample{X: 1, Y: 2, Z: 3}, s)
}

func TestDecodeDoesNotMutateAndIsRepeatable(t *testing.T) {
	p := packetWithAxes(19, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC)
	orig := append([]byte(nil), p...)

	first, ok1 := Decode(p)
	second, ok2 := Decode(p)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, orig, p)
}

func TestSampleValues(t *testing.T) {
	s := Sample{X: 10, Y: -10, Z: 0}
	assert.Equal(t, []float64{10, -10, 0}, s.Values())
	assert.Equal(t, "x=10 y=-10 z=0", s.String())
}
