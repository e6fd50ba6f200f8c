package ibeacon

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var beaconUUID = uuid.MustParse("f7826da6-4fa2-4e98-8024-bc5b71e0893e")

func beaconPacket(length int, major, minor uint16) []byte {
	p := make([]byte, length)
	for i := 0; i < FieldUUID.Offset; i++ {
		p[i] = 0xAB
	}
	copy(p[FieldUUID.Offset:], beaconUUID[:])
	p[FieldMajor.Offset] = byte(major >> 8)
	p[FieldMajor.Offset+1] = byte(major)
	p[FieldMinor.Offset] = byte(minor >> 8)
	p[FieldMinor.Offset+1] = byte(minor)
	return p
}

func TestDecodeShortPackets(t *testing.T) {
	require.Equal(t, 28, MinLength)

	for n := 0; n < MinLength; n++ {
		_, ok := Decode(make([]byte, n))
		assert.False(t, ok, "length %d should not decode", n)
	}
	_, ok := Decode(nil)
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	r, ok := Decode(beaconPacket(28, 0x0102, 0xFFFF))
	require.True(t, ok)

	assert.Equal(t, beaconUUID, r.UUID)
	assert.Equal(t, uint16(0x0102), r.Major)
	assert.Equal(t, uint16(65535), r.Minor)
	assert.Equal(t, "f7826da64fa24e988024bc5b71e0893e", r.UUIDHex())
	assert.Len(t, r.UUIDHex(), 32)
}

func TestDecodeLongPacket(t *testing.T) {
	p := beaconPacket(40, 7, 9)
	for i := MinLength; i < len(p); i++ {
		p[i] = 0x11
	}

	r, ok := Decode(p)
	require.True(t, ok)
	assert.Equal(t, Record{UUID: beaconUUID, Major: 7, Minor: 9}, r)
}

func TestDecodeIsRepeatableAndPure(t *testing.T) {
	p := beaconPacket(28, 100, 200)
	orig := append([]byte(nil), p...)

	a, okA := Decode(p)
	b, okB := Decode(p)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
	assert.Equal(t, orig, p)
}

func TestRecordString(t *testing.T) {
	r := Record{UUID: beaconUUID, Major: 1, Minor: 2}
	assert.Equal(t, "uuid=f7826da64fa24e988024bc5b71e0893e major=1 minor=2", r.String())
}
