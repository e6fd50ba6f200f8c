// Package frames holds the fixed-offset helpers shared by the manufacturer data
// decoders. Every helper is bounds checked and reports a missing window with a
// false return instead of panicking, so decoders can be fed untrusted buffers
// of any length, including empty ones.
package frames

import "encoding/binary"

// Field is a fixed byte window into a packet. Offsets never depend on packet content.
type Field struct {
	Offset int
	Size   int
}

// End returns the first byte offset past the field.
func (f Field) End() int {
	return f.Offset + f.Size
}

// HexOffset converts a byte offset to the offset of the same byte in the packet's
// hex string form, which is how offsets show up in logged payloads.
func HexOffset(byteOffset int) int {
	return byteOffset * 2
}

// HasLength reports whether the packet holds at least min bytes.
func HasLength(packet []byte, min int) bool {
	return min >= 0 && len(packet) >= min
}

// Window returns the bytes covered by field, or false if any of them is missing.
func Window(packet []byte, field Field) ([]byte, bool) {
	if field.Offset < 0 || field.Size < 0 || field.End() > len(packet) {
		return nil, false
	}
	return packet[field.Offset:field.End()], true
}

// Uint16BE reads a big-endian uint16 at offset.
func Uint16BE(packet []byte, offset int) (uint16, bool) {
	raw, ok := Window(packet, Field{Offset: offset, Size: 2})
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(raw), true
}

// Int16BE reads a big-endian uint16 at offset and reinterprets it as two's
// complement, so 0x7FFF is 32767 and 0x8000 is -32768.
func Int16BE(packet []byte, offset int) (int16, bool) {
	v, ok := Uint16BE(packet, offset)
	if !ok {
		return 0, false
	}
	return int16(v), true
}
