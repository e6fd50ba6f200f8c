// Package ibeacon decodes iBeacon frames from BLE manufacturer data.
package ibeacon

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlsorensen/blemotion/pkg/frames"
)

var (
	FieldUUID  = frames.Field{Offset: 8, Size: 16}
	FieldMajor = frames.Field{Offset: 24, Size: 2}
	FieldMinor = frames.Field{Offset: 26, Size: 2}
)

// MinLength is the shortest packet carrying UUID, major and minor.
var MinLength = FieldMinor.End()

// Record holds the identifying fields of an iBeacon frame.
type Record struct {
	UUID  uuid.UUID
	Major uint16
	Minor uint16
}

// UUIDHex returns the proximity UUID as 32 lowercase hex characters, the same
// bytes as they appear in the raw payload.
func (r Record) UUIDHex() string {
	return hex.EncodeToString(r.UUID[:])
}

func (r Record) String() string {
	return fmt.Sprintf("uuid=%s major=%d minor=%d", r.UUIDHex(), r.Major, r.Minor)
}

// Decode extracts an iBeacon record from packet. Returns the record and whether
// decode was successful.
func Decode(packet []byte) (Record, bool) {
	if !frames.HasLength(packet, MinLength) {
		return Record{}, false
	}

	raw, ok := frames.Window(packet, FieldUUID)
	if !ok {
		return Record{}, false
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return Record{}, false
	}

	// The length gate above guarantees both are in range.
	major, ok := frames.Uint16BE(packet, FieldMajor.Offset)
	if !ok {
		return Record{}, false
	}
	minor, ok := frames.Uint16BE(packet, FieldMinor.Offset)
	if !ok {
		return Record{}, false
	}

	return Record{UUID: id, Major: major, Minor: minor}, true
}
