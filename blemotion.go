package blemotion

import (
	"fmt"

	"github.com/mlsorensen/blemotion/internal/monitoring"
	"github.com/mlsorensen/blemotion/pkg/frames/accel"
	"github.com/mlsorensen/blemotion/pkg/frames/ibeacon"
	"github.com/mlsorensen/blemotion/pkg/motion"
)

// FrameKind identifies what a manufacturer data payload was recognized as.
type FrameKind uint8

const (
	KindUnrecognized FrameKind = iota
	KindAccelerometer
	KindIBeacon
)

func (k FrameKind) String() string {
	switch k {
	case KindUnrecognized:
		return "Unrecognized"
	case KindAccelerometer:
		return "Accelerometer"
	case KindIBeacon:
		return "iBeacon"
	default:
		return fmt.Sprintf("Unknown Kind (%d)", k)
	}
}

// Frame is the interface for all dispatch outcomes. The set of implementations is
// closed: AccelerometerFrame, IBeaconFrame and UnrecognizedFrame.
type Frame interface {
	Kind() FrameKind
	isFrame()
}

// AccelerometerFrame is a decoded accelerometer sample with its motion label.
type AccelerometerFrame struct {
	Sample accel.Sample
	Label  motion.Label
}

func (AccelerometerFrame) Kind() FrameKind { return KindAccelerometer }
func (AccelerometerFrame) isFrame()        {}

func (f AccelerometerFrame) String() string {
	return fmt.Sprintf("accelerometer %s motion=%s", f.Sample, f.Label)
}

// IBeaconFrame is a decoded iBeacon record.
type IBeaconFrame struct {
	Record ibeacon.Record
}

func (IBeaconFrame) Kind() FrameKind { return KindIBeacon }
func (IBeaconFrame) isFrame()        {}

func (f IBeaconFrame) String() string {
	return "ibeacon " + f.Record.String()
}

// UnrecognizedFrame carries a payload neither decoder accepted.
type UnrecognizedFrame struct {
	Payload []byte
}

func (UnrecognizedFrame) Kind() FrameKind { return KindUnrecognized }
func (UnrecognizedFrame) isFrame()        {}

func (f UnrecognizedFrame) String() string {
	return fmt.Sprintf("unrecognized (%d bytes)", len(f.Payload))
}

// AccelDecoder decodes an accelerometer sample. Returns whether decode was successful.
type AccelDecoder func(packet []byte) (accel.Sample, bool)

// BeaconDecoder decodes an iBeacon record. Returns whether decode was successful.
type BeaconDecoder func(packet []byte) (ibeacon.Record, bool)

// Classifier labels an accelerometer sample.
type Classifier func(s accel.Sample) motion.Label

// Dispatcher tries the accelerometer decoder first and falls back to the iBeacon
// decoder only when that misses, so a payload is never reported as both.
type Dispatcher struct {
	Accel    AccelDecoder
	Beacon   BeaconDecoder
	Classify Classifier
}

// NewDispatcher returns a Dispatcher wired to the accel, ibeacon and motion packages.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Accel:    accel.Decode,
		Beacon:   ibeacon.Decode,
		Classify: motion.Classify,
	}
}

// Dispatch classifies a single manufacturer data payload. It never panics; a
// fault in any stage is reported as an UnrecognizedFrame.
func (d *Dispatcher) Dispatch(payload []byte) (frame Frame) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.Logf("Error decoding payload %X: %v", payload, r)
			frame = UnrecognizedFrame{Payload: payload}
		}
	}()

	if sample, ok := d.Accel(payload); ok {
		return AccelerometerFrame{Sample: sample, Label: d.Classify(sample)}
	}
	if record, ok := d.Beacon(payload); ok {
		return IBeaconFrame{Record: record}
	}
	return UnrecognizedFrame{Payload: payload}
}
