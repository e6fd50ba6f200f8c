// Package mock provides a simulated advertisement source.
// It is intended for development and testing when no Bluetooth radio or tags are available.
package mock

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlsorensen/blemotion"
	"github.com/mlsorensen/blemotion/internal/monitoring"
	"github.com/mlsorensen/blemotion/pkg/frames/accel"
	"github.com/mlsorensen/blemotion/pkg/frames/ibeacon"
)

// This line is the compile-time check. It will fail to compile if
// *Source ever stops satisfying the blemotion.Source interface.
var _ blemotion.Source = (*Source)(nil)

// CompanyApple is the Bluetooth SIG company identifier carried by iBeacons.
const CompanyApple uint16 = 0x004C

// DemoBeaconUUID is the proximity UUID advertised by the simulated beacon.
var DemoBeaconUUID = uuid.MustParse("f7826da6-4fa2-4e98-8024-bc5b71e0893e")

// Device is one simulated advertiser. Payload builds a fresh payload per tick.
type Device struct {
	Name      string
	Address   string
	RSSI      int
	CompanyID uint16
	Payload   func(r *rand.Rand) []byte
}

// Source emits one advertisement per device on every tick, round robin.
type Source struct {
	Interval time.Duration
	Devices  []Device
	Filter   blemotion.Filter

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Source with the default set of simulated devices.
func New(interval time.Duration, seed int64) *Source {
	return &Source{
		Interval: interval,
		Devices:  DefaultDevices(),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// DefaultDevices returns a resting tag, a tag being shaken, an iBeacon and a
// device whose payload is too short for either decoder.
func DefaultDevices() []Device {
	return []Device{
		{
			Name:      "MOCK-TAG-REST",
			Address:   "C0:FF:EE:00:00:01",
			RSSI:      -58,
			CompanyID: 0x0059,
			Payload: func(r *rand.Rand) []byte {
				// At rest: a couple of units of noise per axis.
				return AccelPayload(jitter(r, 0, 2), jitter(r, 0, 2), jitter(r, 2, 2))
			},
		},
		{
			Name:      "MOCK-TAG-SHAKE",
			Address:   "C0:FF:EE:00:00:02",
			RSSI:      -64,
			CompanyID: 0x0059,
			Payload: func(r *rand.Rand) []byte {
				return AccelPayload(jitter(r, 0, 400), jitter(r, 0, 400), jitter(r, 1000, 400))
			},
		},
		{
			Name:      "MOCK-BEACON",
			Address:   "C0:FF:EE:00:00:03",
			RSSI:      -71,
			CompanyID: CompanyApple,
			Payload: func(*rand.Rand) []byte {
				return BeaconPayload(DemoBeaconUUID, 1, 42)
			},
		},
		{
			Address:   "C0:FF:EE:00:00:04",
			RSSI:      -88,
			CompanyID: 0xFFFF,
			Payload: func(*rand.Rand) []byte {
				return []byte{0x02, 0x01, 0x06}
			},
		},
	}
}

func jitter(r *rand.Rand, center, spread int) int16 {
	if spread <= 0 {
		return int16(center)
	}
	return int16(center + r.Intn(2*spread+1) - spread)
}

// AccelPayload builds the smallest payload the accelerometer decoder accepts.
func AccelPayload(x, y, z int16) []byte {
	p := make([]byte, accel.MinLength)
	put16(p, accel.FieldX.Offset, uint16(x))
	put16(p, accel.FieldY.Offset, uint16(y))
	put16(p, accel.FieldZ.Offset, uint16(z))
	return p
}

// BeaconPayload builds an iBeacon payload with the UUID, major and minor at the
// offsets the ibeacon decoder reads.
func BeaconPayload(id uuid.UUID, major, minor uint16) []byte {
	p := make([]byte, ibeacon.MinLength)
	// Apple iBeacon prefix ahead of the UUID window.
	copy(p, []byte{0x02, 0x01, 0x06, 0x1A, 0xFF, 0x4C, 0x00, 0x02})
	copy(p[ibeacon.FieldUUID.Offset:], id[:])
	put16(p, ibeacon.FieldMajor.Offset, major)
	put16(p, ibeacon.FieldMinor.Offset, minor)
	return p
}

func put16(p []byte, offset int, v uint16) {
	p[offset] = byte(v >> 8)
	p[offset+1] = byte(v)
}

// Advertisements starts the simulation. The channel is closed when ctx is canceled.
func (s *Source) Advertisements(ctx context.Context) (<-chan blemotion.Advertisement, error) {
	if s.Interval <= 0 {
		return nil, fmt.Errorf("mock interval must be positive, got %s", s.Interval)
	}
	if len(s.Devices) == 0 {
		return nil, errors.New("mock source has no devices")
	}
	s.mu.Lock()
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	s.mu.Unlock()

	advs := make(chan blemotion.Advertisement)
	monitoring.Logf("MOCK: Starting simulated scan with %d device(s).", len(s.Devices))
	go s.simulate(ctx, advs)
	return advs, nil
}

// simulate is the core loop that generates fake advertisements.
func (s *Source) simulate(ctx context.Context, advs chan<- blemotion.Advertisement) {
	defer close(advs)
	defer monitoring.Logf("MOCK: Simulation stopped.")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	next := 0
	for {
		select {
		case <-ticker.C:
			dev := s.Devices[next]
			next = (next + 1) % len(s.Devices)

			s.mu.Lock()
			payload := dev.Payload(s.rng)
			s.mu.Unlock()

			adv := blemotion.Advertisement{
				Name:      dev.Name,
				Address:   dev.Address,
				RSSI:      dev.RSSI,
				CompanyID: dev.CompanyID,
				Payload:   payload,
			}
			if !s.Filter.Match(adv) {
				continue
			}
			select {
			case advs <- adv:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
