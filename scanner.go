package blemotion

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/mlsorensen/blemotion/internal/monitoring"
)

var (
	ErrNoSource        = errors.New("no advertisement source configured")
	ErrInvalidDuration = errors.New("scan duration must be positive")
)

// Advertisement is a single manufacturer data element seen in a scan result.
// A device advertising several company IDs yields one Advertisement per ID.
type Advertisement struct {
	Name      string
	Address   string
	RSSI      int
	CompanyID uint16
	Payload   []byte
}

// PayloadHex returns the payload as lowercase hex, as printed by the scanner.
func (a Advertisement) PayloadHex() string {
	return hex.EncodeToString(a.Payload)
}

// DisplayName returns the advertised name, or "Unknown" for unnamed devices.
func (a Advertisement) DisplayName() string {
	if a.Name == "" {
		return "Unknown"
	}
	return a.Name
}

// Source produces advertisements until ctx is canceled, then closes the channel.
type Source interface {
	Advertisements(ctx context.Context) (<-chan Advertisement, error)
}

// Filter restricts which advertisements are reported. Empty lists match everything.
type Filter struct {
	NamePrefixes []string
	Addresses    []string
	CompanyIDs   []uint16
}

// Match reports whether adv passes every non-empty criterion.
func (f Filter) Match(adv Advertisement) bool {
	if len(f.NamePrefixes) > 0 {
		found := false
		for _, prefix := range f.NamePrefixes {
			if strings.HasPrefix(adv.Name, prefix) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Addresses) > 0 {
		found := false
		for _, addr := range f.Addresses {
			if strings.EqualFold(addr, adv.Address) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.CompanyIDs) > 0 && !slices.Contains(f.CompanyIDs, adv.CompanyID) {
		return false
	}

	return true
}

// Report is the dispatch outcome for one advertisement.
type Report struct {
	Advertisement
	Frame Frame
	Time  time.Time
}

func (r Report) String() string {
	return fmt.Sprintf("%s [%s] rssi=%d company=0x%04X payload=%s: %v",
		r.DisplayName(), r.Address, r.RSSI, r.CompanyID, r.PayloadHex(), r.Frame)
}

var adapter = bluetooth.DefaultAdapter

var (
	enableOnce sync.Once
	enableErr  error
)

// EnableAdapter enables the default Bluetooth adapter once per process.
func EnableAdapter() error {
	enableOnce.Do(func() {
		monitoring.Logf("Enabling Bluetooth adapter...")
		enableErr = adapter.Enable()
	})
	return enableErr
}

// BLESource streams advertisements from the default Bluetooth adapter.
type BLESource struct {
	Filter Filter
}

var _ Source = (*BLESource)(nil)

// NewBLESource returns a source reporting advertisements that pass filter.
func NewBLESource(filter Filter) *BLESource {
	return &BLESource{Filter: filter}
}

// Advertisements starts a scan that runs until ctx is canceled.
func (s *BLESource) Advertisements(ctx context.Context) (<-chan Advertisement, error) {
	if err := EnableAdapter(); err != nil {
		return nil, fmt.Errorf("could not enable adapter: %w", err)
	}

	advChan := make(chan Advertisement, 64)

	go func() {
		defer close(advChan)

		mu := sync.Mutex{}
		handler := func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			mu.Lock()
			defer mu.Unlock()

			for _, adv := range fromScanResult(result) {
				if !s.Filter.Match(adv) {
					continue
				}
				select {
				case advChan <- adv:
				case <-ctx.Done():
					return
				}
			}
		}

		scanErrChan := make(chan error, 1)
		go func() {
			monitoring.Logf("Starting BLE scan...")
			scanErrChan <- adapter.Scan(handler)
		}()

		select {
		case <-ctx.Done():
			if err := adapter.StopScan(); err != nil {
				monitoring.Logf("Warning: failed to stop scan cleanly: %v", err)
			}
			if err := <-scanErrChan; err != nil {
				monitoring.Logf("Error during scan: %v", err)
			}
		case err := <-scanErrChan:
			if err != nil {
				monitoring.Logf("Error starting scan: %v", err)
			}
		}
	}()

	return advChan, nil
}

// fromScanResult splits a scan result into one Advertisement per manufacturer
// data element. Payloads are copied since the stack may reuse its buffers.
func fromScanResult(result bluetooth.ScanResult) []Advertisement {
	elements := result.ManufacturerData()
	if len(elements) == 0 {
		return nil
	}

	name := result.LocalName()
	addr := result.Address.String()
	advs := make([]Advertisement, 0, len(elements))
	for _, el := range elements {
		advs = append(advs, Advertisement{
			Name:      name,
			Address:   addr,
			RSSI:      int(result.RSSI),
			CompanyID: el.CompanyID,
			Payload:   slices.Clone(el.Data),
		})
	}
	return advs
}

// Monitor dispatches every advertisement from src and streams the reports. The
// returned channel is closed once src is exhausted or ctx is canceled.
func Monitor(ctx context.Context, src Source, d *Dispatcher) (<-chan Report, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if d == nil {
		d = NewDispatcher()
	}

	advs, err := src.Advertisements(ctx)
	if err != nil {
		return nil, err
	}

	reportChan := make(chan Report)
	go func() {
		defer close(reportChan)
		for adv := range advs {
			r := Report{
				Advertisement: adv,
				Frame:         d.Dispatch(adv.Payload),
				Time:          time.Now(),
			}
			select {
			case reportChan <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return reportChan, nil
}

// Scan collects reports from src for the given duration, blocking until done.
func Scan(ctx context.Context, src Source, d *Dispatcher, duration time.Duration) ([]Report, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	monitoring.Logf("Scanning for BLE devices for %s...", duration)
	reports, err := Monitor(ctx, src, d)
	if err != nil {
		return nil, err
	}

	results := make([]Report, 0)
	devices := make(map[string]struct{})
	for r := range reports {
		results = append(results, r)
		devices[r.Address] = struct{}{}
	}

	if len(results) == 0 {
		monitoring.Logf("No BLE devices found.")
	} else {
		monitoring.Logf("Scan processing finished. Found %d report(s) from %d unique device(s).", len(results), len(devices))
	}
	return results, nil
}
