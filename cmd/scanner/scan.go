package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlsorensen/blemotion"
	"github.com/mlsorensen/blemotion/pkg/motion"
	"github.com/mlsorensen/blemotion/pkg/sources/mock"
)

func main() {
	log.Println("--- BLE Motion Scanner ---")

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}

	var src blemotion.Source
	if cfg.Mock {
		log.Println("Using simulated advertisement source.")
		m := mock.New(cfg.MockInterval, cfg.MockSeed)
		m.Filter = cfg.Filter
		src = m
	} else {
		src = blemotion.NewBLESource(cfg.Filter)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := blemotion.NewDispatcher()

	if cfg.Follow {
		reports, err := blemotion.Monitor(ctx, src, dispatcher)
		if err != nil {
			log.Fatalf("Fatal: Scan failed: %v", err)
		}
		for r := range reports {
			printReport(r)
		}
		log.Println("Scan interrupted by user.")
		return
	}

	reports, err := blemotion.Scan(ctx, src, dispatcher, cfg.Duration)
	if err != nil {
		log.Fatalf("Fatal: Scan failed: %v", err)
	}

	fmt.Println("\n--- Scan Results ---")
	for _, r := range reports {
		printReport(r)
	}
	fmt.Println("--------------------")
}

func printReport(r blemotion.Report) {
	fmt.Printf("Found device: %s, Address: %s, RSSI: %d\n", r.DisplayName(), r.Address, r.RSSI)
	fmt.Printf("   Packet (company 0x%04X): %s\n", r.CompanyID, r.PayloadHex())

	switch f := r.Frame.(type) {
	case blemotion.AccelerometerFrame:
		fmt.Printf("   Accelerometer Data: %s\n", f.Sample)
		if f.Label == motion.Error {
			log.Printf("Warning: motion could not be determined for %s", r.Address)
		}
		fmt.Printf("   Motion Status: %s\n", f.Label)
	case blemotion.IBeaconFrame:
		fmt.Printf("   iBeacon Data: %s\n", f.Record)
	default:
		fmt.Println("   Unrecognized payload: neither accelerometer nor iBeacon data.")
	}
	fmt.Println()
}
