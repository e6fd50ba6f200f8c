package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/mlsorensen/blemotion"
	"github.com/mlsorensen/blemotion/pkg/sources/mock"
)

func main() {
	interval := pflag.Duration("interval", 750*time.Millisecond, "interval between simulated advertisements")
	seed := pflag.Int64("seed", time.Now().UnixNano(), "random seed for accelerometer noise")
	pflag.Parse()

	log.Println("BLE Motion mock scan starting...")

	// In a real program the source would be blemotion.NewBLESource; the mock
	// produces the same kind of advertisements without a radio.
	src := mock.New(*interval, *seed)

	// --- Set up graceful shutdown ---
	// The context is canceled on SIGINT/SIGTERM, which stops the simulation
	// and closes the report channel.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reports, err := blemotion.Monitor(ctx, src, blemotion.NewDispatcher())
	if err != nil {
		log.Fatalf("Fatal: Could not start mock scan: %v", err)
	}
	log.Println("Listening for simulated advertisements...")

	// --- Main application loop ---
	// This loop exits when the reports channel is closed.
	counts := make(map[blemotion.FrameKind]int)
	for r := range reports {
		counts[r.Frame.Kind()]++
		log.Println(r)
	}

	log.Println("Shutdown signal received. Report channel closed.")
	for kind, n := range counts {
		log.Printf("  %s: %d", kind, n)
	}
	log.Println("Application finished gracefully.")
}
