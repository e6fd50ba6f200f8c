package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"

	"github.com/mlsorensen/blemotion"
	"github.com/mlsorensen/blemotion/pkg/sources/mock"
)

func main() {
	useMock := pflag.Bool("mock", false, "use the simulated source instead of the Bluetooth adapter")
	prefixes := pflag.StringSlice("prefix", nil, "only show devices whose name starts with one of these prefixes")
	pflag.Parse()

	filter := blemotion.Filter{NamePrefixes: *prefixes}
	var src blemotion.Source
	if *useMock {
		m := mock.New(500*time.Millisecond, time.Now().UnixNano())
		m.Filter = filter
		src = m
	} else {
		src = blemotion.NewBLESource(filter)
	}

	a := app.New()
	w := a.NewWindow("BLE Motion")

	statusLabel := widget.NewLabel("Scanning...")
	devices := container.NewVBox()
	labels := make(map[string]*widget.Label)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reports, err := blemotion.Monitor(ctx, src, blemotion.NewDispatcher())
	if err != nil {
		log.Fatalf("Fatal: Could not start scan: %v", err)
	}

	go func() {
		for r := range reports {
			text := fmt.Sprintf("%s [%s]  %v", r.DisplayName(), r.Address, r.Frame)
			key := fmt.Sprintf("%s/%04X", r.Address, r.CompanyID)
			fyne.Do(func() {
				if l, ok := labels[key]; ok {
					l.SetText(text)
					return
				}
				l := widget.NewLabel(text)
				labels[key] = l
				devices.Add(l)
				statusLabel.SetText(fmt.Sprintf("Scanning... %d device(s)", len(labels)))
			})
		}
		log.Println("Report channel closed, quitting.")
		fyne.Do(a.Quit)
	}()

	w.SetContent(container.NewVBox(
		statusLabel,
		devices,
	))
	w.ShowAndRun()
	stop()
}
