package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/mlsorensen/blemotion"
)

// parseFlags builds a Config from command line arguments.
func parseFlags(args []string) (blemotion.Config, error) {
	cfg := blemotion.DefaultConfig()

	fs := pflag.NewFlagSet("scanner", pflag.ContinueOnError)
	fs.DurationVarP(&cfg.Duration, "duration", "d", cfg.Duration, "how long a one-shot scan runs")
	fs.BoolVarP(&cfg.Follow, "follow", "f", cfg.Follow, "stream reports until interrupted")
	fs.StringSliceVar(&cfg.Filter.NamePrefixes, "prefix", nil, "only report devices whose name starts with one of these prefixes")
	fs.StringSliceVar(&cfg.Filter.Addresses, "address", nil, "only report devices with one of these addresses")
	companies := fs.StringSlice("company", nil, "only report manufacturer data with these company IDs (e.g. 0x004C)")
	fs.BoolVar(&cfg.Mock, "mock", cfg.Mock, "use the simulated source instead of the Bluetooth adapter")
	fs.DurationVar(&cfg.MockInterval, "mock-interval", cfg.MockInterval, "interval between simulated advertisements")
	fs.Int64Var(&cfg.MockSeed, "mock-seed", cfg.MockSeed, "random seed for simulated accelerometer noise")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	for _, c := range *companies {
		id, err := strconv.ParseUint(c, 0, 16)
		if err != nil {
			return cfg, fmt.Errorf("invalid company ID %q: %w", c, err)
		}
		cfg.Filter.CompanyIDs = append(cfg.Filter.CompanyIDs, uint16(id))
	}

	return cfg, cfg.Validate()
}
