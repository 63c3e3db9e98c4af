package cmd

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/portify/portify/scan"
)

const (
	defaultStartPort uint16 = 1
	defaultEndPort   uint16 = 1000
)

// scanConfig is the validated input handed to the scanner. IPv6 targets and
// inverted ranges never get this far.
type scanConfig struct {
	targetName string
	target     net.IP
	start      uint16
	end        uint16
}

func (c scanConfig) portCount() int {
	return int(c.end) - int(c.start) + 1
}

func parseConfig(args []string) (scanConfig, error) {

	if len(args) == 0 {
		return scanConfig{}, fmt.Errorf("%w: please specify a target", scan.ErrInvalidTarget)
	}

	target, err := scan.ParseTarget(args[0])
	if err != nil {
		return scanConfig{}, err
	}

	cfg := scanConfig{
		targetName: strings.TrimSpace(args[0]),
		target:     target,
		start:      defaultStartPort,
		end:        defaultEndPort,
	}

	if len(args) > 1 {
		if cfg.start, err = parsePort(args[1]); err != nil {
			return scanConfig{}, err
		}
	}
	if len(args) > 2 {
		if cfg.end, err = parsePort(args[2]); err != nil {
			return scanConfig{}, err
		}
	}

	if err := scan.ValidateRange(cfg.start, cfg.end); err != nil {
		return scanConfig{}, err
	}

	return cfg, nil
}

func parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("Invalid port number: '%s'", s)
	}
	return uint16(port), nil
}
