package scan

import (
	"fmt"
	"net"
	"strings"
)

var lookupIP = net.LookupIP

// ParseTarget turns user input into the IPv4 address to scan. Literal
// addresses are used as-is, anything else is resolved and the first IPv4
// answer wins. IPv6 is rejected here so nothing downstream has to care.
func ParseTarget(target string) (net.IP, error) {

	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("%w: empty target", ErrInvalidTarget)
	}

	if ip := net.ParseIP(target); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
		return nil, fmt.Errorf("%w: IPv6 scanning is not supported (%s)", ErrInvalidTarget, target)
	}

	ips, err := lookupIP(target)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup failed for '%s': %s", ErrInvalidTarget, target, err)
	}

	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
	}

	return nil, fmt.Errorf("%w: '%s' has no IPv4 address", ErrInvalidTarget, target)
}

func ValidateRange(start uint16, end uint16) error {
	if start > end {
		return fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}
	return nil
}
