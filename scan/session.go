package scan

import (
	"fmt"
	"math/rand"
	"net"
)

const (
	ephemeralPortMin = 10000
	ephemeralPortMax = 60000
)

// Session holds everything that stays constant for the lifetime of a single scan.
type Session struct {
	Target     net.IP
	Source     net.IP
	SourcePort uint16
	Start      uint16
	End        uint16
}

func NewSession(target net.IP, source net.IP, start uint16, end uint16) (Session, error) {
	t4 := target.To4()
	if t4 == nil {
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}
	s4 := source.To4()
	if s4 == nil {
		return Session{}, fmt.Errorf("source address %s is not IPv4", source)
	}
	if err := ValidateRange(start, end); err != nil {
		return Session{}, err
	}
	return Session{
		Target:     t4,
		Source:     s4,
		SourcePort: randomEphemeralPort(),
		Start:      start,
		End:        end,
	}, nil
}

// PortCount is the number of probes the session will send.
func (s Session) PortCount() int {
	return int(s.End) - int(s.Start) + 1
}

func randomEphemeralPort() uint16 {
	return uint16(ephemeralPortMin + rand.Intn(ephemeralPortMax-ephemeralPortMin))
}
