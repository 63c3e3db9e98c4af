package scan

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultGracePeriod = 2000 * time.Millisecond

type State uint8

const (
	StateIdle State = iota
	StateInterfaceResolved
	StateChannelOpen
	StateScanning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInterfaceResolved:
		return "interface-resolved"
	case StateChannelOpen:
		return "channel-open"
	case StateScanning:
		return "scanning"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// SynScanner coordinates a single SYN scan: it resolves the local interface,
// opens the raw channel, runs a Receiver in the background while the
// Transmitter sends every probe, then waits out the grace period before
// collecting results. A SynScanner is good for exactly one scan.
type SynScanner struct {
	pps   int
	grace time.Duration

	// OnInterface is called once the source interface is known.
	OnInterface func(iface Interface)
	// OnProgress is called once per probe sent.
	OnProgress ProgressFunc

	mu    sync.Mutex
	state State
	used  bool

	resolve      func() (Interface, error)
	open         func() (Channel, error)
	lookupDevice func(ip net.IP) Device
	pollInterval time.Duration
}

func NewSynScanner(pps int, grace time.Duration) *SynScanner {
	if grace < 0 {
		grace = 0
	}
	return &SynScanner{
		pps:          pps,
		grace:        grace,
		resolve:      ResolveInterface,
		open:         OpenRawChannel,
		lookupDevice: LookupDevice,
		pollInterval: defaultPollInterval,
	}
}

func (s *SynScanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SynScanner) transition(to State) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.mu.Unlock()
	logrus.Debugf("Scanner state %s -> %s", from, to)
}

// Scan probes ports start through end on target and returns the open ones in
// ascending order. Interface and socket failures abort the scan before any
// probe is sent. If ctx is cancelled mid-scan the ports seen so far are
// returned together with the context error.
func (s *SynScanner) Scan(ctx context.Context, target net.IP, start uint16, end uint16) (Result, error) {

	s.mu.Lock()
	if s.used {
		s.mu.Unlock()
		return Result{}, ErrScanAlreadyRun
	}
	s.used = true
	s.mu.Unlock()

	startTime := time.Now()

	target4 := target.To4()
	if target4 == nil {
		return Result{}, ErrInvalidTarget
	}
	if err := ValidateRange(start, end); err != nil {
		return Result{}, err
	}

	iface, err := s.resolve()
	if err != nil {
		return Result{}, err
	}
	s.transition(StateInterfaceResolved)
	logrus.Debugf("Using interface %s (%s)", iface.Name, iface.IP)

	if s.OnInterface != nil {
		s.OnInterface(iface)
	}

	channel, err := s.open()
	if err != nil {
		var sockErr *SocketError
		if !errors.As(err, &sockErr) {
			err = &SocketError{Err: err}
		}
		return Result{}, err
	}
	defer func() { _ = channel.Close() }()
	s.transition(StateChannelOpen)

	session, err := NewSession(target4, iface.IP, start, end)
	if err != nil {
		return Result{}, err
	}
	logrus.Debugf("Scanning %s ports %d-%d from source port %d", session.Target, start, end, session.SourcePort)

	results := NewOpenPortSet()
	receiver := NewReceiver(session, channel, results)
	receiver.pollInterval = s.pollInterval

	recvCtx, stopReceiver := context.WithCancel(ctx)
	defer stopReceiver()

	group, groupCtx := errgroup.WithContext(recvCtx)
	group.Go(func() error {
		return receiver.Run(groupCtx)
	})

	s.transition(StateScanning)
	scanErr := NewTransmitter(s.pps).Transmit(ctx, session, channel, s.OnProgress)

	if scanErr == nil {
		s.transition(StateDraining)
		timer := time.NewTimer(s.grace)
		select {
		case <-timer.C:
		case <-ctx.Done():
			scanErr = ctx.Err()
		}
		timer.Stop()
	}

	stopReceiver()
	_ = channel.Close()
	if err := group.Wait(); err != nil {
		logrus.Debugf("Receiver stopped with error: %s", err)
	}
	s.transition(StateStopped)

	result := NewResult(session.Target)
	result.Interface = iface
	result.SourcePort = session.SourcePort
	result.Start = start
	result.End = end
	result.Open = results.Sorted()
	result.Elapsed = time.Since(startTime)

	if s.lookupDevice != nil {
		result.Device = s.lookupDevice(session.Target)
	}

	return result, scanErr
}
