package scan

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTarget        = errors.New("invalid target: an IPv4 address or resolvable hostname is required")
	ErrInvalidRange         = errors.New("invalid port range: start port must not be greater than end port")
	ErrNoInterfaceAvailable = errors.New("no valid IPv4 interface found")
	ErrScanAlreadyRun       = errors.New("scanner has already been used")
)

// SocketError is returned when the raw channel cannot be opened, usually
// because the process lacks the privilege to create raw sockets.
type SocketError struct {
	Err error
}

func (e *SocketError) Error() string {
	return fmt.Sprintf("socket error: %s", e.Err)
}

func (e *SocketError) Unwrap() error {
	return e.Err
}

// TransmitError describes a probe that could not be written. It is logged
// and otherwise ignored: the port is simply reported as not open.
type TransmitError struct {
	Port uint16
	Err  error
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("failed to send probe to port %d: %s", e.Port, e.Err)
}

func (e *TransmitError) Unwrap() error {
	return e.Err
}
