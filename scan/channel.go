package scan

import (
	"errors"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/ipv4"
)

const probeTTL = 64

// Channel is a bidirectional layer 4 raw TCP channel. Writes carry a bare TCP
// segment, the kernel supplies the IPv4 header. Reads return the TCP segment
// of the next inbound packet together with the address it came from.
type Channel interface {
	WriteTo(segment []byte, dst net.IP) error
	ReadFrom(buf []byte) (int, net.IP, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

type rawChannel struct {
	pc *ipv4.PacketConn
}

// OpenRawChannel opens a raw ip4:tcp socket. This needs root (or
// CAP_NET_RAW); failures come back as *SocketError.
func OpenRawChannel() (Channel, error) {
	conn, err := net.ListenPacket("ip4:tcp", "0.0.0.0")
	if err != nil {
		return nil, &SocketError{Err: err}
	}

	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetTTL(probeTTL); err != nil {
		logrus.Debugf("Could not set TTL on raw socket: %s", err)
	}

	return &rawChannel{pc: pc}, nil
}

func (c *rawChannel) WriteTo(segment []byte, dst net.IP) error {
	_, err := c.pc.WriteTo(segment, nil, &net.IPAddr{IP: dst})
	return err
}

func (c *rawChannel) ReadFrom(buf []byte) (int, net.IP, error) {
	n, _, addr, err := c.pc.ReadFrom(buf)
	if err != nil {
		return 0, nil, err
	}
	var src net.IP
	if ipAddr, ok := addr.(*net.IPAddr); ok {
		src = ipAddr.IP
	}
	return n, src, nil
}

func (c *rawChannel) SetReadDeadline(t time.Time) error {
	return c.pc.SetReadDeadline(t)
}

func (c *rawChannel) Close() error {
	return c.pc.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
