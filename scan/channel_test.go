package scan

import (
	"encoding/binary"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type inboundPacket struct {
	src     net.IP
	segment []byte
}

type sentProbe struct {
	dst     net.IP
	port    uint16
	segment []byte
	at      time.Time
}

// fakeChannel is an in-memory Channel. Inbound packets are queued with
// deliver; written probes are recorded and optionally answered by respond.
type fakeChannel struct {
	mu       sync.Mutex
	sent     []sentProbe
	deadline time.Time

	inbound   chan inboundPacket
	closed    chan struct{}
	closeOnce sync.Once

	respond func(ch *fakeChannel, probe sentProbe)
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		inbound: make(chan inboundPacket, 1024),
		closed:  make(chan struct{}),
	}
}

func (c *fakeChannel) deliver(src net.IP, segment []byte) {
	c.inbound <- inboundPacket{src: src, segment: segment}
}

func (c *fakeChannel) WriteTo(segment []byte, dst net.IP) error {
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}

	probe := sentProbe{
		dst:     dst,
		port:    binary.BigEndian.Uint16(segment[2:4]),
		segment: append([]byte{}, segment...),
		at:      time.Now(),
	}

	c.mu.Lock()
	c.sent = append(c.sent, probe)
	respond := c.respond
	c.mu.Unlock()

	if respond != nil {
		respond(c, probe)
	}
	return nil
}

func (c *fakeChannel) ReadFrom(buf []byte) (int, net.IP, error) {
	c.mu.Lock()
	deadline := c.deadline
	c.mu.Unlock()

	var timeout <-chan time.Time
	if !deadline.IsZero() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case p := <-c.inbound:
		return copy(buf, p.segment), p.src, nil
	case <-c.closed:
		return 0, nil, net.ErrClosed
	case <-timeout:
		return 0, nil, os.ErrDeadlineExceeded
	}
}

func (c *fakeChannel) SetReadDeadline(t time.Time) error {
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}
	c.mu.Lock()
	c.deadline = t
	c.mu.Unlock()
	return nil
}

func (c *fakeChannel) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeChannel) probes() []sentProbe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sentProbe{}, c.sent...)
}

// mockChannel is a testify mock used where call expectations matter more
// than behaviour.
type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) WriteTo(segment []byte, dst net.IP) error {
	args := m.Called(segment, dst)
	return args.Error(0)
}

func (m *mockChannel) ReadFrom(buf []byte) (int, net.IP, error) {
	args := m.Called(buf)
	ip, _ := args.Get(1).(net.IP)
	return args.Int(0), ip, args.Error(2)
}

func (m *mockChannel) SetReadDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

// reply serializes a TCP segment from src:srcPort to dst:dstPort with the
// given flags, as a remote stack would send it.
func reply(t *testing.T, src net.IP, dst net.IP, srcPort uint16, dstPort uint16, syn bool, ack bool) []byte {
	ip4 := layers.IPv4{
		SrcIP:    src.To4(),
		DstIP:    dst.To4(),
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
	}
	tcp := layers.TCP{
		SrcPort: layers.TCPPort(srcPort),
		DstPort: layers.TCPPort(dstPort),
		Seq:     1105024978,
		Ack:     1,
		SYN:     syn,
		ACK:     ack,
		RST:     !syn,
		Window:  65160,
	}
	require.Nil(t, tcp.SetNetworkLayerForChecksum(&ip4))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.Nil(t, gopacket.SerializeLayers(buf, opts, &tcp))
	return buf.Bytes()
}
