package scan

import (
	"encoding/binary"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	tcpHeaderLen      = 20
	tcpChecksumOffset = 16
	synWindow         = 64240
)

// probeBuilder serializes SYN probes for one session into a single reused
// buffer. Everything but the destination port is fixed per session.
type probeBuilder struct {
	session Session
	tcp     layers.TCP
	buf     gopacket.SerializeBuffer
	opts    gopacket.SerializeOptions
}

func newProbeBuilder(session Session) *probeBuilder {
	return &probeBuilder{
		session: session,
		tcp: layers.TCP{
			SrcPort:    layers.TCPPort(session.SourcePort),
			Seq:        0,
			DataOffset: tcpHeaderLen / 4,
			SYN:        true,
			Window:     synWindow,
		},
		buf: gopacket.NewSerializeBuffer(),
		// the checksum is computed below, gopacket only lays out the header
		opts: gopacket.SerializeOptions{FixLengths: true},
	}
}

// build returns the probe for dstPort. The returned slice is only valid until
// the next call.
func (b *probeBuilder) build(dstPort uint16) ([]byte, error) {
	b.tcp.DstPort = layers.TCPPort(dstPort)
	b.tcp.Checksum = 0

	if err := b.buf.Clear(); err != nil {
		return nil, err
	}
	if err := b.tcp.SerializeTo(b.buf, b.opts); err != nil {
		return nil, err
	}

	segment := b.buf.Bytes()
	checksum := Checksum(b.session.Source, b.session.Target, segment)
	binary.BigEndian.PutUint16(segment[tcpChecksumOffset:], checksum)
	b.tcp.Checksum = checksum

	return segment, nil
}

// BuildSYN returns a 20 byte TCP SYN header from the session's ephemeral port
// to dstPort, checksummed for the session's source and target addresses.
func BuildSYN(session Session, dstPort uint16) ([]byte, error) {
	packet, err := newProbeBuilder(session).build(dstPort)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(packet))
	copy(out, packet)
	return out, nil
}

// Checksum computes the TCP checksum of segment over the IPv4 pseudo-header.
// The checksum field inside segment is treated as zero, so it does not need
// clearing beforehand. Odd length segments are zero padded.
//
// src and dst must be IPv4 addresses (Session always holds them in 4 byte
// form). For any other address the result is 0, which is not a usable
// checksum and must not be sent.
func Checksum(src net.IP, dst net.IP, segment []byte) uint16 {

	src4 := src.To4()
	dst4 := dst.To4()
	if src4 == nil || dst4 == nil {
		return 0
	}

	var sum uint32
	sum += uint32(binary.BigEndian.Uint16(src4[0:2]))
	sum += uint32(binary.BigEndian.Uint16(src4[2:4]))
	sum += uint32(binary.BigEndian.Uint16(dst4[0:2]))
	sum += uint32(binary.BigEndian.Uint16(dst4[2:4]))
	sum += uint32(layers.IPProtocolTCP)
	sum += uint32(len(segment))

	for i := 0; i+1 < len(segment); i += 2 {
		if i == tcpChecksumOffset {
			continue
		}
		sum += uint32(binary.BigEndian.Uint16(segment[i : i+2]))
	}
	if len(segment)%2 == 1 {
		sum += uint32(segment[len(segment)-1]) << 8
	}

	for sum>>16 != 0 {
		sum = (sum & 0xffff) + (sum >> 16)
	}

	return ^uint16(sum)
}
