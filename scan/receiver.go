package scan

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/sirupsen/logrus"
)

const defaultPollInterval = 250 * time.Millisecond

// Receiver drains the raw channel and records every port that answers the
// session's probes with a SYN-ACK.
type Receiver struct {
	session      Session
	channel      Channel
	results      *OpenPortSet
	pollInterval time.Duration

	tcp     layers.TCP
	parser  *gopacket.DecodingLayerParser
	decoded []gopacket.LayerType
}

func NewReceiver(session Session, channel Channel, results *OpenPortSet) *Receiver {
	r := &Receiver{
		session:      session,
		channel:      channel,
		results:      results,
		pollInterval: defaultPollInterval,
		decoded:      []gopacket.LayerType{},
	}
	r.parser = gopacket.NewDecodingLayerParser(layers.LayerTypeTCP, &r.tcp)
	r.parser.IgnoreUnsupported = true
	return r
}

// Run reads until ctx is cancelled or the channel is closed. Reads are
// bounded by a deadline so cancellation is noticed within one poll interval
// even when no traffic arrives.
func (r *Receiver) Run(ctx context.Context) error {

	buf := make([]byte, 65535)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := r.channel.SetReadDeadline(time.Now().Add(r.pollInterval)); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logrus.Debugf("Failed to set read deadline: %s", err)
		}

		n, src, err := r.channel.ReadFrom(buf)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			logrus.Debugf("Packet read error: %s", err)
			continue
		}

		r.handle(buf[:n], src)
	}
}

// handle inspects one inbound segment and reports whether it revealed a new
// open port.
func (r *Receiver) handle(segment []byte, src net.IP) bool {

	if !src.Equal(r.session.Target) {
		return false
	}

	if err := r.parser.DecodeLayers(segment, &r.decoded); err != nil {
		logrus.Debugf("Failed to decode packet from %s: %s", src, err)
		return false
	}
	if len(r.decoded) == 0 || r.decoded[0] != layers.LayerTypeTCP {
		return false
	}

	if r.tcp.DstPort != layers.TCPPort(r.session.SourcePort) {
		return false
	}
	if !r.tcp.SYN || !r.tcp.ACK {
		return false
	}

	port := uint16(r.tcp.SrcPort)
	if r.results.Add(port) {
		logrus.Debugf("Received SYN-ACK from %s:%d", src, port)
		return true
	}
	return false
}
