package scan

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const DefaultPacketsPerSecond = 3000

// ProgressFunc is called once for every probe handed to the channel.
type ProgressFunc func(port uint16)

// Transmitter sends one SYN per port of a session, in ascending order,
// never faster than its configured rate.
type Transmitter struct {
	limiter *rate.Limiter
}

// NewTransmitter creates a transmitter capped at pps packets per second. A
// non-positive pps disables pacing.
func NewTransmitter(pps int) *Transmitter {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if pps > 0 {
		limiter = rate.NewLimiter(rate.Limit(pps), 1)
	}
	return &Transmitter{
		limiter: limiter,
	}
}

// Transmit probes session.Start through session.End inclusive. Failed writes
// are logged and skipped; they do not stop the scan. Only a cancelled ctx
// ends the loop early.
func (t *Transmitter) Transmit(ctx context.Context, session Session, channel Channel, onProgress ProgressFunc) error {

	builder := newProbeBuilder(session)

	// a fresh limiter holds one token; spend it so the first two probes are
	// spaced like the rest
	t.limiter.Allow()

	// int loop variable so End == 65535 terminates
	for p := int(session.Start); p <= int(session.End); p++ {

		if err := ctx.Err(); err != nil {
			return err
		}

		port := uint16(p)

		packet, err := builder.build(port)
		if err == nil {
			err = channel.WriteTo(packet, session.Target)
		}
		if err != nil {
			logrus.Debug((&TransmitError{Port: port, Err: err}).Error())
		}

		if onProgress != nil {
			onProgress(port)
		}

		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	return nil
}
