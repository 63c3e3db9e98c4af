package scan

import (
	"context"
	"net"
)

type Scanner interface {
	Scan(ctx context.Context, target net.IP, start uint16, end uint16) (Result, error)
}

var _ Scanner = (*SynScanner)(nil)
