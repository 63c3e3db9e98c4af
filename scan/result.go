package scan

import (
	"fmt"
	"net"
	"strings"
	"time"
)

type Result struct {
	Host       net.IP
	Interface  Interface
	SourcePort uint16
	Start      uint16
	End        uint16
	Open       []uint16
	Device     Device
	Elapsed    time.Duration
}

func NewResult(host net.IP) Result {
	return Result{
		Host: host,
		Open: []uint16{},
	}
}

func (r Result) PortsScanned() int {
	if r.End < r.Start {
		return 0
	}
	return int(r.End) - int(r.Start) + 1
}

func (r Result) String() string {
	return r.Render(fmt.Sprintf)
}

// Render formats the result table, passing the status of each open port
// through highlight (for instance a colour function).
func (r Result) Render(highlight func(format string, a ...interface{}) string) string {

	text := &strings.Builder{}

	fmt.Fprintf(text, "Scan results for host %s\n", r.Host.String())

	if r.Device.Known() {
		fmt.Fprintf(text, "\t%s %s", pad("MAC:", 10), r.Device.MAC)
		if r.Device.Manufacturer != "" {
			fmt.Fprintf(text, " (%s)", r.Device.Manufacturer)
		}
		text.WriteString("\n")
	}

	fmt.Fprintf(
		text,
		"\n%s %s %s\n",
		pad("PORT", 10),
		pad("SERVICE", 25),
		"STATUS",
	)
	fmt.Fprintf(
		text,
		"%s %s %s\n",
		pad("----", 10),
		pad("-------", 25),
		"------",
	)

	if len(r.Open) == 0 {
		text.WriteString("No open ports found.\n")
	}

	for _, port := range r.Open {
		fmt.Fprintf(
			text,
			"%s %s %s\n",
			pad(fmt.Sprintf("%d/tcp", port), 10),
			pad(DescribePort(port), 25),
			highlight("OPEN"),
		)
	}

	return text.String()
}

func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}
