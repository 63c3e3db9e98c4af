package scan

import (
	"net"

	"github.com/google/gopacket/macs"
	"github.com/mostlygeek/arp"
)

// Device is what the local ARP cache knows about a target. It is only ever
// populated for hosts on the same link.
type Device struct {
	MAC          string
	Manufacturer string
}

func (d Device) Known() bool {
	return d.MAC != ""
}

// LookupDevice searches the ARP cache for ip. Sending probes makes the kernel
// resolve on-link targets, so this is best called after a scan.
func LookupDevice(ip net.IP) Device {

	macStr := arp.Search(ip.String())
	if macStr == "" || macStr == "00:00:00:00:00:00" {
		return Device{}
	}

	mac, err := net.ParseMAC(macStr)
	if err != nil {
		return Device{}
	}

	return Device{
		MAC:          mac.String(),
		Manufacturer: Manufacturer(mac),
	}
}

// Manufacturer returns the registered vendor for the OUI of mac, if any.
func Manufacturer(mac net.HardwareAddr) string {
	if len(mac) < 3 {
		return ""
	}
	prefix := [3]byte{
		mac[0],
		mac[1],
		mac[2],
	}
	return macs.ValidMACPrefixMap[prefix]
}
