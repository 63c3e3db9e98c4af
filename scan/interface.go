package scan

import (
	"fmt"
	"net"
)

// Interface is the local network interface probes are sent from.
type Interface struct {
	Name         string
	HardwareAddr net.HardwareAddr
	IP           net.IP
}

type interfaceInfo struct {
	name  string
	flags net.Flags
	hw    net.HardwareAddr
	addrs []net.Addr
}

var listInterfaces = systemInterfaces

func systemInterfaces() ([]interfaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	infos := make([]interfaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		infos = append(infos, interfaceInfo{
			name:  iface.Name,
			flags: iface.Flags,
			hw:    iface.HardwareAddr,
			addrs: addrs,
		})
	}
	return infos, nil
}

// ResolveInterface returns the first interface that is up, is not loopback and
// carries an IPv4 address.
func ResolveInterface() (Interface, error) {
	infos, err := listInterfaces()
	if err != nil {
		return Interface{}, fmt.Errorf("%w: %s", ErrNoInterfaceAvailable, err)
	}
	return selectInterface(infos)
}

func selectInterface(infos []interfaceInfo) (Interface, error) {
	for _, info := range infos {
		if info.flags&net.FlagUp == 0 || info.flags&net.FlagLoopback != 0 {
			continue
		}
		for _, addr := range info.addrs {
			var ip net.IP
			switch a := addr.(type) {
			case *net.IPNet:
				ip = a.IP
			case *net.IPAddr:
				ip = a.IP
			}
			if ip4 := ip.To4(); ip4 != nil {
				return Interface{
					Name:         info.name,
					HardwareAddr: info.hw,
					IP:           ip4,
				}, nil
			}
		}
	}
	return Interface{}, ErrNoInterfaceAvailable
}
