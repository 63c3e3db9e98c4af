package scan

import (
	"sort"
	"sync"
)

// OpenPortSet is the set of ports a SYN-ACK was seen from. It is written by
// the receiver and read by the coordinator once the receiver has stopped.
type OpenPortSet struct {
	mu    sync.Mutex
	ports map[uint16]struct{}
}

func NewOpenPortSet() *OpenPortSet {
	return &OpenPortSet{
		ports: make(map[uint16]struct{}),
	}
}

// Add records port and reports whether it was new.
func (s *OpenPortSet) Add(port uint16) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ports[port]; exists {
		return false
	}
	s.ports[port] = struct{}{}
	return true
}

func (s *OpenPortSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ports)
}

// Sorted returns the recorded ports in ascending order.
func (s *OpenPortSet) Sorted() []uint16 {
	s.mu.Lock()
	ports := make([]uint16, 0, len(s.ports))
	for port := range s.ports {
		ports = append(ports, port)
	}
	s.mu.Unlock()

	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports
}
