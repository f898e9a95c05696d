package port

import (
	"errors"
	"net/netip"
)

//go:generate mockgen -destination=../service/mocks/transport_mock.go -package=mocks -source=transport.go

var ErrTransportClosed = errors.New("transport is closed")

// InboundHandler receives one raw control frame and the address it came from.
type InboundHandler func(payload []byte, from netip.Addr)

// Transport carries control frames between vehicles.
type Transport interface {
	// Open starts delivering inbound frames to h. A closed transport may be
	// opened again.
	Open(h InboundHandler) error

	// SendUnicast sends payload to a single vehicle.
	SendUnicast(to netip.Addr, payload []byte) error

	// SendBroadcast sends payload to every vehicle in range.
	SendBroadcast(payload []byte) error

	// LocalAddr is the address peers should reply to.
	LocalAddr() netip.Addr

	// Close stops delivery and releases the underlying resources.
	Close() error
}
