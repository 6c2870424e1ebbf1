package model

import (
	"context"
	"net"
)

// SecurityLayer opens plain or TLS listeners.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running network server managed by main.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

// Pinger reports backing store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
