package discovery

import (
	"context"
)

//go:generate mockgen -destination=../mock/discovery/mock_discovery.go -package=mock_discovery . Service

// Prober reports whether a device at ip accepts the probe credentials.
// Failures and timeouts are reported as false.
type Prober interface {
	Probe(ctx context.Context, ip string) bool
}

// ScanOptions tunes a single network scan
type ScanOptions struct {
	// All keeps probing after the first responder
	All bool
	// Prefix overrides the detected three octet network prefix
	Prefix string
}

// Service interface for finding devices on the local network
type Service interface {
	Scan(ctx context.Context, opts ScanOptions) []string
}
