package discovery

import (
	"context"
	"time"

	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/transfer"
)

// FTPProber implements Prober with an FTP login
type FTPProber struct {
	dialer   transfer.Dialer
	user     string
	password string
	port     int
	timeout  time.Duration
}

// NewFTPProber returns a new instance of FTPProber
func NewFTPProber(dialer transfer.Dialer, settings config.DiscoverySettings) *FTPProber {
	return &FTPProber{
		dialer:   dialer,
		user:     settings.User,
		password: settings.Password,
		port:     settings.Port,
		timeout:  settings.ProbeTimeout,
	}
}

// Probe logs in to ip and immediately closes the session
func (p *FTPProber) Probe(ctx context.Context, ip string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	session, err := p.dialer.Dial(ctx, config.ConnectionConfig{
		Host:     ip,
		User:     p.user,
		Password: p.password,
		Port:     p.port,
	}, p.timeout)

	if err != nil {
		return false
	}

	session.Close()

	return true
}
