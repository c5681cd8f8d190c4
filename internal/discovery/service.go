package discovery

import (
	"context"
	"net"
	"time"

	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/device"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/metrics"
)

// ScannerService implements Service by probing the local /24 and recording
// responders in the device registry
type ScannerService struct {
	settings config.DiscoverySettings
	prober   Prober
	devices  device.Service
	metrics  metrics.Metrics
	addrs    func() ([]net.Addr, error)
	now      func() time.Time
	log      logger.Logger
}

// NewScannerService returns a new instance of ScannerService
func NewScannerService(
	settings config.DiscoverySettings,
	prober Prober,
	devices device.Service,
	m metrics.Metrics,
) *ScannerService {
	if m == nil {
		m = metrics.Noop{}
	}

	return &ScannerService{
		settings: settings,
		prober:   prober,
		devices:  devices,
		metrics:  m,
		addrs:    net.InterfaceAddrs,
		now:      time.Now,
		log:      logger.New().With("discovery"),
	}
}

// Scan never fails; an empty result means no device answered
func (s *ScannerService) Scan(ctx context.Context, opts ScanOptions) []string {
	prefix := opts.Prefix

	if prefix == "" {
		prefix = LocalPrefix(s.addrs, s.settings.DefaultPrefix)
	}

	targets, err := Addresses(prefix, s.settings.RangeStart, s.settings.RangeEnd)

	if err != nil {
		s.log.Warn().Err(err).Str("prefix", prefix).Msg("cannot build scan targets")
		return []string{}
	}

	mode := "first"

	if opts.All {
		mode = "all"
	}

	s.log.Info().
		Str("prefix", prefix).
		Int("targets", len(targets)).
		Str("mode", mode).
		Msg("scanning network")

	started := s.now()

	found := NewScanner(s.prober, s.settings.Concurrency, s.metrics).Scan(ctx, targets, opts.All)

	s.metrics.ObserveScan(mode, s.now().Sub(started).Seconds())

	s.log.Info().Int("count", len(found)).Msg("scan finished")

	for _, ip := range found {
		s.recordDevice(ip)
	}

	return found
}

func (s *ScannerService) recordDevice(ip string) {
	if s.devices == nil {
		return
	}

	err := s.devices.AddOrUpdateDevice(&device.Device{
		IP:       ip,
		Status:   device.StatusOnline,
		Source:   device.SourceScan,
		LastSeen: s.now(),
		Probe: device.NewProbe(device.ProbeInfo{
			User: s.settings.User,
			Port: s.settings.Port,
		}),
	})

	if err != nil {
		s.log.Error().Err(err).Str("ip", ip).Msg("error recording device")
	}
}
