package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/metrics"
	"github.com/lanpobre/rghstore/internal/transfer"
)

type namespace struct {
	path     string
	location Location
}

var namespaces = []namespace{
	{path: artifact.AppsNamespace, location: LocationApps},
	{path: artifact.PluginsNamespace, location: LocationPlugins},
}

// FTPChecker implements Checker by listing the remote namespaces
type FTPChecker struct {
	dialer  transfer.Dialer
	timeout time.Duration
	metrics metrics.Metrics
	log     logger.Logger
}

// NewFTPChecker returns a new instance of FTPChecker
func NewFTPChecker(dialer transfer.Dialer, timeout time.Duration, m metrics.Metrics) *FTPChecker {
	if m == nil {
		m = metrics.Noop{}
	}

	return &FTPChecker{
		dialer:  dialer,
		timeout: timeout,
		metrics: m,
		log:     logger.New().With("inventory"),
	}
}

// Check looks for name in the apps namespace, then the plugins namespace.
// A missing namespace counts as absence, any other failure leaves that
// namespace unknown.
func (c *FTPChecker) Check(ctx context.Context, conf config.ConnectionConfig, name string) (Result, error) {
	if err := artifact.ValidateName(name); err != nil {
		return Result{Status: StatusUnknown}, err
	}

	session, err := c.dialer.Dial(ctx, conf, c.timeout)

	if err != nil {
		return Result{Status: StatusUnknown}, err
	}

	defer session.Close()

	confirmed := 0

	for _, ns := range namespaces {
		status := c.probe(session, ns.path, name)

		c.log.Debug().
			Str("name", name).
			Str("namespace", ns.path).
			Str("status", string(status)).
			Msg("namespace checked")

		switch status {
		case StatusFound:
			c.metrics.IncInventoryChecks(string(StatusFound))
			return Result{Status: StatusFound, Location: ns.location}, nil
		case StatusNotFound:
			confirmed++
		}
	}

	result := Result{Status: StatusUnknown, Location: LocationNone}

	if confirmed == len(namespaces) {
		result.Status = StatusNotFound
	}

	c.metrics.IncInventoryChecks(string(result.Status))

	return result, nil
}

func (c *FTPChecker) probe(session transfer.Session, dir, name string) Status {
	if err := session.ChangeDir(dir); err != nil {
		return absentOrUnknown(err)
	}

	entries, err := session.List(dir)

	if err != nil {
		return absentOrUnknown(err)
	}

	for _, entry := range entries {
		if entry.Name == name {
			return StatusFound
		}
	}

	return StatusNotFound
}

func absentOrUnknown(err error) Status {
	if errors.Is(err, exception.ErrNotFound) {
		return StatusNotFound
	}

	return StatusUnknown
}
