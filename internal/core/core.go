package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/imdario/mergo"
	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/device"
	"github.com/lanpobre/rghstore/internal/discovery"
	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/install"
	"github.com/lanpobre/rghstore/internal/inventory"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/transfer"
)

// Core represents our core data structure
type Core struct {
	settings      config.Settings
	configService config.Service
	deviceService device.Service
	discovery     discovery.Service
	dialer        transfer.Dialer
	checker       inventory.Checker
	installer     install.Installer
	events        event.Manager
	active        *config.ConnectionConfig
	activeMux     sync.RWMutex
	busy          atomic.Bool
	now           func() time.Time
	log           logger.Logger
}

// New returns new core module
func New(
	settings config.Settings,
	configService config.Service,
	deviceService device.Service,
	discoveryService discovery.Service,
	dialer transfer.Dialer,
	checker inventory.Checker,
	installer install.Installer,
	events event.Manager,
) *Core {
	return &Core{
		settings:      settings,
		configService: configService,
		deviceService: deviceService,
		discovery:     discoveryService,
		dialer:        dialer,
		checker:       checker,
		installer:     installer,
		events:        events,
		now:           time.Now,
		log:           logger.New().With("core"),
	}
}

// Settings returns the settings the core was created with
func (c *Core) Settings() config.Settings {
	return c.settings
}

// ActiveConfig returns a copy of the active connection config, if any
func (c *Core) ActiveConfig() (config.ConnectionConfig, bool) {
	c.activeMux.RLock()
	defer c.activeMux.RUnlock()

	if c.active == nil {
		return config.ConnectionConfig{}, false
	}

	return *c.active, true
}

// Connect logs in to host and, on success, makes it the active device.
// Empty credentials and port fall back to the discovery settings.
func (c *Core) Connect(ctx context.Context, host, user, password string) error {
	conf := config.ConnectionConfig{
		Host:     host,
		User:     user,
		Password: password,
	}

	defaults := config.ConnectionConfig{
		User:     c.settings.Discovery.User,
		Password: c.settings.Discovery.Password,
		Port:     c.settings.Discovery.Port,
	}

	if err := mergo.Merge(&conf, defaults); err != nil {
		return err
	}

	return c.connect(ctx, conf)
}

// Reconnect connects to the most recently used saved config
func (c *Core) Reconnect(ctx context.Context) error {
	last, err := c.configService.LastLoaded()

	if errors.Is(err, exception.ErrRecordNotFound) {
		return exception.New(exception.ErrNotConnected, nil, "no saved connection")
	}

	if err != nil {
		return err
	}

	return c.connect(ctx, *last)
}

func (c *Core) connect(ctx context.Context, conf config.ConnectionConfig) error {
	if conf.Host == "" {
		return exception.New(exception.ErrConnection, nil, "host is required")
	}

	session, err := c.dialer.Dial(ctx, conf, c.settings.Install.SessionTimeout)

	if err != nil {
		if markErr := c.deviceService.MarkDeviceOffline(conf.Host); markErr != nil {
			c.log.Error().Err(markErr).Str("ip", conf.Host).Msg("error marking device offline")
		}

		return err
	}

	if err := session.Close(); err != nil {
		c.log.Debug().Err(err).Str("ip", conf.Host).Msg("error closing probe session")
	}

	saved, err := c.configService.Save(conf)

	if err != nil {
		c.log.Warn().Err(err).Str("ip", conf.Host).Msg("failed to save connection config")
		saved = &conf
	}

	c.activeMux.Lock()
	c.active = saved
	c.activeMux.Unlock()

	err = c.deviceService.AddOrUpdateDevice(&device.Device{
		IP:       conf.Host,
		Status:   device.StatusOnline,
		Source:   device.SourceConnect,
		LastSeen: c.now(),
		Probe:    device.NewProbe(device.ProbeInfo{User: conf.User, Port: conf.Port}),
	})

	if err != nil {
		c.log.Error().Err(err).Str("ip", conf.Host).Msg("error recording device")
	}

	c.log.Info().Str("ip", conf.Host).Msg("connected")

	return nil
}

// ScanNetwork looks for devices on the local network
func (c *Core) ScanNetwork(ctx context.Context, opts discovery.ScanOptions) []string {
	return c.discovery.Scan(ctx, opts)
}

// CheckInstalled reports whether name exists on the active device
func (c *Core) CheckInstalled(ctx context.Context, name string) (inventory.Result, error) {
	conf, ok := c.ActiveConfig()

	if !ok {
		return inventory.Result{Status: inventory.StatusUnknown}, errNotConnected()
	}

	return c.checker.Check(ctx, conf, name)
}

// InstallApp installs d on the active device. Only one install runs at a
// time.
func (c *Core) InstallApp(ctx context.Context, d artifact.Descriptor) (*install.Job, error) {
	conf, ok := c.ActiveConfig()

	if !ok {
		return nil, errNotConnected()
	}

	if !c.busy.CompareAndSwap(false, true) {
		return nil, exception.New(exception.ErrJobInProgress, nil, "an install is already running")
	}

	defer c.busy.Store(false)

	return c.installer.Install(ctx, conf, d)
}

// GetStatus returns the device reply to STAT
func (c *Core) GetStatus(ctx context.Context) (string, error) {
	conf, ok := c.ActiveConfig()

	if !ok {
		return "", errNotConnected()
	}

	session, err := c.dialer.Dial(ctx, conf, c.settings.Install.SessionTimeout)

	if err != nil {
		return "", err
	}

	defer session.Close()

	code, msg, err := session.RawCommand("STAT")

	if err != nil {
		return "", err
	}

	if code >= 400 {
		return "", fmt.Errorf("status failed: %d %s", code, msg)
	}

	return msg, nil
}

// Devices returns every device in the registry
func (c *Core) Devices() ([]*device.Device, error) {
	return c.deviceService.GetAllDevices()
}

// ForgetDevice removes a device from the registry
func (c *Core) ForgetDevice(ip string) error {
	if _, err := c.deviceService.GetDevice(ip); err != nil {
		return err
	}

	if err := c.deviceService.RemoveDevice(ip); err != nil {
		return err
	}

	c.log.Info().Str("ip", ip).Msg("device forgotten")

	return nil
}

// Configs returns every saved connection config
func (c *Core) Configs() ([]*config.ConnectionConfig, error) {
	return c.configService.GetAll()
}

// ForgetConnection deletes a saved connection config. Forgetting the active
// config disconnects.
func (c *Core) ForgetConnection(id string) error {
	conf, err := c.configService.Get(id)

	if err != nil {
		return err
	}

	if err := c.configService.Delete(conf.ID); err != nil {
		return err
	}

	c.activeMux.Lock()

	if c.active != nil && c.active.ID == conf.ID {
		c.active = nil
	}

	c.activeMux.Unlock()

	c.log.Info().Str("ip", conf.Host).Msg("connection forgotten")

	return nil
}

// RegisterEventListener subscribes channel to events of eventType
func (c *Core) RegisterEventListener(eventType event.EventType, channel chan event.Event) int {
	return c.events.RegisterListener(eventType, channel)
}

// RemoveEventListener unsubscribes a listener
func (c *Core) RemoveEventListener(id int) {
	c.events.RemoveListener(id)
}

func errNotConnected() error {
	return exception.New(exception.ErrNotConnected, nil, "not connected, run connect or scan first")
}
