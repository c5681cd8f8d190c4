package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/core"
	"github.com/lanpobre/rghstore/internal/device"
	"github.com/lanpobre/rghstore/internal/discovery"
	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/install"
	"github.com/lanpobre/rghstore/internal/inventory"
	mock_config "github.com/lanpobre/rghstore/internal/mock/config"
	mock_device "github.com/lanpobre/rghstore/internal/mock/device"
	mock_discovery "github.com/lanpobre/rghstore/internal/mock/discovery"
	mock_install "github.com/lanpobre/rghstore/internal/mock/install"
	mock_inventory "github.com/lanpobre/rghstore/internal/mock/inventory"
	mock_transfer "github.com/lanpobre/rghstore/internal/mock/transfer"
	"github.com/stretchr/testify/assert"
)

func TestCore(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)
	mockDevices := mock_device.NewMockService(ctrl)
	mockDiscovery := mock_discovery.NewMockService(ctrl)
	mockDialer := mock_transfer.NewMockDialer(ctrl)
	mockSession := mock_transfer.NewMockSession(ctrl)
	mockChecker := mock_inventory.NewMockChecker(ctrl)
	mockInstaller := mock_install.NewMockInstaller(ctrl)

	settings := config.Default()

	newCore := func() *core.Core {
		return core.New(
			settings,
			mockConfig,
			mockDevices,
			mockDiscovery,
			mockDialer,
			mockChecker,
			mockInstaller,
			event.NewEventManager(),
		)
	}

	descriptor := artifact.Descriptor{
		Name:        "Foo",
		DownloadURL: "https://example.com/Foo.zip",
		Kind:        artifact.KindApp,
	}

	expectedConf := config.ConnectionConfig{
		Host:     "192.168.1.20",
		User:     "xboxftp",
		Password: "xboxftp",
		Port:     21,
	}

	connect := func(st *testing.T, c *core.Core) {
		mockDialer.EXPECT().Dial(gomock.Any(), expectedConf, settings.Install.SessionTimeout).Return(mockSession, nil)
		mockSession.EXPECT().Close().Return(nil)
		mockConfig.EXPECT().Save(expectedConf).DoAndReturn(func(conf config.ConnectionConfig) (*config.ConnectionConfig, error) {
			conf.ID = "id"
			return &conf, nil
		})
		mockDevices.EXPECT().AddOrUpdateDevice(gomock.Any()).DoAndReturn(func(d *device.Device) error {
			assert.Equal(st, expectedConf.Host, d.IP)
			assert.Equal(st, device.SourceConnect, d.Source)
			assert.Equal(st, device.StatusOnline, d.Status)
			return nil
		})

		assert.NoError(st, c.Connect(context.Background(), expectedConf.Host, "", ""))
	}

	t.Run("connects with default credentials", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		active, ok := c.ActiveConfig()

		assert.True(st, ok)
		assert.Equal(st, "id", active.ID)
		assert.Equal(st, expectedConf.Host, active.Host)
	})

	t.Run("explicit credentials win over defaults", func(st *testing.T) {
		c := newCore()

		custom := config.ConnectionConfig{
			Host:     "192.168.1.21",
			User:     "admin",
			Password: "secret",
			Port:     21,
		}

		mockDialer.EXPECT().Dial(gomock.Any(), custom, settings.Install.SessionTimeout).Return(mockSession, nil)
		mockSession.EXPECT().Close().Return(nil)
		mockConfig.EXPECT().Save(custom).DoAndReturn(func(conf config.ConnectionConfig) (*config.ConnectionConfig, error) {
			conf.ID = "custom"
			return &conf, nil
		})
		mockDevices.EXPECT().AddOrUpdateDevice(gomock.Any()).Return(nil)

		assert.NoError(st, c.Connect(context.Background(), custom.Host, custom.User, custom.Password))

		active, ok := c.ActiveConfig()

		assert.True(st, ok)
		assert.Equal(st, "admin", active.User)
	})

	t.Run("failed connect marks device offline and keeps no config", func(st *testing.T) {
		c := newCore()

		dialErr := exception.New(exception.ErrConnection, errors.New("refused"), "dial")

		mockDialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dialErr)
		mockDevices.EXPECT().MarkDeviceOffline("192.168.1.99").Return(nil)

		err := c.Connect(context.Background(), "192.168.1.99", "user", "pass")

		assert.ErrorIs(st, err, exception.ErrConnection)

		_, ok := c.ActiveConfig()
		assert.False(st, ok)
	})

	t.Run("reconnects to last saved config", func(st *testing.T) {
		c := newCore()

		last := expectedConf
		last.ID = "id"

		mockConfig.EXPECT().LastLoaded().Return(&last, nil)
		mockDialer.EXPECT().Dial(gomock.Any(), last, gomock.Any()).Return(mockSession, nil)
		mockSession.EXPECT().Close().Return(nil)
		mockConfig.EXPECT().Save(last).Return(&last, nil)
		mockDevices.EXPECT().AddOrUpdateDevice(gomock.Any()).Return(nil)

		assert.NoError(st, c.Reconnect(context.Background()))

		active, ok := c.ActiveConfig()

		assert.True(st, ok)
		assert.Equal(st, last, active)
	})

	t.Run("reconnect without saved config is not connected", func(st *testing.T) {
		c := newCore()

		mockConfig.EXPECT().LastLoaded().Return(nil, exception.ErrRecordNotFound)

		err := c.Reconnect(context.Background())

		assert.ErrorIs(st, err, exception.ErrNotConnected)
	})

	t.Run("scans network", func(st *testing.T) {
		c := newCore()

		opts := discovery.ScanOptions{All: true}

		mockDiscovery.EXPECT().Scan(gomock.Any(), opts).Return([]string{"192.168.1.20"})

		assert.Equal(st, []string{"192.168.1.20"}, c.ScanNetwork(context.Background(), opts))
	})

	t.Run("requires a connection", func(st *testing.T) {
		c := newCore()

		_, err := c.CheckInstalled(context.Background(), "Foo")
		assert.ErrorIs(st, err, exception.ErrNotConnected)

		job, err := c.InstallApp(context.Background(), descriptor)
		assert.Nil(st, job)
		assert.ErrorIs(st, err, exception.ErrNotConnected)

		_, err = c.GetStatus(context.Background())
		assert.ErrorIs(st, err, exception.ErrNotConnected)
	})

	t.Run("checks installed with the active config", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		expected := inventory.Result{Status: inventory.StatusFound, Location: inventory.LocationApps}

		mockChecker.EXPECT().Check(gomock.Any(), gomock.Any(), "Foo").DoAndReturn(
			func(_ context.Context, conf config.ConnectionConfig, _ string) (inventory.Result, error) {
				assert.Equal(st, expectedConf.Host, conf.Host)
				return expected, nil
			},
		)

		result, err := c.CheckInstalled(context.Background(), "Foo")

		assert.NoError(st, err)
		assert.Equal(st, expected, result)
	})

	t.Run("installs with the active config", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		job := &install.Job{ID: "job", State: install.StateCompleted}

		mockInstaller.EXPECT().Install(gomock.Any(), gomock.Any(), descriptor).Return(job, nil)

		got, err := c.InstallApp(context.Background(), descriptor)

		assert.NoError(st, err)
		assert.Equal(st, job, got)
	})

	t.Run("allows one install at a time", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		started := make(chan struct{})
		release := make(chan struct{})

		mockInstaller.EXPECT().Install(gomock.Any(), gomock.Any(), descriptor).DoAndReturn(
			func(context.Context, config.ConnectionConfig, artifact.Descriptor) (*install.Job, error) {
				close(started)
				<-release
				return &install.Job{State: install.StateCompleted}, nil
			},
		)

		wg := sync.WaitGroup{}
		wg.Add(1)

		go func() {
			defer wg.Done()
			c.InstallApp(context.Background(), descriptor)
		}()

		<-started

		_, err := c.InstallApp(context.Background(), descriptor)

		assert.ErrorIs(st, err, exception.ErrJobInProgress)

		close(release)
		wg.Wait()

		mockInstaller.EXPECT().Install(gomock.Any(), gomock.Any(), descriptor).Return(&install.Job{}, nil)

		_, err = c.InstallApp(context.Background(), descriptor)

		assert.NoError(st, err)
	})

	t.Run("gets status", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		mockDialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(mockSession, nil)
		mockSession.EXPECT().RawCommand("STAT").Return(211, "Hdd1: 120 GB free", nil)
		mockSession.EXPECT().Close().Return(nil)

		status, err := c.GetStatus(context.Background())

		assert.NoError(st, err)
		assert.Equal(st, "Hdd1: 120 GB free", status)
	})

	t.Run("reports status failures", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		mockDialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(mockSession, nil)
		mockSession.EXPECT().RawCommand("STAT").Return(502, "not implemented", nil)
		mockSession.EXPECT().Close().Return(nil)

		_, err := c.GetStatus(context.Background())

		assert.Error(st, err)
	})

	t.Run("lists devices", func(st *testing.T) {
		c := newCore()

		devices := []*device.Device{{IP: "192.168.1.20"}}

		mockDevices.EXPECT().GetAllDevices().Return(devices, nil)

		got, err := c.Devices()

		assert.NoError(st, err)
		assert.Equal(st, devices, got)
	})

	t.Run("forgets a known device", func(st *testing.T) {
		c := newCore()

		mockDevices.EXPECT().GetDevice("192.168.1.20").Return(&device.Device{IP: "192.168.1.20"}, nil)
		mockDevices.EXPECT().RemoveDevice("192.168.1.20").Return(nil)

		assert.NoError(st, c.ForgetDevice("192.168.1.20"))
	})

	t.Run("forgetting an unknown device is not found", func(st *testing.T) {
		c := newCore()

		mockDevices.EXPECT().GetDevice("192.168.1.99").Return(nil, exception.ErrRecordNotFound)

		err := c.ForgetDevice("192.168.1.99")

		assert.ErrorIs(st, err, exception.ErrRecordNotFound)
	})

	t.Run("lists saved connections", func(st *testing.T) {
		c := newCore()

		configs := []*config.ConnectionConfig{{ID: "id", Host: "192.168.1.20"}}

		mockConfig.EXPECT().GetAll().Return(configs, nil)

		got, err := c.Configs()

		assert.NoError(st, err)
		assert.Equal(st, configs, got)
	})

	t.Run("forgetting the active connection disconnects", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		saved := expectedConf
		saved.ID = "id"

		mockConfig.EXPECT().Get("id").Return(&saved, nil)
		mockConfig.EXPECT().Delete("id").Return(nil)

		assert.NoError(st, c.ForgetConnection("id"))

		_, ok := c.ActiveConfig()
		assert.False(st, ok)
	})

	t.Run("forgetting another connection keeps the active one", func(st *testing.T) {
		c := newCore()

		connect(st, c)

		other := config.ConnectionConfig{ID: "other", Host: "192.168.1.30"}

		mockConfig.EXPECT().Get("other").Return(&other, nil)
		mockConfig.EXPECT().Delete("other").Return(nil)

		assert.NoError(st, c.ForgetConnection("other"))

		active, ok := c.ActiveConfig()
		assert.True(st, ok)
		assert.Equal(st, "id", active.ID)
	})

	t.Run("forgetting an unknown connection is not found", func(st *testing.T) {
		c := newCore()

		mockConfig.EXPECT().Get("nope").Return(nil, exception.ErrRecordNotFound)

		err := c.ForgetConnection("nope")

		assert.ErrorIs(st, err, exception.ErrRecordNotFound)
	})
}
