package core

import (
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/device"
	"github.com/lanpobre/rghstore/internal/discovery"
	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/install"
	"github.com/lanpobre/rghstore/internal/inventory"
	"github.com/lanpobre/rghstore/internal/metrics"
	"github.com/lanpobre/rghstore/internal/transfer"
	"github.com/spf13/viper"
)

// CreateNewAppCore creates and returns a new instance of *core.Core wired
// to the files named by the runtime config
func CreateNewAppCore(settings config.Settings, m metrics.Metrics) (*Core, error) {
	connectionsFile := viper.GetString("connections-file")
	dbFile := viper.GetString("database-file")

	configRepo, err := config.NewJSONRepo(connectionsFile)

	if err != nil {
		return nil, err
	}

	configService := config.NewConfigService(configRepo)

	db, err := device.NewSqliteDatabase(dbFile)

	if err != nil {
		return nil, err
	}

	events := event.NewEventManager()

	deviceService := device.NewService(device.NewSqliteRepo(db), events)

	dialer := transfer.NewFTPDialer()

	scannerService := discovery.NewScannerService(
		settings.Discovery,
		discovery.NewFTPProber(dialer, settings.Discovery),
		deviceService,
		m,
	)

	checker := inventory.NewFTPChecker(dialer, settings.Install.SessionTimeout, m)

	installer := install.NewOrchestrator(
		settings.Install,
		dialer,
		install.NewHTTPDownloader(settings.Install.DownloadTimeout, settings.Install.MaxRedirects),
		install.DefaultRegistry(settings.Install.RarCommand),
		events,
		m,
	)

	return New(
		settings,
		configService,
		deviceService,
		scannerService,
		dialer,
		checker,
		installer,
		events,
	), nil
}
