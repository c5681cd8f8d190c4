package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path"

	"github.com/lanpobre/rghstore/cli/commands"
	app_info "github.com/lanpobre/rghstore/internal/app-info"
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/core"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/metrics"
	"github.com/spf13/viper"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

func setRunTimeConfig() error {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	cacheDir, err := os.UserCacheDir()

	if err != nil {
		cacheDir = configDir
	} else {
		cacheDir = path.Join(cacheDir, app_info.NAME)

		if err := os.MkdirAll(cacheDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
			return err
		}
	}

	// share run-time config globally using viper
	viper.Set("config-dir", configDir)
	viper.Set("config-file", path.Join(configDir, app_info.NAME+".yml"))
	viper.Set("connections-file", path.Join(configDir, "connections.json"))
	viper.Set("log-file", path.Join(configDir, app_info.NAME+".log"))
	viper.Set("database-file", path.Join(cacheDir, "devices.db"))

	return nil
}

func loadSettings() (*config.Settings, error) {
	settingsFile := viper.GetString("config-file")

	settings, err := config.Load(settingsFile)

	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(settingsFile); errors.Is(err, os.ErrNotExist) {
		if err := config.Write(settingsFile, *settings); err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnv(viper.GetViper(), settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Entry point for the cli
func main() {
	log := logger.New()

	if err := setRunTimeConfig(); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	settings, err := loadSettings()

	if err != nil {
		log.Fatal().Err(err).Msg("failed to load settings")
	}

	appCore, err := core.CreateNewAppCore(*settings, metrics.NewProm(app_info.NAME))

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create app core")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		Core: appCore,
	})

	// execute the cobra command and exit with error code if necessary
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("")
	}
}
