package commands

import (
	"errors"
	"net/http"

	"github.com/lanpobre/rghstore/internal/core"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	Core *core.Core
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool
	var logToFile bool
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "rghstore",
		Short: "Find a console on the network and install apps onto it",
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			if logToFile {
				if err := logger.GlobalSetLogFile(viper.GetString("log-file")); err != nil {
					return err
				}
			}

			if metricsAddr != "" {
				serveMetrics(metricsAddr)
			}

			return nil
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")
	cmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", false, "write logs to the log file instead of stderr")
	cmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")

	cmd.AddCommand(scan(props))
	cmd.AddCommand(connect(props))
	cmd.AddCommand(status(props))
	cmd.AddCommand(check(props))
	cmd.AddCommand(installCmd(props))
	cmd.AddCommand(devices(props))
	cmd.AddCommand(connections(props))
	cmd.AddCommand(clearData())
	cmd.AddCommand(info(props))
	cmd.AddCommand(version())

	return cmd
}

func serveMetrics(addr string) {
	log := logger.New().With("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")

		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}
