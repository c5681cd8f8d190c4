package commands

import (
	"os"

	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/**
 * Command to remove saved connections, the device database and log files
 */
func clearData() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clears saved connections, device database and log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			for _, key := range []string{"connections-file", "database-file", "log-file"} {
				file := viper.GetString(key)

				if file == "" {
					continue
				}

				if err := os.RemoveAll(file); err != nil {
					return err
				}

				log.Info().Str("file", file).Msg("removed " + key)
			}

			return nil
		},
	}

	return cmd
}
