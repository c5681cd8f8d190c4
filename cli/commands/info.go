package commands

import (
	"fmt"
	"os/exec"

	app_info "github.com/lanpobre/rghstore/internal/app-info"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func info(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print detailed app info",
		Run: func(cmd *cobra.Command, args []string) {
			settings := props.Core.Settings()

			rar := "not found"

			if p, err := exec.LookPath(settings.Install.RarCommand); err == nil {
				rar = p
			}

			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s: %s\n\nsettings:    %s\nconnections: %s\ndatabase:    %s\nlog:         %s\ntemp dir:    %s\nunrar:       %s\n",
				app_info.NAME,
				app_info.VERSION,
				viper.GetString("config-file"),
				viper.GetString("connections-file"),
				viper.GetString("database-file"),
				viper.GetString("log-file"),
				settings.Install.TempDir,
				rar,
			)
		},
	}

	return cmd
}
