package commands

import (
	"fmt"

	app_info "github.com/lanpobre/rghstore/internal/app-info"
	"github.com/spf13/cobra"
)

func version() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s: %s\n",
				app_info.NAME,
				app_info.VERSION,
			)
		},
	}

	return cmd
}
