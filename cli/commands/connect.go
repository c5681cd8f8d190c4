package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func connect(props *CommandProps) *cobra.Command {
	var user string
	var password string

	cmd := &cobra.Command{
		Use:   "connect [host]",
		Short: "Connect to a console and remember it",
		Long:  "Connect to a console and remember it. Without a host the last saved connection is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := props.Core.Reconnect(cmd.Context()); err != nil {
					return err
				}
			} else if err := props.Core.Connect(cmd.Context(), args[0], user, password); err != nil {
				return err
			}

			conf, _ := props.Core.ActiveConfig()

			fmt.Fprintf(cmd.OutOrStdout(), "connected to %s as %s\n", conf.Host, conf.User)

			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "ftp user")
	cmd.Flags().StringVarP(&password, "password", "p", "", "ftp password")

	return cmd
}
