package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func status(props *CommandProps) *cobra.Command {
	flags := &connectionFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the console's status reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureConnected(cmd.Context(), props, flags); err != nil {
				return err
			}

			raw, err := props.Core.GetStatus(cmd.Context())

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), raw)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
