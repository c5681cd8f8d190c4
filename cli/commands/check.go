package commands

import (
	"fmt"

	"github.com/lanpobre/rghstore/internal/inventory"
	"github.com/spf13/cobra"
)

func check(props *CommandProps) *cobra.Command {
	flags := &connectionFlags{}

	cmd := &cobra.Command{
		Use:   "check <name>",
		Short: "Check whether an app or plugin is installed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ensureConnected(cmd.Context(), props, flags); err != nil {
				return err
			}

			result, err := props.Core.CheckInstalled(cmd.Context(), args[0])

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			switch result.Status {
			case inventory.StatusFound:
				fmt.Fprintf(out, "%s is installed in %s\n", args[0], result.Location)
			case inventory.StatusNotFound:
				fmt.Fprintf(out, "%s is not installed\n", args[0])
			default:
				fmt.Fprintf(out, "could not determine whether %s is installed\n", args[0])
			}

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
