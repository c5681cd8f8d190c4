package commands

import (
	"fmt"

	"github.com/lanpobre/rghstore/internal/discovery"
	"github.com/spf13/cobra"
)

func scan(props *CommandProps) *cobra.Command {
	var all bool
	var prefix string
	var connectFound bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the local network for a console",
		RunE: func(cmd *cobra.Command, args []string) error {
			found := props.Core.ScanNetwork(cmd.Context(), discovery.ScanOptions{
				All:    all,
				Prefix: prefix,
			})

			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no device found")
				return nil
			}

			for _, ip := range found {
				fmt.Fprintln(cmd.OutOrStdout(), ip)
			}

			if !connectFound {
				return nil
			}

			if err := props.Core.Connect(cmd.Context(), found[0], "", ""); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "connected to %s\n", found[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "keep scanning after the first device")
	cmd.Flags().StringVar(&prefix, "prefix", "", "three octet network prefix, detected when empty")
	cmd.Flags().BoolVar(&connectFound, "connect", false, "connect to the first device found")

	return cmd
}
