package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func devices(props *CommandProps) *cobra.Command {
	var forget string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List consoles seen by scans and connects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if forget != "" {
				if err := props.Core.ForgetDevice(forget); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "forgot device %s\n", forget)

				return nil
			}

			list, err := props.Core.Devices()

			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "IP\tSTATUS\tSOURCE\tUSER\tLAST SEEN")

			for _, d := range list {
				user := ""

				if info, err := d.ProbeInfo(); err == nil {
					user = info.User
				}

				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%s\n",
					d.IP,
					d.Status,
					d.Source,
					user,
					d.LastSeen.Format("2006-01-02 15:04:05"),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&forget, "forget", "", "remove the device with this ip from the registry")

	return cmd
}
