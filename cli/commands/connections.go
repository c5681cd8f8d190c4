package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func connections(props *CommandProps) *cobra.Command {
	var forget string

	cmd := &cobra.Command{
		Use:   "connections",
		Short: "List or forget saved connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if forget != "" {
				if err := props.Core.ForgetConnection(forget); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "forgot connection %s\n", forget)

				return nil
			}

			list, err := props.Core.Configs()

			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "ID\tHOST\tPORT\tUSER\tLAST USED")

			for _, c := range list {
				fmt.Fprintf(
					w,
					"%s\t%s\t%d\t%s\t%s\n",
					c.ID,
					c.Host,
					c.Port,
					c.User,
					c.Loaded.Format("2006-01-02 15:04:05"),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&forget, "forget", "", "delete the saved connection with this id")

	return cmd
}
