package commands

import (
	"context"

	"github.com/spf13/cobra"
)

type connectionFlags struct {
	host     string
	user     string
	password string
}

func (f *connectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.host, "host", "", "device address, defaults to the last connected device")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "ftp user")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "ftp password")
}

// ensureConnected connects to --host when given, otherwise to the most
// recently used device
func ensureConnected(ctx context.Context, props *CommandProps, f *connectionFlags) error {
	if f.host != "" {
		return props.Core.Connect(ctx, f.host, f.user, f.password)
	}

	return props.Core.Reconnect(ctx)
}
