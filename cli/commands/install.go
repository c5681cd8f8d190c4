package commands

import (
	"fmt"
	"io"
	"sync"

	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/install"
	"github.com/spf13/cobra"
)

func installCmd(props *CommandProps) *cobra.Command {
	flags := &connectionFlags{}
	descriptor := artifact.Descriptor{}
	var kind string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download an app or plugin and install it on the console",
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptor.Kind = artifact.ParseKind(kind)

			if err := descriptor.Validate(); err != nil {
				return err
			}

			if err := ensureConnected(cmd.Context(), props, flags); err != nil {
				return err
			}

			states := make(chan event.Event, 100)
			progress := make(chan event.Event, 100)
			warnings := make(chan event.Event, 10)

			stateID := props.Core.RegisterEventListener(event.JobStateEventType, states)
			progressID := props.Core.RegisterEventListener(event.JobProgressEventType, progress)
			warningID := props.Core.RegisterEventListener(event.ErrorEventType, warnings)

			done := make(chan struct{})
			wg := sync.WaitGroup{}
			wg.Add(1)

			go func() {
				defer wg.Done()
				printJobEvents(cmd.OutOrStdout(), states, progress, warnings, done)
			}()

			job, err := props.Core.InstallApp(cmd.Context(), descriptor)

			props.Core.RemoveEventListener(stateID)
			props.Core.RemoveEventListener(progressID)
			props.Core.RemoveEventListener(warningID)
			close(done)
			wg.Wait()

			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "installed %s to %s\n", descriptor.Name, job.RemoteBasePath)

			return nil
		},
	}

	flags.register(cmd)

	cmd.Flags().StringVar(&descriptor.Name, "name", "", "folder name on the console")
	cmd.Flags().StringVar(&descriptor.Title, "title", "", "display title")
	cmd.Flags().StringVar(&descriptor.DownloadURL, "url", "", "archive download url (.zip or .rar)")
	cmd.Flags().StringVar(&kind, "kind", string(artifact.KindApp), "app or plugin")

	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("url")

	return cmd
}

func printJobEvents(out io.Writer, states, progress, warnings chan event.Event, done chan struct{}) {
	show := func(evt event.Event) {
		switch payload := evt.Payload.(type) {
		case install.StateEvent:
			fmt.Fprintf(out, "[%s] %s\n", payload.Name, payload.State)
		case install.ProgressEvent:
			fmt.Fprintf(out, "[%s] %3d%% %s\n", payload.Name, payload.Percent, payload.Message)
		case error:
			fmt.Fprintf(out, "warning: %s\n", payload)
		}
	}

	for {
		select {
		case evt := <-states:
			show(evt)
		case evt := <-progress:
			show(evt)
		case evt := <-warnings:
			show(evt)
		case <-done:
			// flush what was sent before the job returned
			for {
				select {
				case evt := <-states:
					show(evt)
				case evt := <-progress:
					show(evt)
				case evt := <-warnings:
					show(evt)
				default:
					return
				}
			}
		}
	}
}
