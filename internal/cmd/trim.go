package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papillo-vmw/apitrace/internal/callset"
	"github.com/papillo-vmw/apitrace/internal/config"
	"github.com/papillo-vmw/apitrace/internal/trim"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

// NewTrimCommand constructs the `trim` command.
func NewTrimCommand(logger logpkg.Logger, cfg config.Config) *cobra.Command {
	trimCmd := &cobra.Command{
		Use:   "trim TRACE_FILE",
		Short: "Create a new trace by trimming an existing trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calls, _ := cmd.Flags().GetStringArray("calls")
			frames, _ := cmd.Flags().GetStringArray("frames")
			thread, _ := cmd.Flags().GetInt64("thread")
			filter, _ := cmd.Flags().GetString("filter")
			output, _ := cmd.Flags().GetString("output")

			if _, err := trim.NewFilter(filter); err != nil {
				return fmt.Errorf("invalid --filter: %w", err)
			}

			outPath, _, err := trim.Trim(cmd.Context(), logger, trim.Request{
				Input:        args[0],
				Output:       output,
				OutputSuffix: cfg.OutputSuffix,
				Calls:        calls,
				Frames:       frames,
				Thread:       thread,
				Filter:       filter,
			})
			if err != nil {
				// Selection syntax problems deserve usage guidance; anything
				// past configuration is operational.
				var pe *callset.ParseError
				if !errors.As(err, &pe) {
					cmd.SilenceUsage = true
				}
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "trimmed trace is available as", outPath)
			return nil
		},
	}
	trimCmd.Flags().StringArray("calls", nil, "Include the specified calls in the trimmed output (repeatable)")
	trimCmd.Flags().StringArray("frames", nil, "Include the specified frames in the trimmed output (repeatable)")
	trimCmd.Flags().Int64("thread", trim.AllThreads, "Only retain calls from the specified thread (-1 = all threads)")
	trimCmd.Flags().String("filter", "", "CEL expression over no, thread, frame, end_frame, size, text")
	trimCmd.Flags().StringP("output", "o", "", "Output trace file (default: derive from input)")
	return trimCmd
}
