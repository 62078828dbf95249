package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papillo-vmw/apitrace/internal/trace"
	"github.com/papillo-vmw/apitrace/internal/traceindex"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

// NewScanCommand constructs the `scan` command.
func NewScanCommand(logger logpkg.Logger) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan TRACE_FILE",
		Short: "Count the calls and frames in a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			verbose, _ := cmd.Flags().GetBool("verbose")

			r, err := trace.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			s, err := traceindex.Scan(r)
			if err != nil {
				return err
			}
			logger.Debug("scan complete", logpkg.Str("trace", args[0]), logpkg.Uint64("calls", s.Calls))

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%d calls, %d frames\n", s.Calls, s.Frames)
			if verbose {
				for i, no := range s.FrameEnds {
					_, _ = fmt.Fprintf(out, "frame %d ends at call %d\n", i, no)
				}
			}
			return nil
		},
	}
	scanCmd.Flags().BoolP("verbose", "v", false, "List the call number ending each frame")
	return scanCmd
}
