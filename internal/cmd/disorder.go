package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papillo-vmw/apitrace/internal/trace"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

// NewDisorderCommand constructs the `disorder` command, which looks for
// call numbers recorded out of sequence by interleaved capture threads.
func NewDisorderCommand(logger logpkg.Logger) *cobra.Command {
	disorderCmd := &cobra.Command{
		Use:   "disorder TRACE_FILE",
		Short: "Identify out-of-sequence call numbers in a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			verbose, _ := cmd.Flags().GetBool("verbose")

			r, err := trace.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			out := cmd.OutOrStdout()
			var calls, disordered, maxDistance uint64
			haveLast := false
			var lastNo uint64
			for {
				ev, err := r.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				expected := uint64(0)
				if haveLast {
					expected = lastNo + 1
				}
				if ev.No != expected {
					disordered++
					d := ev.No - expected
					if expected > ev.No {
						d = expected - ev.No
					}
					if d > maxDistance {
						maxDistance = d
					}
					if verbose {
						_, _ = fmt.Fprintf(out, "call %d is out-of-sequence (expected %d)\n", ev.No, expected)
					}
				}
				lastNo = ev.No
				haveLast = true
				calls++
			}
			logger.Debug("disorder scan complete", logpkg.Str("trace", args[0]), logpkg.Uint64("calls", calls))
			_, _ = fmt.Fprintf(out, "%d calls, %d out-of-sequence, max distance %d\n", calls, disordered, maxDistance)
			return nil
		},
	}
	disorderCmd.Flags().BoolP("verbose", "v", false, "Print each out-of-sequence call")
	return disorderCmd
}
