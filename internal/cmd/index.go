package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papillo-vmw/apitrace/internal/config"
	"github.com/papillo-vmw/apitrace/internal/traceindex"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

// NewIndexCommand constructs the `index` command group and subcommands.
func NewIndexCommand(logger logpkg.Logger, cfg config.Config) *cobra.Command {
	indexCmd := &cobra.Command{Use: "index", Short: "Catalog of trace scan results"}
	indexCmd.AddCommand(
		newIndexAddCommand(logger, cfg),
		newIndexShowCommand(cfg),
		newIndexListCommand(cfg),
		newIndexRemoveCommand(cfg),
	)
	return indexCmd
}

func openCatalog(cfg config.Config) (*traceindex.Catalog, error) {
	return traceindex.Open(cfg.IndexDir, cfg.IndexSync)
}

func newIndexAddCommand(logger logpkg.Logger, cfg config.Config) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add TRACE_FILE...",
		Short: "Scan traces and store their summaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			catalog, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer catalog.Close()
			for _, path := range args {
				s, err := traceindex.ScanFile(path)
				if err != nil {
					return fmt.Errorf("scanning %s: %w", path, err)
				}
				if err := catalog.Put(s); err != nil {
					return err
				}
				logger.Info("trace indexed",
					logpkg.Str("trace", s.Path),
					logpkg.Uint64("calls", s.Calls),
					logpkg.Uint64("frames", s.Frames),
				)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d calls, %d frames\n", s.Path, s.Calls, s.Frames)
			}
			return nil
		},
	}
	return addCmd
}

func newIndexShowCommand(cfg config.Config) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show TRACE_FILE",
		Short: "Print the stored summary for a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			catalog, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer catalog.Close()
			s, ok, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not indexed; run `apitrace index add %s`", args[0], args[0])
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
	return showCmd
}

func newIndexListCommand(cfg config.Config) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every indexed trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			catalog, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer catalog.Close()
			summaries, err := catalog.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range summaries {
				_, _ = fmt.Fprintf(out, "%s\t%d calls\t%d frames\t%s\n", s.Path, s.Calls, s.Frames, s.IndexedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	return listCmd
}

func newIndexRemoveCommand(cfg config.Config) *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove TRACE_FILE",
		Short: "Remove a trace from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			catalog, err := openCatalog(cfg)
			if err != nil {
				return err
			}
			defer catalog.Close()
			return catalog.Delete(args[0])
		},
	}
	return removeCmd
}
