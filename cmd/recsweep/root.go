package main

import (
	"github.com/spf13/cobra"

	"recsweep/internal/daemonrun"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var testFlag bool
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &testFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "recsweep [flags] <jobfile>",
		Short:         "Move or delete duplicate TV recordings",
		Long:          "recsweep polls the recordings directories named in a job file and moves or deletes\nrecordings of episodes already listed in the job's catalog once they have stopped growing.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return daemonrun.Run(cmd.Context(), cfg, args[0], daemonrun.Options{LogLevel: logLevelFlag})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&testFlag, "test", "t", false, "Dry run: log actions without moving or deleting files")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(newOnceCommand(ctx))
	rootCmd.AddCommand(newJobsCommand(ctx))
	rootCmd.AddCommand(newMatchCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
