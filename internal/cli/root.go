package cli

import (
	"context"
	"untile/internal/logging"

	"github.com/spf13/cobra"
)

type app struct {
	cpuProfile    string
	memProfileDir string
	profiler      *profiler
}

// Execute runs the command line with the supplied arguments, profilers are stopped even when the command fails
func Execute(ctx context.Context, args []string) error {
	a := &app{}
	rootCmd := a.rootCommand()
	rootCmd.SetArgs(args)
	defer a.stopProfiling()
	return rootCmd.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "untile",
		Short:         "Reassembles images whose tiles were shuffled with a seed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			a.profiler, err = startProfiling(a.cpuProfile, a.memProfileDir)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cpuProfile, "cpu-profile", "", "Dump CPU profile into the supplied file")
	rootCmd.PersistentFlags().StringVar(&a.memProfileDir, "mem-profile-dir", "", "Dump memory profiles into the supplied directory")

	rootCmd.AddCommand(ImageCommands(), SeedCommand(), ServeAppCommand())
	return rootCmd
}

func (a *app) stopProfiling() {
	if a.profiler != nil {
		if err := a.profiler.Stop(); err != nil {
			logging.BuildLogger().WithError(err).Error("Error stopping profilers")
		}
	}
}
