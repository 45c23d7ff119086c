package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

type globalOptions struct {
	profile string
	store   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Status - daily quests, boss raids and the rank that comes with them",
		Long:          "Status tracks daily habits and multi-step goals, awards attribute XP, derives an E to S rank and enforces a daily penalty for missed quests.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "Profile id (overrides STATUS_PROFILE_ID)")
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "Store backend: memory|sqlite|redis|cassandra (overrides STATUS_STORE)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at the configured level instead of warnings only")

	cmd.AddCommand(
		newServeCmd(opts),
		newShowCmd(opts),
		newQuestCmd(opts),
		newRaidCmd(opts),
		newPenaltyCmd(opts),
		newCheckCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
