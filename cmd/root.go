package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revu-cli/revu/internal/common"
	"github.com/revu-cli/revu/internal/config"
	"github.com/revu-cli/revu/internal/core"
	"github.com/revu-cli/revu/internal/locale"
	"github.com/revu-cli/revu/internal/provider"
	_ "github.com/revu-cli/revu/internal/provider/init"
	"github.com/revu-cli/revu/internal/session"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// NewRootCmd builds the root command. Running revu with no subcommand starts
// the review-and-commit flow on the current repository.
func NewRootCmd(conf config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "revu",
		Short: "Turn staged changes into an AI-reviewed commit.",
		Long: `revu collects your staged diff, asks an AI for a commit message and a
review, then lets you commit, edit the message, or insert the suggestions
as TODO comments before finalizing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd.Flags(), &conf)
			return runReview(cmd, conf)
		},
	}

	rootCmd.PersistentFlags().String("lang", "en", "output language (en, ko)")
	rootCmd.PersistentFlags().String("provider", "", "AI provider (gemini, openai)")
	rootCmd.PersistentFlags().String("model", "", "model name or tier (flash, pro)")
	rootCmd.PersistentFlags().Bool("debug", false, "verbose debug output")
	rootCmd.Flags().String("repo", ".", "path to the git repository")
	rootCmd.Flags().BoolP("yes", "y", false, "stage all changes without asking")

	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewAICmd(conf))
	rootCmd.AddCommand(NewManCmd(rootCmd))

	return rootCmd
}

// Execute runs the CLI. Exit codes: 0 for a commit or a user-initiated
// cancellation, 1 for any fatal failure.
func Execute() {
	conf := config.NewDefaultConfig()
	conf.Version = Version

	if err := NewRootCmd(conf).Execute(); err != nil {
		common.LogError(err.Error(), true, false, nil)
	}
}

func runReview(cmd *cobra.Command, conf config.Config) error {
	p, err := resolveProvider(conf)
	if err != nil {
		return err
	}

	// Credential check happens before any staging logic touches the index.
	if err := p.Validate(cmd.Context()); err != nil {
		var pe *provider.ProviderError
		if errors.As(err, &pe) && pe.Code == provider.ErrCodeAuthentication {
			return fmt.Errorf(locale.T(conf.Lang, "missing_api_key"), p.Info().KeyEnvVar)
		}
		return err
	}

	git := core.NewCLIGit(conf.RepoPath)
	sess := session.New(conf, git, p)

	outcome, err := sess.Run(cmd.Context())
	if outcome == session.OutcomeFailed {
		return err
	}
	return nil
}
