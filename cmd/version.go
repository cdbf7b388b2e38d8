package cmd

import (
	"github.com/spf13/cobra"

	"github.com/revu-cli/revu/internal/cmd/version"
)

// NewVersionCmd represents the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version.",
		Long:  `Print the application version with build/platform informations.`,
		Run: func(cmd *cobra.Command, args []string) {
			version.Print()
		},
	}
}
