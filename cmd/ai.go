package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/revu-cli/revu/internal/common"
	"github.com/revu-cli/revu/internal/config"
	"github.com/revu-cli/revu/internal/provider"
)

// NewAICmd groups the provider introspection subcommands.
func NewAICmd(conf config.Config) *cobra.Command {
	aiCmd := &cobra.Command{
		Use:   "ai",
		Short: "Manage AI providers",
	}

	aiCmd.AddCommand(newAIListCmd())
	aiCmd.AddCommand(newAIShowCmd(conf))
	return aiCmd
}

func newAIListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available AI providers",
		Run: func(cmd *cobra.Command, args []string) {
			names := provider.Names()
			common.LogInfo("Available providers:")
			for _, name := range names {
				v := viper.New()
				provider.BindProviderEnvDefaults(name, v)
				p, err := provider.Get(name, v)
				if err != nil {
					fmt.Printf("  - %-15s (not configured)\n", name)
					continue
				}
				info := p.Info()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				status := "configured"
				if err := p.Validate(ctx); err != nil {
					status = "missing credentials"
				}
				cancel()
				fmt.Printf("  - %-15s %s [%s] (default model: %s)\n",
					info.Name, info.DisplayName, status, info.DefaultModel)
			}
		},
	}
}

func newAIShowCmd(conf config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current AI provider and model",
		Run: func(cmd *cobra.Command, args []string) {
			applyFlags(cmd.Flags(), &conf)

			p, err := resolveProvider(conf)
			if err != nil {
				common.LogError(fmt.Sprintf("Error: %v", err), true, false, nil)
			}

			info := p.Info()
			fmt.Printf("Provider: %s (%s)\n", info.Name, info.DisplayName)
			fmt.Printf("Model:    %s\n", info.DefaultModel)
			fmt.Printf("Key env:  %s\n", info.KeyEnvVar)
		},
	}
}
