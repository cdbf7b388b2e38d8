package cmd

import (
	"github.com/spf13/pflag"

	"github.com/revu-cli/revu/internal/config"
	"github.com/revu-cli/revu/internal/locale"
	"github.com/revu-cli/revu/internal/provider"
)

// applyFlags copies the parsed CLI flags onto the config value so everything
// downstream reads a single source of truth.
func applyFlags(flags *pflag.FlagSet, conf *config.Config) {
	if lang, err := flags.GetString("lang"); err == nil && lang != "" {
		conf.Lang = locale.ParseLang(lang)
	}
	if prov, err := flags.GetString("provider"); err == nil && prov != "" {
		conf.Provider = prov
	}
	if model, err := flags.GetString("model"); err == nil && model != "" {
		conf.Model = model
	}
	if debug, err := flags.GetBool("debug"); err == nil && debug {
		conf.Debug = true
	}
	if repo, err := flags.GetString("repo"); err == nil && repo != "" {
		conf.RepoPath = repo
	}
	if yes, err := flags.GetBool("yes"); err == nil && yes {
		conf.AutoStage = true
	}
}

// resolveProvider creates an AIProvider from the current config.
func resolveProvider(conf config.Config) (provider.AIProvider, error) {
	// The --provider flag wins over REVU_PROVIDER and the config file.
	if conf.Provider != "" {
		conf.Viper.Set(provider.ConfigKeyProvider, conf.Provider)
	}

	pcfg := provider.ResolveProvider(conf.Viper)

	// Override model from CLI
	if conf.Model != "" {
		pcfg.Viper.Set("model", conf.Model)
	}

	return provider.Get(pcfg.Name, pcfg.Viper)
}
