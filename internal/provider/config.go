package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ProviderConfig holds the resolved configuration for instantiating a
// provider so the CLI layer does not need to know about config paths.
type ProviderConfig struct {
	// Name is the provider name as it appears in the registry.
	Name string

	// Viper is a sub-tree scoped to the provider's config block.
	Viper *viper.Viper
}

// ConfigKeyProvider is the config key that holds the active provider name.
const ConfigKeyProvider = "provider"

// ResolveProvider reads the active provider name and its config block from
// the config store. The lookup order is:
//
//  1. --provider CLI flag (already set on the store)
//  2. REVU_PROVIDER environment variable
//  3. "provider" key in the config file (~/.config/revu/config.yml)
//  4. Fallback to "gemini"
//
// The returned ProviderConfig.Viper is scoped to the provider's subtree:
//
//	providers:
//	  gemini:
//	    api_key: ...
//	    model: gemini-1.5-flash
func ResolveProvider(v *viper.Viper) ProviderConfig {
	name := v.GetString(ConfigKeyProvider)
	if name == "" {
		name = os.Getenv("REVU_PROVIDER")
	}
	if name == "" {
		name = "gemini"
	}
	name = strings.ToLower(strings.TrimSpace(name))

	sub := v.Sub(fmt.Sprintf("providers.%s", name))
	if sub == nil {
		// No config file entry; an empty viper so env-var and flag bindings
		// still work.
		sub = viper.New()
	}

	BindProviderEnvDefaults(name, sub)

	return ProviderConfig{Name: name, Viper: sub}
}

// BindProviderEnvDefaults sets up well-known environment variables and model
// defaults for each provider so revu can be configured entirely through the
// shell.
func BindProviderEnvDefaults(name string, v *viper.Viper) {
	switch name {
	case "gemini":
		v.SetDefault("model", "gemini-1.5-flash")
		v.SetDefault("base_url", "https://generativelanguage.googleapis.com/v1beta")
		overrideFromEnv(v, "api_key", "GEMINI_API_KEY")
		overrideFromEnv(v, "model", "GEMINI_MODEL")
		overrideFromEnv(v, "base_url", "GEMINI_API_BASE")
	case "openai":
		v.SetDefault("model", "gpt-4o-mini")
		v.SetDefault("base_url", "https://api.openai.com/v1")
		overrideFromEnv(v, "api_key", "OPENAI_API_KEY")
		overrideFromEnv(v, "model", "OPENAI_API_MODEL")
		overrideFromEnv(v, "base_url", "OPENAI_API_BASE")
	}
}

// overrideFromEnv sets key from the environment variable when it is present,
// taking precedence over file-based config.
func overrideFromEnv(v *viper.Viper, key, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		v.Set(key, val)
	}
}
