// Package init exists solely to trigger provider registration via import
// side-effects. Import this package once in your main or cmd layer:
//
//	import _ "github.com/revu-cli/revu/internal/provider/init"
//
// This registers all built-in providers (gemini, openai) with the global
// provider.Registry.
package init

import (
	_ "github.com/revu-cli/revu/internal/provider/gemini"
	_ "github.com/revu-cli/revu/internal/provider/openai"
)
