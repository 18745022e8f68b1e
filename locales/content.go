// Package locales embeds the translated strings of the view page (en, pt-BR).
package locales

import "embed"

//go:embed en.yaml
//go:embed pt-BR.yaml

// Content holds one YAML file per locale, keyed by the locale code.
var Content embed.FS
