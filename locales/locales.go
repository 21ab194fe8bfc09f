// Package locales embeds the default validation message catalogs.
package locales

import "embed"

//go:embed *.yaml
var FS embed.FS
