// Package views embeds the HTML templates.
package views

import "embed"

//go:embed layouts partials *.html
var FS embed.FS
