// Package todoapp carries the files compiled into the binary: the generated
// stylesheet and the HTML templates.
package todoapp

import "embed"

//go:embed static
var EmbeddedStatic embed.FS

//go:embed views/*.html
var EmbeddedViews embed.FS
