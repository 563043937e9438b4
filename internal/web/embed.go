// Package web embeds the static pages served in development.
package web

import (
	"embed"
	"io/fs"
)

//go:embed *.html
var files embed.FS

// FS exposes the embedded pages to the HTTP handlers.
var FS fs.FS = files
