// Package web holds the embedded task list page and its
// client script, served by the HTTP server next to the API.
package web

import "embed"

//go:embed index.html
var Index []byte

//go:embed static
var Assets embed.FS
