// Package appfs exposes the app's embedded static files:
// DB migrations and email templates.
package appfs

import "embed"

//go:embed migrations assets
var FS embed.FS
