// Package shipdata provides the embedded tile catalog, ship board outlines
// and loading of ship layout files.
package shipdata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
