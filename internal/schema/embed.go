package schema

import "embed"

// files holds the embedded schema documents.
//
//go:embed *.schema.json
var files embed.FS
