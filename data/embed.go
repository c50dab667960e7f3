// Package data bundles the baseline word lists shipped with the binary.
package data

import "embed"

// Baseline holds library.properties (primary list) and duplicates.properties
// (additional meanings for keys already in the primary list).
//
//go:embed library.properties duplicates.properties
var Baseline embed.FS
