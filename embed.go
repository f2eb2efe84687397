package nexusweb

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains the scripts shipped with the binary and served
// under /public: site.js drives the typewriter, the claims carousel and the
// navigation dropdowns.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// embeddedFiles lists the asset names below embedded/.
func embeddedFiles() []string {
	entries, err := fs.ReadDir(EmbeddedAssets, "embedded")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
