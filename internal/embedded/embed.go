package embedded

import (
	"embed"
	"io/fs"
)

// CatalogFile is the path of the bundled catalog document inside FS.
const CatalogFile = "data/ebooks.json"

// FS embeds the bundled catalog and the public site served at the root path.
//
//go:embed data/* public/*
var FS embed.FS

// Public returns the static site rooted at the public directory.
func Public() (fs.FS, error) {
	return fs.Sub(FS, "public")
}
