// Package web embeds the planner page template and its css/js assets.
package web

import (
	"embed"
	"io/fs"
)

var (
	//go:embed templates/index.html
	templatesFS embed.FS

	//go:embed static/css static/js
	staticFS embed.FS
)

// GetTemplatesFS returns the page templates rooted at templates/
func GetTemplatesFS() fs.FS {
	return mustSub(templatesFS, "templates")
}

// GetStaticFS returns the assets served under /static/
func GetStaticFS() fs.FS {
	return mustSub(staticFS, "static")
}

// mustSub panics only if dir is not a valid path, which the embed patterns
// above rule out.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
