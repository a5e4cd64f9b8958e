// Package resources embeds the HTML views.
package resources

import (
	"embed"
	"io/fs"
)

// Layout is the file every page is rendered inside.
const Layout = "layout.html"

//go:embed views/*.html
var embedded embed.FS

// Views is the template filesystem rooted at views/.
var Views fs.FS = mustSub(embedded, "views")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
