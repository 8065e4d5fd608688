// Package assets embeds static files shipped with the binaries.
package assets

import "embed"

var (
	//go:embed all:templates
	Templates embed.FS

	//go:embed common-passwords.txt
	CommonPasswords []byte
)
