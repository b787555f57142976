package explorer

import (
	"path/filepath"
	"strings"
)

// languageByExtension maps file extensions to editor language ids.
var languageByExtension = map[string]string{
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"html": "html",
	"css":  "css",
	"json": "json",
	"py":   "python",
	"java": "java",
	"go":   "go",
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"bmp": true, "svg": true, "webp": true,
}

func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// LanguageFor returns the highlighting language for a file name,
// defaulting to plaintext for unknown extensions.
func LanguageFor(name string) string {
	if lang, ok := languageByExtension[extensionOf(name)]; ok {
		return lang
	}
	return "plaintext"
}

// IsImage reports whether the file name carries an image extension.
func IsImage(name string) bool {
	return imageExtensions[extensionOf(name)]
}
