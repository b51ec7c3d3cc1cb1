package utils

import (
	"path"
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*;]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// DefaultBibBasename is used when no usable source name is available.
const DefaultBibBasename = "references"

// SanitizeFilename makes a name safe for use on disk and in a
// Content-Disposition header. Empty results fall back to DefaultBibBasename.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	// No hidden files
	filename = strings.TrimLeft(filename, ".")

	// Limit length (most filesystems support 255, but leave room for extension)
	if len(filename) > 200 {
		filename = strings.TrimSpace(filename[:200])
	}

	if filename == "" {
		filename = DefaultBibBasename
	}

	return filename
}

// KnownReferenceExtensions contains extensions of reference manager exports
var KnownReferenceExtensions = []string{
	".xml",
	".ris",
	".enw",
	".txt",
	".bib",
}

// BibFilename derives a download name for converted output from the
// uploaded file name: "library.xml" becomes "library.bib".
func BibFilename(sourceName string) string {
	name := path.Base(strings.ReplaceAll(sourceName, `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}

	lower := strings.ToLower(name)
	for _, ext := range KnownReferenceExtensions {
		if strings.HasSuffix(lower, ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}

	return SanitizeFilename(name) + ".bib"
}
