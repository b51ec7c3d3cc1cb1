package conversion

import (
	"regexp"
	"strings"

	"github.com/mrlokans/refhub/internal/entities"
)

var (
	xmlTagPattern  = regexp.MustCompile(`(?i)</?(record|reference|xml)`)
	endNotePattern = regexp.MustCompile(`(?i)EndNote|xml/records`)
	risTypePattern = regexp.MustCompile(`(?m)^TY  -`)
	risEndPattern  = regexp.MustCompile(`(?m)^ER  -`)
)

// DetectFormat classifies raw export content. It is a heuristic: XML
// markers are checked first, then the RIS TY/ER pair.
func DetectFormat(content string) entities.SourceFormat {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "<?xml") || xmlTagPattern.MatchString(trimmed) {
		if endNotePattern.MatchString(trimmed) {
			return entities.FormatEndNote
		}
		return entities.FormatXML
	}

	if risTypePattern.MatchString(trimmed) && risEndPattern.MatchString(trimmed) {
		return entities.FormatRIS
	}

	return entities.FormatUnknown
}
