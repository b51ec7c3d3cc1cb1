// Package latex protects LaTeX special characters in BibTeX field values.
package latex

import "strings"

// replacer walks the input once, so backslashes produced by one
// replacement are never escaped again by the backslash rule.
var replacer = strings.NewReplacer(
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
	`\`, `\textbackslash{}`,
	"<", `\textless{}`,
	">", `\textgreater{}`,
)

// Escape returns s with every LaTeX special character escaped.
// Escaping is not idempotent: Escape(Escape(s)) escapes the inserted backslashes.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return replacer.Replace(s)
}
