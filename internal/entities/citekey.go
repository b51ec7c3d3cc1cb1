package entities

import (
	"strconv"
	"strings"
)

// authorSeparator joins multiple authors in a BibTeX author field.
const authorSeparator = " and "

// CitationKey builds a key from the first author's surname, the year
// ("00" when unknown) and the 1-based position of the record in its file.
//
//	CitationKey("Smith, J.", "2020", 1) == "smith20201"
//	CitationKey("Smith J", "2020", 3)   == "smith20203"
func CitationKey(author, year string, position int) string {
	base := "ref"
	if author != "" {
		base = strings.ToLower(asciiLetters(surname(author)))
	}
	if year == "" {
		year = "00"
	}
	return base + year + strconv.Itoa(position)
}

// surname picks the family name of the first author. "Last, First" names
// use the part before the comma; otherwise the last token that is not a
// bare initial wins.
func surname(author string) string {
	first, _, _ := strings.Cut(author, authorSeparator)
	if last, _, ok := strings.Cut(first, ","); ok && strings.TrimSpace(last) != "" {
		return last
	}

	tokens := strings.Fields(first)
	if len(tokens) == 0 {
		return ""
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if len(asciiLetters(tokens[i])) > 1 {
			return tokens[i]
		}
	}
	return tokens[len(tokens)-1]
}

func asciiLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// JoinAuthors joins author names with the BibTeX " and " separator.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, authorSeparator)
}
