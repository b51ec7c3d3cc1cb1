// Package endnote parses EndNote XML and generic reference XML exports.
package endnote

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mrlokans/refhub/internal/entities"
	"github.com/mrlokans/refhub/internal/latex"
)

const NoRecordsWarning = "No reference records detected in XML file"

var pageRangePattern = regexp.MustCompile(`(\d+)-(\d+)`)

// Parser maps XML record elements to reference entries
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an XML export. Documents without any record yield a
// warning; the error is only set when the XML cannot be tokenized.
func (p *Parser) Parse(r io.Reader, opts entities.ConversionOptions) ([]*entities.ReferenceEntry, []string, error) {
	root, err := ParseTree(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	records := FindRecords(root)
	if len(records) == 0 {
		return nil, []string{NoRecordsWarning}, nil
	}

	var entries []*entities.ReferenceEntry
	for i, record := range records {
		if entry := mapRecord(record, i+1, opts); entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil, nil
}

func (p *Parser) ParseString(content string, opts entities.ConversionOptions) ([]*entities.ReferenceEntry, []string, error) {
	return p.Parse(strings.NewReader(content), opts)
}

func mapRecord(record *Node, position int, opts entities.ConversionOptions) *entities.ReferenceEntry {
	author := buildAuthors(record)
	year := lookup(record, false, "dates", "year")

	entry := entities.NewReferenceEntry(entities.CitationKey(author, year, position), deriveType(record))
	entry.Set(entities.FieldTitle, lookup(record, false, "titles", "title"))
	entry.Set(entities.FieldAuthor, author)
	entry.Set(entities.FieldYear, year)
	entry.Set(entities.FieldJournal, lookup(record, false, "periodical", "full-title"))
	entry.Set(entities.FieldBooktitle, lookup(record, false, "periodical", "abbr-1"))
	entry.Set(entities.FieldVolume, lookup(record, false, "volume"))
	entry.Set(entities.FieldNumber, lookup(record, false, "number"))
	entry.Set(entities.FieldPages, normalizePages(lookup(record, false, "pages")))
	entry.Set(entities.FieldDOI, lookup(record, false, "electronic-resource-num"))
	entry.Set(entities.FieldURL, lookup(record, false, "urls", "related-urls", "url"))
	if opts.IncludeAbstract {
		entry.Set(entities.FieldAbstract, lookup(record, false, "abstract"))
	}
	if opts.IncludeKeywords {
		entry.Set(entities.FieldKeywords, buildKeywords(record))
	}
	if opts.IncludeNotes {
		entry.Set(entities.FieldNote, lookup(record, false, "notes", "note"))
	}
	entry.Set(entities.FieldPublisher, lookup(record, true, "publisher"))
	entry.Set(entities.FieldAddress, lookup(record, true, "publisher", "city"))
	entry.Set(entities.FieldISBN, lookup(record, false, "isbn"))
	entry.Set(entities.FieldISSN, lookup(record, false, "issn"))

	if opts.EscapeLatex {
		entry.MapValues(latex.Escape)
	}

	if !entry.HasTitleOrAuthor() {
		return nil
	}
	return entry
}

// normalizePages rewrites the first "12-34" range as "12--34".
func normalizePages(pages string) string {
	loc := pageRangePattern.FindStringSubmatchIndex(pages)
	if loc == nil {
		return pages
	}
	return pages[:loc[0]] + pages[loc[2]:loc[3]] + "--" + pages[loc[4]:loc[5]] + pages[loc[1]:]
}
