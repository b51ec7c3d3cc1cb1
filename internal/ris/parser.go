// Package ris parses RIS bibliographic exports into reference entries.
package ris

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mrlokans/refhub/internal/entities"
	"github.com/mrlokans/refhub/internal/latex"
)

const (
	tagType      = "TY"
	endOfRecord  = "ER  -"
	maxLineBytes = 10 * 1024 * 1024
)

// fieldPattern matches "AU  - Smith, J." style lines.
var fieldPattern = regexp.MustCompile(`^([A-Z0-9]{2})  -\s?(.*)$`)

type tagMapping struct {
	tag   string
	field string
}

// tagTable is applied in order; a later tag mapped to the same field
// overwrites an earlier one (T1 wins over TI, JF over JO, Y1 over PY).
var tagTable = []tagMapping{
	{"TI", entities.FieldTitle},
	{"T1", entities.FieldTitle},
	{"T2", entities.FieldBooktitle},
	{"T3", entities.FieldJournal},
	{"JO", entities.FieldJournal},
	{"JF", entities.FieldJournal},
	{"AU", entities.FieldAuthor},
	{"A1", entities.FieldAuthor},
	{"PY", entities.FieldYear},
	{"Y1", entities.FieldYear},
	{"VL", entities.FieldVolume},
	{"IS", entities.FieldNumber},
	{"SP", entities.FieldPages},
	{"EP", entities.FieldPages},
	{"SN", entities.FieldISSN},
	{"DO", entities.FieldDOI},
	{"UR", entities.FieldURL},
	{"AB", entities.FieldAbstract},
	{"KW", entities.FieldKeywords},
	{"N1", entities.FieldNote},
	{"PB", entities.FieldPublisher},
	{"CY", entities.FieldAddress},
}

// record collects the raw values of one RIS record, keyed by tag.
type record map[string][]string

func (r record) first(tag string) string {
	if values := r[tag]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Parser parses the RIS tagged format
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads RIS records from r. Advisory problems are returned as
// warnings; the error is only set when reading r fails, in which case the
// entries parsed up to the failure are still returned.
func (p *Parser) Parse(r io.Reader, opts entities.ConversionOptions) ([]*entities.ReferenceEntry, []string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		entries  []*entities.ReferenceEntry
		warnings []string
		current  record
		position int
	)

	flush := func() {
		if current == nil {
			return
		}
		position++
		if entry := mapRecord(current, position, opts); entry != nil {
			entries = append(entries, entry)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, endOfRecord) {
			flush()
			continue
		}

		matches := fieldPattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		tag, value := matches[1], matches[2]

		if tag == tagType {
			// A TY without a preceding ER force-closes the open record.
			flush()
			current = record{tagType: {value}}
			continue
		}

		if current == nil {
			warnings = append(warnings, fmt.Sprintf("Encountered RIS field %s before TY tag; skipping line: %q", tag, line))
			continue
		}

		current[tag] = append(current[tag], value)
	}

	// Records read before a scanner failure are kept.
	flush()
	if err := scanner.Err(); err != nil {
		return entries, warnings, fmt.Errorf("error reading RIS content: %w", err)
	}
	return entries, warnings, nil
}

// ParseString parses in-memory RIS content. Reading a string cannot fail
// except for lines longer than the scanner limit, which end the parse early.
func (p *Parser) ParseString(content string, opts entities.ConversionOptions) ([]*entities.ReferenceEntry, []string) {
	entries, warnings, err := p.Parse(strings.NewReader(content), opts)
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	return entries, warnings
}

func mapRecord(rec record, position int, opts entities.ConversionOptions) *entities.ReferenceEntry {
	author := rec.first("AU")
	if author == "" {
		author = rec.first("A1")
	}
	year := rec.first("PY")
	if year == "" {
		year = rec.first("Y1")
	}

	entry := entities.NewReferenceEntry(
		entities.CitationKey(author, year, position),
		normalizeType(rec.first(tagType)),
	)

	for _, m := range tagTable {
		values := rec[m.tag]
		if len(values) == 0 {
			continue
		}

		switch m.field {
		case entities.FieldAuthor:
			entry.Set(m.field, entities.JoinAuthors(values))
			continue
		case entities.FieldPages:
			start, end := rec.first("SP"), rec.first("EP")
			if start != "" && end != "" {
				entry.Set(m.field, start+"--"+end)
			} else {
				entry.Set(m.field, values[0])
			}
			continue
		case entities.FieldKeywords:
			if !opts.IncludeKeywords {
				continue
			}
		case entities.FieldAbstract:
			if !opts.IncludeAbstract {
				continue
			}
		case entities.FieldNote:
			if !opts.IncludeNotes {
				continue
			}
		}

		entry.Set(m.field, values[0])
	}

	if opts.EscapeLatex {
		entry.MapValues(latex.Escape)
	}

	if !entry.HasTitleOrAuthor() {
		return nil
	}
	return entry
}

func normalizeType(risType string) string {
	if risType == "" {
		return entities.EntryTypeMisc
	}
	normalized := strings.ToLower(risType)
	switch {
	case strings.Contains(normalized, "jour"), normalized == "jfull":
		return entities.EntryTypeArticle
	case strings.Contains(normalized, "book"):
		return entities.EntryTypeBook
	case strings.Contains(normalized, "thesis"):
		return entities.EntryTypePhdThesis
	case strings.Contains(normalized, "conf"), strings.Contains(normalized, "proc"):
		return entities.EntryTypeInProceedings
	default:
		return entities.EntryTypeMisc
	}
}
