// Package conversion turns EndNote XML, generic reference XML and RIS
// exports into BibTeX or BibLaTeX text.
package conversion

import (
	"strings"
	"time"

	"github.com/mrlokans/refhub/internal/endnote"
	"github.com/mrlokans/refhub/internal/entities"
	"github.com/mrlokans/refhub/internal/exporters"
	"github.com/mrlokans/refhub/internal/ris"
)

const UnsupportedFormatWarning = "Unsupported format detected. Provide EndNote XML or RIS exports."

// Result is the outcome of one conversion run.
type Result struct {
	BibTeX         string                     `json:"bibtex"`
	EntryCount     int                        `json:"entryCount"`
	Warnings       []string                   `json:"warnings"`
	ProcessingTime int64                      `json:"processingTime"`
	Format         entities.SourceFormat      `json:"format"`
	Entries        []*entities.ReferenceEntry `json:"-"`
}

// Engine detects the input format and dispatches to the matching parser.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	risParser *ris.Parser
	xmlParser *endnote.Parser
}

func NewEngine() *Engine {
	return &Engine{
		risParser: ris.NewParser(),
		xmlParser: endnote.NewParser(),
	}
}

// Convert runs the whole pipeline. Problems that still allow a result are
// reported as warnings; only XML that cannot be tokenized returns an
// *XMLSyntaxError.
func (e *Engine) Convert(content string, opts entities.ConversionOptions) (Result, error) {
	start := time.Now()
	warnings := []string{}
	format := DetectFormat(content)

	var entries []*entities.ReferenceEntry
	switch format {
	case entities.FormatXML, entities.FormatEndNote:
		parsed, parseWarnings, err := e.xmlParser.Parse(strings.NewReader(content), opts)
		if err != nil {
			return Result{}, &XMLSyntaxError{Err: err}
		}
		entries = parsed
		warnings = append(warnings, parseWarnings...)
	case entities.FormatRIS:
		parsed, parseWarnings := e.risParser.ParseString(content, opts)
		entries = parsed
		warnings = append(warnings, parseWarnings...)
	default:
		warnings = append(warnings, UnsupportedFormatWarning)
	}

	result := Result{
		Warnings: warnings,
		Format:   format,
	}
	if len(entries) > 0 {
		result.BibTeX = exporters.FormatEntries(entries, opts.Style())
		result.EntryCount = len(entries)
		result.Entries = entries
	}
	result.ProcessingTime = time.Since(start).Milliseconds()
	return result, nil
}

var defaultEngine = NewEngine()

// Convert runs content through a shared Engine.
func Convert(content string, opts entities.ConversionOptions) (Result, error) {
	return defaultEngine.Convert(content, opts)
}
