package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

type CitationStyle string

const (
	CitationStyleBibTeX   CitationStyle = "bibtex"
	CitationStyleBibLaTeX CitationStyle = "biblatex"
	CitationStyleACM      CitationStyle = "acm"
)

// ErrUnsupportedStyle is returned by Validate for unknown citation styles.
var ErrUnsupportedStyle = errors.New("unsupported citation style")

type SourceFormat string

const (
	FormatXML     SourceFormat = "xml"
	FormatRIS     SourceFormat = "ris"
	FormatEndNote SourceFormat = "endnote"
	FormatUnknown SourceFormat = "unknown"
)

// ConversionOptions controls which fields are emitted and how.
type ConversionOptions struct {
	IncludeAbstract    bool          `json:"includeAbstract"`
	IncludeKeywords    bool          `json:"includeKeywords"`
	IncludeNotes       bool          `json:"includeNotes"`
	EscapeLatex        bool          `json:"escapeLatex"`
	PreserveFormatting bool          `json:"preserveFormatting"`
	CustomFields       []string      `json:"customFields,omitempty"`
	CitationStyle      CitationStyle `json:"citationStyle"`
	SuppressWarnings   bool          `json:"suppressWarnings"`
}

// DefaultOptions returns the options used when a caller supplies none.
func DefaultOptions() ConversionOptions {
	return ConversionOptions{
		IncludeKeywords: true,
		EscapeLatex:     true,
		CitationStyle:   CitationStyleBibTeX,
	}
}

// UnmarshalJSON decodes a partial options object on top of DefaultOptions.
func (o *ConversionOptions) UnmarshalJSON(data []byte) error {
	type plain ConversionOptions
	opts := plain(DefaultOptions())
	if err := json.Unmarshal(data, &opts); err != nil {
		return err
	}
	*o = ConversionOptions(opts)
	return nil
}

// Style returns the citation style, falling back to bibtex.
func (o ConversionOptions) Style() CitationStyle {
	if o.CitationStyle == "" {
		return CitationStyleBibTeX
	}
	return o.CitationStyle
}

// Validate checks option values that cannot be defaulted.
func (o ConversionOptions) Validate() error {
	switch o.Style() {
	case CitationStyleBibTeX, CitationStyleBibLaTeX, CitationStyleACM:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedStyle, o.CitationStyle)
	}
}
