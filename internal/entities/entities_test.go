package entities

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceEntry_FieldOrder(t *testing.T) {
	entry := NewReferenceEntry("doe20201", "")
	assert.Equal(t, EntryTypeMisc, entry.Type)

	entry.Set(FieldTitle, "First")
	entry.Set(FieldAuthor, "Doe, A.")
	entry.Set(FieldJournal, "Nature")
	entry.Set(FieldTitle, "Second")
	entry.Set(FieldYear, "")

	fields := entry.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, Field{Name: FieldTitle, Value: "Second"}, fields[0])
	assert.Equal(t, FieldAuthor, fields[1].Name)
	assert.Equal(t, FieldJournal, fields[2].Name)
	assert.False(t, entry.Has(FieldYear))
}

func TestReferenceEntry_Rename(t *testing.T) {
	entry := NewReferenceEntry("x", EntryTypeArticle)
	entry.Set(FieldJournal, "Nature")
	entry.Set(FieldTitle, "T")

	entry.Rename(FieldJournal, "journaltitle")
	entry.Rename(FieldAddress, "location")

	fields := entry.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, FieldTitle, fields[0].Name)
	assert.Equal(t, Field{Name: "journaltitle", Value: "Nature"}, fields[1])
	assert.False(t, entry.Has("location"))
}

func TestReferenceEntry_Gate(t *testing.T) {
	entry := NewReferenceEntry("x", EntryTypeMisc)
	entry.Set(FieldYear, "2020")
	assert.False(t, entry.HasTitleOrAuthor())

	entry.Set(FieldAuthor, "Roe, B.")
	assert.True(t, entry.HasTitleOrAuthor())
}

func TestReferenceEntry_CloneIsIndependent(t *testing.T) {
	entry := NewReferenceEntry("x", EntryTypeMisc)
	entry.Set(FieldTitle, "Original")

	clone := entry.Clone()
	clone.Set(FieldTitle, "Changed")

	assert.Equal(t, "Original", entry.Title())
	assert.Equal(t, "Changed", clone.Title())
}

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name     string
		author   string
		year     string
		position int
		want     string
	}{
		{"last comma first", "Smith, J.", "2020", 1, "smith20201"},
		{"surname then initial", "Smith J", "2020", 3, "smith20203"},
		{"first last", "Jane Doe", "1999", 2, "doe19992"},
		{"joined authors use the first", "Doe, A. and Roe, B.", "2021", 1, "doe20211"},
		{"missing year", "Smith, J.", "", 4, "smith004"},
		{"missing author", "", "2020", 1, "ref20201"},
		{"non ascii letters dropped", "Müller, K.", "2018", 1, "mller20181"},
		{"hyphenated surname", "Lloyd-Jones, M.", "2010", 7, "lloydjones20107"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CitationKey(tt.author, tt.year, tt.position))
		})
	}
}

func TestConversionOptions_UnmarshalDefaults(t *testing.T) {
	var opts ConversionOptions
	require.NoError(t, json.Unmarshal([]byte(`{"includeAbstract": true}`), &opts))

	assert.True(t, opts.IncludeAbstract)
	assert.True(t, opts.IncludeKeywords)
	assert.True(t, opts.EscapeLatex)
	assert.False(t, opts.IncludeNotes)
	assert.Equal(t, CitationStyleBibTeX, opts.Style())

	require.NoError(t, json.Unmarshal([]byte(`{"escapeLatex": false, "citationStyle": "biblatex"}`), &opts))
	assert.False(t, opts.EscapeLatex)
	assert.False(t, opts.IncludeAbstract)
	assert.Equal(t, CitationStyleBibLaTeX, opts.Style())
}

func TestConversionOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.NoError(t, ConversionOptions{}.Validate())
	assert.NoError(t, ConversionOptions{CitationStyle: CitationStyleACM}.Validate())

	err := ConversionOptions{CitationStyle: "chicago"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedStyle))
}
