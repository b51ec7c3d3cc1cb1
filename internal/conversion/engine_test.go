package conversion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/refhub/internal/entities"
)

const minimalRIS = "TY  - JOUR\nAU  - Smith, J.\nTI  - A Title\nPY  - 2020\nSP  - 1\nEP  - 10\nER  -"

const risWithAbstracts = `TY  - JOUR
AU  - Doe, A.
AU  - Roe, B.
TI  - First
JO  - Journal of Things
CY  - Paris
AB  - First abstract
PY  - 2019
ER  -
TY  - BOOK
AU  - Lee, K.
TI  - Second
AB  - Second abstract
ER  -`

const endNoteXML = `<?xml version="1.0" encoding="UTF-8"?>
<xml><records>
<record>
  <source-app name="EndNote" version="20.0">EndNote</source-app>
  <ref-type name="Journal Article">17</ref-type>
  <contributors><authors><author><style>Smith, John</style></author></authors></contributors>
  <titles><title><style>Graph Theory</style></title></titles>
  <pages>45-67</pages>
  <dates><year>2021</year></dates>
  <abstract>About graphs</abstract>
</record>
<record>
  <dates><year>2020</year></dates>
</record>
</records></xml>`

func TestConvert_RISRoundTrip(t *testing.T) {
	result, err := Convert(minimalRIS, entities.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, result.EntryCount)
	assert.Equal(t, entities.FormatRIS, result.Format)
	assert.Contains(t, result.BibTeX, "@article{smith20201,")
	assert.Contains(t, result.BibTeX, "  pages = {1--10}")
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, result.Warnings)
	assert.GreaterOrEqual(t, result.ProcessingTime, int64(0))
}

func TestConvert_UnknownFormat(t *testing.T) {
	result, err := Convert("hello world", entities.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, result.EntryCount)
	assert.Equal(t, "", result.BibTeX)
	assert.Equal(t, entities.FormatUnknown, result.Format)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Unsupported format")
}

func TestConvert_TitleAuthorGate(t *testing.T) {
	t.Run("ris", func(t *testing.T) {
		result, err := Convert("TY  - JOUR\nPY  - 2020\nER  -", entities.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 0, result.EntryCount)
		assert.Equal(t, "", result.BibTeX)
	})

	t.Run("xml", func(t *testing.T) {
		result, err := Convert(endNoteXML, entities.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 1, result.EntryCount)
		assert.NotContains(t, result.BibTeX, "year = {2020}")
	})
}

func TestConvert_AbstractToggleOnlyChangesAbstract(t *testing.T) {
	for _, content := range []string{risWithAbstracts, endNoteXML} {
		without, err := Convert(content, entities.DefaultOptions())
		require.NoError(t, err)

		opts := entities.DefaultOptions()
		opts.IncludeAbstract = true
		with, err := Convert(content, opts)
		require.NoError(t, err)

		assert.Contains(t, with.BibTeX, "abstract = {")
		assert.NotContains(t, without.BibTeX, "abstract = {")
		assert.Equal(t, without.BibTeX, dropLines(with.BibTeX, "  abstract = {"))
	}
}

// dropLines removes lines with prefix and repairs the trailing comma of the
// line before a removed last field.
func dropLines(bibtex, prefix string) string {
	lines := strings.Split(bibtex, "\n")
	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			continue
		}
		if line == "}" && len(kept) > 0 {
			kept[len(kept)-1] = strings.TrimSuffix(kept[len(kept)-1], ",")
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func TestConvert_BibLaTeXRenames(t *testing.T) {
	opts := entities.DefaultOptions()
	opts.CitationStyle = entities.CitationStyleBibLaTeX

	result, err := Convert(risWithAbstracts, opts)
	require.NoError(t, err)

	assert.Contains(t, result.BibTeX, "journaltitle = {Journal of Things}")
	assert.Contains(t, result.BibTeX, "location = {Paris}")
	assert.NotContains(t, result.BibTeX, "journal =")
	assert.NotContains(t, result.BibTeX, "address =")
}

func TestConvert_MultiAuthorJoin(t *testing.T) {
	result, err := Convert(risWithAbstracts, entities.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, result.EntryCount)
	assert.Contains(t, result.BibTeX, "author = {Doe, A. and Roe, B.}")
	assert.Contains(t, result.BibTeX, "}\n\n@book{lee002,")
}

func TestConvert_XMLPagesNormalized(t *testing.T) {
	result, err := Convert(endNoteXML, entities.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, entities.FormatEndNote, result.Format)
	assert.Contains(t, result.BibTeX, "@article{smith20211,")
	assert.Contains(t, result.BibTeX, "pages = {45--67}")
}

func TestConvert_XMLWithoutRecords(t *testing.T) {
	result, err := Convert(`<?xml version="1.0"?><library><reference>x</reference></library>`, entities.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, entities.FormatXML, result.Format)
	assert.Equal(t, 0, result.EntryCount)
	assert.Equal(t, []string{"No reference records detected in XML file"}, result.Warnings)
}

func TestConvert_MalformedXML(t *testing.T) {
	_, err := Convert(`<?xml version="1.0"?><xml><records><record><titles>`, entities.DefaultOptions())
	require.Error(t, err)

	var syntaxErr *XMLSyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Contains(t, err.Error(), "invalid XML content")
}

func TestConvert_RISWarningsSurface(t *testing.T) {
	result, err := Convert("AU  - Early, A.\n"+minimalRIS, entities.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, result.EntryCount)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "before TY tag")
}

func TestConvert_ConcurrentCalls(t *testing.T) {
	engine := NewEngine()
	done := make(chan Result, 8)
	for i := 0; i < 8; i++ {
		go func() {
			result, _ := engine.Convert(risWithAbstracts, entities.DefaultOptions())
			done <- result
		}()
	}
	for i := 0; i < 8; i++ {
		result := <-done
		assert.Equal(t, 2, result.EntryCount)
	}
}

func TestValidateContent(t *testing.T) {
	assert.ErrorIs(t, ValidateContent("", 0), ErrEmptyContent)
	assert.ErrorIs(t, ValidateContent(" \n\t", 0), ErrEmptyContent)
	assert.ErrorIs(t, ValidateContent("TY  - JOUR", 4), ErrContentTooLarge)
	assert.NoError(t, ValidateContent("TY  - JOUR", 0))
	assert.NoError(t, ValidateContent("TY  - JOUR", 100))
}
