package endnote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, doc string) *Node {
	t.Helper()
	root, err := ParseTree(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func TestParseTree_TextElementsCollapse(t *testing.T) {
	root := parseTree(t, `<?xml version="1.0"?><dates><year> 2020 </year><empty/></dates>`)

	dates := root.Get("dates")
	require.True(t, dates.IsObject())
	assert.Equal(t, []string{"year", "empty"}, dates.Keys())
	assert.True(t, dates.Get("year").IsText())
	assert.Equal(t, "2020", dates.Get("year").Text)
	assert.Equal(t, "", dates.Get("empty").Text)
}

func TestParseTree_RepeatedElementsBecomeList(t *testing.T) {
	root := parseTree(t, `<authors><author>A</author><author>B</author><author>C</author></authors>`)

	authors := root.Get("authors").Get("author")
	require.True(t, authors.IsList())
	require.Len(t, authors.Items, 3)
	assert.Equal(t, "C", authors.Items[2].Text)
}

func TestParseTree_AttributesAndText(t *testing.T) {
	root := parseTree(t, `<ref-type name="Journal Article">17</ref-type>`)

	refType := root.Get("ref-type")
	require.True(t, refType.IsObject())
	name, ok := refType.Attr("name")
	assert.True(t, ok)
	assert.Equal(t, "Journal Article", name)
	assert.Equal(t, "17", refType.Get("#text").Text)
	assert.Equal(t, []string{"@_name", "#text"}, refType.Keys())
}

func TestParseTree_MixedContent(t *testing.T) {
	root := parseTree(t, `<publisher>Test Press <city>Berlin</city></publisher>`)

	publisher := root.Get("publisher")
	require.True(t, publisher.IsObject())
	assert.Equal(t, "Test Press", publisher.Get("#text").Text)
	assert.Equal(t, "Berlin", publisher.Get("city").Text)
}

func TestParseTree_Entities(t *testing.T) {
	root := parseTree(t, `<title>Caf&eacute; &amp; Co &lt;3</title>`)
	assert.Equal(t, "Café & Co <3", root.Get("title").Text)
}

func TestParseTree_CDATA(t *testing.T) {
	root := parseTree(t, `<abstract><![CDATA[a < b & c]]></abstract>`)
	assert.Equal(t, "a < b & c", root.Get("abstract").Text)
}

func TestParseTree_Malformed(t *testing.T) {
	for _, doc := range []string{
		`<xml><record><title>x</record></xml>`,
		`<xml><record>`,
		`<xml attr="unterminated></xml>`,
	} {
		_, err := ParseTree(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestNode_NilSafeAccessors(t *testing.T) {
	var missing *Node
	assert.Nil(t, missing.Get("anything"))
	assert.False(t, missing.Has("anything"))
	assert.Nil(t, missing.Keys())
	_, ok := missing.Attr("name")
	assert.False(t, ok)
}
