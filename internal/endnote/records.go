package endnote

import (
	"strings"

	"github.com/mrlokans/refhub/internal/entities"
)

// wrapperKeys are descended into, first match only, when looking for records.
var wrapperKeys = []string{"records", "xml", "database"}

// FindRecords locates the record nodes of a parsed document. A "record"
// child wins; otherwise the known wrapper elements are searched, then
// EndNote.records, and finally every child in document order.
func FindRecords(node *Node) []*Node {
	switch {
	case node == nil:
		return nil
	case node.IsList():
		var records []*Node
		for _, item := range node.Items {
			records = append(records, FindRecords(item)...)
		}
		return records
	case !node.IsObject():
		return nil
	}

	if record := node.Get("record"); record != nil {
		switch {
		case record.IsList():
			return objectsOnly(record.Items)
		case record.IsObject():
			return []*Node{record}
		}
	}

	for _, key := range wrapperKeys {
		if node.Has(key) {
			return FindRecords(node.Get(key))
		}
	}

	if endNote := node.Get("EndNote"); endNote.IsObject() && endNote.Has("records") {
		return FindRecords(endNote.Get("records"))
	}

	var records []*Node
	for _, child := range node.Values() {
		records = append(records, FindRecords(child)...)
	}
	return records
}

func objectsOnly(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsObject() {
			out = append(out, n)
		}
	}
	return out
}

// unwrapText resolves a field value, following EndNote's rich-text
// wrappers: {style: {#text}}, {style: "text"} and {#text}. Multiple style
// runs are joined with a space.
func unwrapText(n *Node) (string, bool) {
	switch {
	case n == nil:
		return "", false
	case n.IsText():
		return n.Text, true
	case !n.IsObject():
		return "", false
	}

	if style := n.Get("style"); style != nil {
		if style.IsList() {
			var runs []string
			for _, run := range style.Items {
				if text, ok := unwrapText(run); ok && text != "" {
					runs = append(runs, text)
				}
			}
			if len(runs) > 0 {
				return strings.Join(runs, " "), true
			}
		} else if text, ok := unwrapText(style); ok {
			return text, true
		}
	}

	if text := n.Get(textKey); text.IsText() {
		return text.Text, true
	}
	return "", false
}

// lookup walks path from record. A text value met before the end of the
// path is returned as is, so lookup(r, "publisher", "city") yields the
// publisher name when publisher has no sub-elements. With deep set, an
// object that does not unwrap has its text children joined with a space.
func lookup(record *Node, deep bool, path ...string) string {
	current := record
	for _, key := range path {
		if !current.IsObject() {
			if current.IsText() {
				return current.Text
			}
			return ""
		}
		current = current.Get(key)
		if current == nil {
			return ""
		}
	}

	if text, ok := unwrapText(current); ok {
		return text
	}

	if deep && current.IsObject() {
		var parts []string
		for _, child := range current.Values() {
			if child.IsText() && child.Text != "" {
				parts = append(parts, child.Text)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// collect gathers the texts of every child element named child under
// container. Containers may repeat, children may be single or repeated.
func collect(container *Node, child string) []string {
	var values []string
	appendText := func(n *Node) {
		if text, ok := unwrapText(n); ok {
			if text = strings.TrimSpace(text); text != "" {
				values = append(values, text)
			}
		}
	}

	var visit func(n *Node)
	visit = func(n *Node) {
		switch {
		case n == nil:
		case n.IsText():
			appendText(n)
		case n.IsList():
			for _, item := range n.Items {
				visit(item)
			}
		case n.Has(child):
			items := n.Get(child)
			if items.IsList() {
				for _, item := range items.Items {
					appendText(item)
				}
			} else {
				appendText(items)
			}
		default:
			appendText(n)
		}
	}

	visit(container)
	return values
}

func buildAuthors(record *Node) string {
	return entities.JoinAuthors(collect(record.Get("contributors").Get("authors"), "author"))
}

func buildKeywords(record *Node) string {
	return strings.Join(collect(record.Get("keywords"), "keyword"), ", ")
}

func deriveType(record *Node) string {
	name, ok := record.Get("ref-type").Attr("name")
	if !ok || name == "" {
		return entities.EntryTypeMisc
	}

	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "article"):
		return entities.EntryTypeArticle
	case strings.Contains(name, "book"):
		return entities.EntryTypeBook
	case strings.Contains(name, "conference"):
		return entities.EntryTypeInProceedings
	case strings.Contains(name, "thesis"):
		return entities.EntryTypePhdThesis
	case strings.Contains(name, "report"):
		return entities.EntryTypeTechReport
	default:
		return entities.EntryTypeMisc
	}
}
