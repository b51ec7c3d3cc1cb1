package entities

// Entry types produced by the parsers. Anything unrecognised becomes misc.
const (
	EntryTypeArticle       = "article"
	EntryTypeBook          = "book"
	EntryTypeInProceedings = "inproceedings"
	EntryTypePhdThesis     = "phdthesis"
	EntryTypeTechReport    = "techreport"
	EntryTypeMisc          = "misc"
)

// Well-known BibTeX field names.
const (
	FieldTitle     = "title"
	FieldAuthor    = "author"
	FieldYear      = "year"
	FieldJournal   = "journal"
	FieldBooktitle = "booktitle"
	FieldVolume    = "volume"
	FieldNumber    = "number"
	FieldPages     = "pages"
	FieldDOI       = "doi"
	FieldURL       = "url"
	FieldAbstract  = "abstract"
	FieldKeywords  = "keywords"
	FieldNote      = "note"
	FieldPublisher = "publisher"
	FieldAddress   = "address"
	FieldISBN      = "isbn"
	FieldISSN      = "issn"
)

// Field is a single named value of a reference entry.
type Field struct {
	Name  string
	Value string
}

// ReferenceEntry is the normalized record shared by all parsers.
// Fields keep their insertion order, which is also the order they are
// serialized in.
type ReferenceEntry struct {
	ID     string
	Type   string
	fields []Field
}

// NewReferenceEntry creates an entry with the given citation key and type.
func NewReferenceEntry(id, entryType string) *ReferenceEntry {
	if entryType == "" {
		entryType = EntryTypeMisc
	}
	return &ReferenceEntry{ID: id, Type: entryType}
}

// Get returns the value of a field, or "" when absent.
func (e *ReferenceEntry) Get(name string) string {
	if i := e.index(name); i >= 0 {
		return e.fields[i].Value
	}
	return ""
}

// Has reports whether the field is present, even with an empty value.
func (e *ReferenceEntry) Has(name string) bool {
	return e.index(name) >= 0
}

// Set assigns a field. Existing fields keep their position.
// Empty values are not stored.
func (e *ReferenceEntry) Set(name, value string) {
	if value == "" {
		return
	}
	if i := e.index(name); i >= 0 {
		e.fields[i].Value = value
		return
	}
	e.fields = append(e.fields, Field{Name: name, Value: value})
}

// Delete removes a field if present.
func (e *ReferenceEntry) Delete(name string) {
	if i := e.index(name); i >= 0 {
		e.fields = append(e.fields[:i], e.fields[i+1:]...)
	}
}

// Rename moves a non-empty field to a new name at the end of the entry.
func (e *ReferenceEntry) Rename(from, to string) {
	value := e.Get(from)
	if value == "" {
		return
	}
	e.Delete(from)
	e.Delete(to)
	e.fields = append(e.fields, Field{Name: to, Value: value})
}

// Fields returns a copy of the fields in insertion order.
func (e *ReferenceEntry) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// MapValues replaces every field value with fn(value).
func (e *ReferenceEntry) MapValues(fn func(string) string) {
	for i := range e.fields {
		e.fields[i].Value = fn(e.fields[i].Value)
	}
}

// Clone returns a deep copy of the entry.
func (e *ReferenceEntry) Clone() *ReferenceEntry {
	return &ReferenceEntry{ID: e.ID, Type: e.Type, fields: e.Fields()}
}

func (e *ReferenceEntry) Title() string  { return e.Get(FieldTitle) }
func (e *ReferenceEntry) Author() string { return e.Get(FieldAuthor) }
func (e *ReferenceEntry) Year() string   { return e.Get(FieldYear) }

// HasTitleOrAuthor reports whether the entry passes the retention gate.
// Entries without both are dropped by the parsers.
func (e *ReferenceEntry) HasTitleOrAuthor() bool {
	return e.Title() != "" || e.Author() != ""
}

func (e *ReferenceEntry) index(name string) int {
	for i, f := range e.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
