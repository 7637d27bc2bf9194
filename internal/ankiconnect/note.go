package ankiconnect

// Field is a single named text value on a note, with its display order.
type Field struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Note is a flashcard record as returned by the notesInfo action. Notes are
// owned by Anki; this program only reads them and writes back individual
// field values and tag changes.
type Note struct {
	ID        int64            `json:"noteId"`
	ModelName string           `json:"modelName"`
	Tags      []string         `json:"tags"`
	Fields    map[string]Field `json:"fields"`
}

// FieldValue returns the text of the named field, or "" if the note has no
// such field.
func (n *Note) FieldValue(name string) string {
	return n.Fields[name].Value
}

// HasField reports whether the named field exists and is non-empty.
func (n *Note) HasField(name string) bool {
	return n.Fields[name].Value != ""
}
