package parser

import "strings"

// IndexedDocument wraps Document with case-insensitive lookup maps. The
// document is never mutated after parsing, so lookups need no locking.
type IndexedDocument struct {
	Document
	tableIndex map[string]int            // lowercase table name → position
	fieldIndex map[string]map[string]int // lowercase table name → (lowercase field name → position)
}

// NewIndexedDocument indexes doc. When names repeat, the first table wins,
// matching Document.Table.
func NewIndexedDocument(doc Document) *IndexedDocument {
	idx := &IndexedDocument{
		Document:   doc,
		tableIndex: make(map[string]int, len(doc.Tables)),
		fieldIndex: make(map[string]map[string]int, len(doc.Tables)),
	}

	for i, table := range doc.Tables {
		key := strings.ToLower(table.Name)
		if _, seen := idx.tableIndex[key]; seen {
			continue
		}
		idx.tableIndex[key] = i

		fields := make(map[string]int, len(table.Fields))
		for j, field := range table.Fields {
			fkey := strings.ToLower(field.Name)
			if _, seen := fields[fkey]; !seen {
				fields[fkey] = j
			}
		}
		idx.fieldIndex[key] = fields
	}
	return idx
}

// GetTable performs O(1) case-insensitive table lookup
func (idx *IndexedDocument) GetTable(name string) (Table, bool) {
	i, ok := idx.tableIndex[strings.ToLower(name)]
	if !ok {
		return Table{}, false
	}
	return idx.Tables[i], true
}

// GetField performs O(1) case-insensitive field lookup
func (idx *IndexedDocument) GetField(table, field string) (Field, bool) {
	key := strings.ToLower(table)
	fields, ok := idx.fieldIndex[key]
	if !ok {
		return Field{}, false
	}
	j, ok := fields[strings.ToLower(field)]
	if !ok {
		return Field{}, false
	}
	return idx.Tables[idx.tableIndex[key]].Fields[j], true
}

func (idx *IndexedDocument) HasTable(name string) bool {
	_, ok := idx.tableIndex[strings.ToLower(name)]
	return ok
}

func (idx *IndexedDocument) HasField(table, field string) bool {
	_, ok := idx.GetField(table, field)
	return ok
}
