package refs

import (
	"github.com/goliatone/go-mwu-admin/pkg/apiclient"
	"github.com/goliatone/go-mwu-admin/pkg/model"
)

// Index maps entity ids to records, keeping fetch order.
type Index struct {
	order   []string
	records map[string]apiclient.Record
}

// NewIndex indexes records by id; records without an id are dropped. A
// repeated id keeps its first position and its last record.
func NewIndex(records []apiclient.Record) Index {
	idx := Index{records: make(map[string]apiclient.Record, len(records))}
	for _, record := range records {
		id := record.ID()
		if id == "" {
			continue
		}
		if _, seen := idx.records[id]; !seen {
			idx.order = append(idx.order, id)
		}
		idx.records[id] = record
	}
	return idx
}

// Len reports the number of indexed records.
func (i Index) Len() int {
	return len(i.order)
}

// Get returns the record for an id.
func (i Index) Get(id string) (apiclient.Record, bool) {
	record, ok := i.records[id]
	return record, ok
}

// Records returns the records in fetch order.
func (i Index) Records() []apiclient.Record {
	out := make([]apiclient.Record, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.records[id])
	}
	return out
}

// Options builds the display-name -> id map for an IDDropdown.
func (i Index) Options(displayField string) *model.OptionMap {
	return optionsFrom(i.Records(), displayField, "id")
}

// DisplayName resolves an id to the record's display field, returning
// fallback (e.g. "Unknown User") when the id is not indexed or the record has
// no display value.
func (i Index) DisplayName(id, displayField, fallback string) string {
	record, ok := i.records[id]
	if !ok {
		return fallback
	}
	if name := record.String(displayField); name != "" {
		return name
	}
	return fallback
}

// Cache holds the indexes a page loaded during one activation.
type Cache map[string]Index

// Index returns the index for a collection, empty when it was not loaded.
func (c Cache) Index(collection string) Index {
	if c == nil {
		return Index{}
	}
	return c[collection]
}
