package lexicon

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Partition splits a response into entries whose headword is the query word
// and everything else. Elements that are not records appear in neither list.
type Partition struct {
	Exact   []gjson.Result
	Related []gjson.Result
}

// Headword returns the normalized headword of an entry: meta.id up to the
// first ':' (homograph suffix), lowercased.
func Headword(entry gjson.Result) string {
	id, _ := wrap(entry).path("meta", "id").text()
	if i := strings.IndexByte(id, ':'); i >= 0 {
		id = id[:i]
	}
	return strings.ToLower(id)
}

// IsExactEntry reports whether entry is a record whose headword equals word,
// ignoring case.
func IsExactEntry(entry gjson.Result, word string) bool {
	if !entry.IsObject() {
		return false
	}
	return Headword(entry) == strings.ToLower(word)
}

// PartitionEntries partitions a parsed response. Anything other than a JSON
// array yields an empty partition.
func PartitionEntries(entries gjson.Result, word string) Partition {
	var p Partition
	for _, entry := range wrap(entries).items() {
		if !entry.isRecord() {
			continue
		}
		if IsExactEntry(entry.r, word) {
			p.Exact = append(p.Exact, entry.r)
		} else {
			p.Related = append(p.Related, entry.r)
		}
	}
	return p
}

// FirstExact returns the first exact entry.
func (p Partition) FirstExact() (gjson.Result, bool) {
	if len(p.Exact) == 0 {
		return gjson.Result{}, false
	}
	return p.Exact[0], true
}

// MeaningEntry picks the entry that supplies part of speech, definition and
// etymology: the first exact entry, else the first entry that carries at
// least one short definition.
func (p Partition) MeaningEntry() (gjson.Result, bool) {
	if entry, ok := p.FirstExact(); ok {
		return entry, true
	}
	for _, entry := range p.Related {
		if hasShortDef(wrap(entry)) {
			return entry, true
		}
	}
	return gjson.Result{}, false
}

func hasShortDef(entry node) bool {
	return len(entry.field("shortdef").items()) > 0
}
