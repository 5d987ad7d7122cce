package lexicon

import (
	"iter"

	"github.com/tidwall/gjson"
)

// ExampleSentences lazily yields the verbal illustrations of an entry in
// document order, markers stripped, empties dropped and exact duplicates
// collapsed to their first occurrence. Unexpected shapes are skipped.
func ExampleSentences(entry gjson.Result) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, def := range wrap(entry).field("def").items() {
			for _, group := range def.field("sseq").items() {
				for _, sense := range group.items() {
					for _, raw := range illustrations(sense) {
						text := StripMarkers(raw)
						if text == "" {
							continue
						}
						if _, dup := seen[text]; dup {
							continue
						}
						seen[text] = struct{}{}
						if !yield(text) {
							return
						}
					}
				}
			}
		}
	}
}

// FirstExample returns the first example sentence of any of the entries.
func FirstExample(entries []gjson.Result) (string, bool) {
	for _, entry := range entries {
		for s := range ExampleSentences(entry) {
			return s, true
		}
	}
	return "", false
}

// illustrations returns the raw illustration texts of one sense. A sense is
// well formed when it is a two element list whose second element is a record.
func illustrations(sense node) []string {
	items := sense.items()
	if len(items) != 2 || !items[1].isRecord() {
		return nil
	}

	var out []string
	for _, dt := range items[1].field("dt").items() {
		if len(dt.items()) < 2 || !dt.tagged("vis") {
			continue
		}
		for _, vis := range dt.index(1).items() {
			if s, ok := illustrationText(vis); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// illustrationText accepts both the list form ["vis", "text"] and the
// record form {"t": "text"} the API actually sends.
func illustrationText(vis node) (string, bool) {
	if vis.isList() {
		if len(vis.items()) < 2 {
			return "", false
		}
		return vis.index(1).text()
	}
	return vis.field("t").text()
}
