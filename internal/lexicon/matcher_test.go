package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestIsExactEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		word  string
		want  bool
	}{
		{"plain", `{"meta":{"id":"cake"}}`, "cake", true},
		{"homograph suffix", `{"meta":{"id":"run:2"}}`, "run", true},
		{"case insensitive", `{"meta":{"id":"Paris"}}`, "paris", true},
		{"query case", `{"meta":{"id":"cake"}}`, "CAKE", true},
		{"derived", `{"meta":{"id":"cakewalk"}}`, "cake", false},
		{"missing meta", `{"fl":"noun"}`, "cake", false},
		{"id not a string", `{"meta":{"id":7}}`, "cake", false},
		{"not a record", `"cake"`, "cake", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExactEntry(gjson.Parse(tt.entry), tt.word))
		})
	}
}

func TestPartitionEntries(t *testing.T) {
	doc := gjson.Parse(`[
		{"meta":{"id":"cake:1"},"shortdef":["a sweet baked food"]},
		"suggestion",
		{"meta":{"id":"cakewalk"},"shortdef":["an easy task"]},
		42,
		{"meta":{"id":"cake:2"}}
	]`)

	p := PartitionEntries(doc, "cake")
	require.Len(t, p.Exact, 2)
	require.Len(t, p.Related, 1)
	assert.Equal(t, "cakewalk", Headword(p.Related[0]))

	first, ok := p.FirstExact()
	require.True(t, ok)
	assert.Equal(t, "cake", Headword(first))
}

func TestPartitionEntriesSoleExact(t *testing.T) {
	doc := gjson.Parse(`[{"meta":{"id":"cakewalk"}},{"meta":{"id":"Cake"}},{"meta":{"id":"pancake"}}]`)

	p := PartitionEntries(doc, "cake")
	require.Len(t, p.Exact, 1)
	assert.Equal(t, "cake", Headword(p.Exact[0]))
	assert.Len(t, p.Related, 2)
}

func TestPartitionEntriesEmpty(t *testing.T) {
	for _, raw := range []string{`[]`, `{"meta":{"id":"cake"}}`, `"nope"`, ``, `["cakes","caked"]`} {
		p := PartitionEntries(gjson.Parse(raw), "cake")
		assert.Empty(t, p.Exact, raw)
		assert.Empty(t, p.Related, raw)
		_, ok := p.MeaningEntry()
		assert.False(t, ok, raw)
	}
}

func TestMeaningEntry(t *testing.T) {
	t.Run("prefers exact", func(t *testing.T) {
		p := PartitionEntries(gjson.Parse(`[
			{"meta":{"id":"cakewalk"},"shortdef":["an easy task"]},
			{"meta":{"id":"cake"}}
		]`), "cake")

		entry, ok := p.MeaningEntry()
		require.True(t, ok)
		assert.Equal(t, "cake", Headword(entry))
	})

	t.Run("first related with shortdef", func(t *testing.T) {
		p := PartitionEntries(gjson.Parse(`[
			{"meta":{"id":"cakewalk"},"shortdef":[]},
			{"meta":{"id":"cakey"},"shortdef":"not a list"},
			{"meta":{"id":"caked"},"shortdef":["covered in a crust"]}
		]`), "cake")

		entry, ok := p.MeaningEntry()
		require.True(t, ok)
		assert.Equal(t, "caked", Headword(entry))
	})

	t.Run("none", func(t *testing.T) {
		p := PartitionEntries(gjson.Parse(`[{"meta":{"id":"cakewalk"}}]`), "cake")
		_, ok := p.MeaningEntry()
		assert.False(t, ok)
	})
}
