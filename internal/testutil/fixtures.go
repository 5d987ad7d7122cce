package testutil

// Trimmed Merriam-Webster Collegiate responses used across package tests.
const (
	CakeResponse = `[
  {
    "meta": {"id": "cake", "stems": ["cake", "cakes"]},
    "hwi": {"hw": "cake", "prs": [{"mw": "ˈkāk", "sound": {"audio": "cake0001"}}]},
    "fl": "noun",
    "def": [{"sseq": [[["sense", {"sn": "1", "dt": [["text", "{bc}a breadlike food"], ["vis", [{"t": "a piece of {wi}cake{/wi}"}]]]}]]]}],
    "et": [["text", "Middle English, from Old Norse {it}kaka{/it}"]],
    "shortdef": ["a breadlike food made from a dough or batter"]
  },
  {
    "meta": {"id": "cake:2"},
    "fl": "verb",
    "shortdef": ["to encrust"]
  }
]`

	RunResponse = `[
  {
    "meta": {"id": "run:1"},
    "hwi": {"hw": "run", "prs": [{"sound": {"audio": "run00001"}}]},
    "fl": "verb",
    "et": [["text", "Middle English {it}ronnen{/it}, from Old English {it}rinnan{/it} and Old Norse {it}rinna{/it}"]],
    "shortdef": ["to go faster than a walk"]
  }
]`

	BixResponse = `[
  {
    "meta": {"id": "bixby"},
    "hwi": {"hw": "bixby", "prs": [{"sound": {"audio": "bix00001"}}]},
    "fl": "noun",
    "shortdef": ["a made up word"]
  }
]`

	// RelatedOnlyResponse has no entry whose headword equals "runny".
	RelatedOnlyResponse = `[
  {
    "meta": {"id": "run:1"},
    "hwi": {"hw": "run", "prs": [{"sound": {"audio": "run00001"}}]},
    "fl": "verb",
    "shortdef": ["to go faster than a walk"]
  }
]`

	// SuggestionsResponse is what the API returns for an unknown word.
	SuggestionsResponse = `["xylem", "xyst", "xysti"]`
)
