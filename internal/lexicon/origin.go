package lexicon

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// OriginSeparator joins origin tags.
const OriginSeparator = " + "

type originRule struct {
	tag   string
	match func(blob string) bool
}

func anyOf(keywords ...string) func(string) bool {
	return func(blob string) bool {
		for _, kw := range keywords {
			if strings.Contains(blob, kw) {
				return true
			}
		}
		return false
	}
}

// germanWord matches "german" but not "germanic".
var germanWord = regexp.MustCompile(`\bgerman\b`)

// originRules is evaluated top to bottom; output order follows this table.
var originRules = []originRule{
	// Classical
	{"Greek", anyOf("greek")},
	{"Latin", anyOf("latin")},

	// Romance
	{"Romance Languages", anyOf("french", "spanish", "italian", "portuguese",
		"provençal", "provencal", "catalan", "romanian", "occitan")},

	// Germanic
	{"German", germanWord.MatchString},
	{"Dutch", anyOf("dutch", "flemish", "afrikaans")},
	{"Scandinavian Languages", anyOf("old norse", "norse", "swedish", "danish",
		"norwegian", "icelandic")},
	{"Old English", anyOf("old english")},

	// East Asia and Pacific
	{"Japanese", anyOf("japanese")},
	{"Chinese", anyOf("chinese", "mandarin", "cantonese")},
	{"Asian Languages", anyOf("korean", "vietnamese", "thai", "malay", "tagalog",
		"indonesian", "tibetan", "burmese")},
	{"Pacific Languages", anyOf("hawaiian", "maori", "tahitian", "polynesian",
		"samoan", "tongan")},

	// South Asia
	{"South Asian Languages", anyOf("sanskrit", "hindi", "urdu", "tamil",
		"bengali", "pali", "telugu", "marathi", "sinhalese")},

	// Middle East
	{"Arabic", anyOf("arabic")},
	{"Middle Eastern Languages", anyOf("hebrew", "aramaic", "persian", "farsi",
		"turkish", "ottoman")},

	// Other families
	{"Slavic Languages", anyOf("russian", "polish", "czech", "serbian", "croatian",
		"ukrainian", "slavic", "bulgarian", "slovak", "slovene")},
	{"Celtic Languages", anyOf("irish", "gaelic", "welsh", "breton", "cornish", "celtic")},
	{"Uralic Languages", anyOf("finnish", "hungarian", "estonian")},
	{"African Languages", anyOf("swahili", "zulu", "bantu", "yoruba", "xhosa", "wolof")},
	{"New World Languages", anyOf("native american", "nahuatl", "quechua",
		"algonquian", "ojibwa", "cree", "tupi", "taino", "inuit", "eskimo",
		"carib", "arawak")},

	// Other origins
	{"Trademarks", anyOf("trademark")},
	{"Imitative", anyOf("imitative", "onomatopoeic")},
	{"Eponyms", anyOf("named after", "from the name of", "eponym")},
}

// EtymologyText concatenates the "text" fragments of an etymology block with
// markers stripped. Other fragment kinds are ignored.
func EtymologyText(et gjson.Result) string {
	var parts []string
	for _, fragment := range wrap(et).items() {
		if !fragment.tagged("text") {
			continue
		}
		if s, ok := fragment.index(1).text(); ok {
			if s = StripMarkers(s); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}

// OriginTags returns the canonical origin tags found in text, in table order,
// each at most once.
func OriginTags(text string) []string {
	blob := strings.ToLower(text)
	if strings.TrimSpace(blob) == "" {
		return nil
	}

	var tags []string
	seen := make(map[string]bool)
	for _, rule := range originRules {
		if seen[rule.tag] || !rule.match(blob) {
			continue
		}
		seen[rule.tag] = true
		tags = append(tags, rule.tag)
	}
	return tags
}

// ClassifyOrigin joins the origin tags of text, or returns "" when none match.
func ClassifyOrigin(text string) string {
	return strings.Join(OriginTags(text), OriginSeparator)
}

// Origin classifies an entry's etymology block.
func Origin(et gjson.Result) string {
	return ClassifyOrigin(EtymologyText(et))
}
