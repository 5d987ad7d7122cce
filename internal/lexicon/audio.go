package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAudioBase is the Merriam-Webster pronunciation media root.
const DefaultAudioBase = "https://media.merriam-webster.com/audio/prons/en/us/mp3"

// AudioSubdir returns the media subdirectory for an audio identifier.
// Rules are checked in order: "bix" prefix, "gg" prefix, leading digit,
// otherwise the first character.
func AudioSubdir(audioID string) string {
	switch {
	case audioID == "":
		return ""
	case strings.HasPrefix(audioID, "bix"):
		return "bix"
	case strings.HasPrefix(audioID, "gg"):
		return "gg"
	}

	first, size := utf8.DecodeRuneInString(audioID)
	if unicode.IsDigit(first) {
		return "number"
	}
	return audioID[:size]
}

// BuildAudioURL maps an audio identifier to a playable mp3 URL. An empty
// identifier has no URL.
func BuildAudioURL(base, audioID string) (string, bool) {
	if audioID == "" {
		return "", false
	}
	base = strings.TrimRight(base, "/")
	return base + "/" + AudioSubdir(audioID) + "/" + audioID + ".mp3", true
}

// audioID finds the first sound identifier of an entry: headword
// pronunciations first, then the pronunciations of inflected forms.
func audioID(entry node) (string, bool) {
	if id, ok := firstSound(entry.path("hwi", "prs")); ok {
		return id, true
	}
	for _, inflection := range entry.field("ins").items() {
		if id, ok := firstSound(inflection.field("prs")); ok {
			return id, true
		}
	}
	return "", false
}

func firstSound(prs node) (string, bool) {
	for _, pr := range prs.items() {
		if id, ok := pr.path("sound", "audio").text(); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
