package lexicon

// DefaultDifficulty is the difficulty label stamped on every record unless
// configured otherwise.
const DefaultDifficulty = "two"

// Record is one normalized vocabulary entry of the output file. Absent
// values are empty strings; a missing audio URL encodes as null.
type Record struct {
	Word         string  `json:"word"`
	Difficulty   string  `json:"difficulty"`
	PartOfSpeech string  `json:"part_of_speech"`
	Definition   string  `json:"definition"`
	Sentence     string  `json:"sentence"`
	Origin       string  `json:"origin"`
	AudioURL     *string `json:"audio_url"`
}

// NewRecord returns the default record for word.
func NewRecord(word, difficulty string) Record {
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	return Record{Word: word, Difficulty: difficulty}
}

// HasAudio reports whether the record carries an audio URL.
func (r Record) HasAudio() bool {
	return r.AudioURL != nil && *r.AudioURL != ""
}

// HasDefinition reports whether the record carries a definition.
func (r Record) HasDefinition() bool {
	return r.Definition != ""
}
