// Package processor contains the batch logic of spellbee. It reads the word
// list, fetches every word from the dictionary on a bounded worker pool under
// a shared rate limit, resolves each response into an output record and
// writes the records atomically in input order. It optionally archives the
// previous output and exports an Anki deck. This package serves as the main
// coordinator between all other components.
package processor
