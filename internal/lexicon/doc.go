// Package lexicon turns raw Merriam-Webster collegiate responses into flat
// vocabulary records. It partitions entries into exact and related matches,
// walks the nested sense sequence for example sentences, classifies
// etymologies into origin-language tags and derives pronunciation audio URLs.
// Nothing in this package performs I/O.
package lexicon
