// Package dictionary fetches raw Merriam-Webster collegiate responses over
// HTTP. Bodies are returned untouched; interpreting them is up to lexicon.
package dictionary
