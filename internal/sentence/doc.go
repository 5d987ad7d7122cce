// Package sentence produces practice sentences for spelling words, either
// from fixed templates or from a chat model with the templates as fallback.
package sentence
