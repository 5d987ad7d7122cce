// Package models lists the OpenAI chat models that can serve as sentence
// providers for the current API key.
package models
