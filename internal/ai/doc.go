// Package ai generates linguistic metadata for Korean vocabulary cards
// using an OpenAI-compatible chat API with structured tool-call outputs. It
// produces card field content for a word pair, narrows candidate words to a
// combinable subset, and composes practice sentences.
package ai
