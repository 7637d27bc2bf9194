// Package speech synthesizes Korean pronunciation audio through the
// ElevenLabs text-to-speech API and writes the result to a temporary file
// for the caller to place into Anki's media collection.
package speech
