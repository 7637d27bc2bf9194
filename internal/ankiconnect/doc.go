// Package ankiconnect is a client for the AnkiConnect add-on's local HTTP
// automation interface. It wraps the JSON request/response protocol with a
// per-attempt timeout and a bounded retry loop, and exposes typed note and
// deck operations (listing decks, fetching notes, updating fields, tagging,
// storing media files).
package ankiconnect
