package ankiconnect

import (
	"context"
	"fmt"
	"strings"
)

// DeckNames returns the names of all decks in the collection.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var decks []string
	if err := c.Invoke(ctx, "deckNames", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// FindNotes returns the identifiers of all notes in the named deck.
func (c *Client) FindNotes(ctx context.Context, deck string) ([]int64, error) {
	params := map[string]string{
		"query": fmt.Sprintf("deck:%q", deck),
	}
	var ids []int64
	if err := c.Invoke(ctx, "findNotes", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// NotesInfo fetches full details (fields, tags, model name) for the given
// note identifiers in one batched call. An empty identifier list returns an
// empty slice without a round trip.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]Note, error) {
	if len(ids) == 0 {
		return []Note{}, nil
	}
	params := map[string][]int64{"notes": ids}
	var notes []Note
	if err := c.Invoke(ctx, "notesInfo", params, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// NotesInDeck lists the deck's note identifiers and fetches their details.
// An empty deck short-circuits to an empty slice.
func (c *Client) NotesInDeck(ctx context.Context, deck string) ([]Note, error) {
	ids, err := c.FindNotes(ctx, deck)
	if err != nil {
		return nil, err
	}
	return c.NotesInfo(ctx, ids)
}

// UpdateNoteFields merges the given field values into the note. Fields not
// named are left untouched.
func (c *Client) UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error {
	params := map[string]any{
		"note": map[string]any{
			"id":     id,
			"fields": fields,
		},
	}
	return c.Invoke(ctx, "updateNoteFields", params, nil)
}

type tagParams struct {
	Notes []int64 `json:"notes"`
	Tags  string  `json:"tags"`
}

// AddTags adds the given tags to every listed note in a single request. The
// protocol takes multiple tags as one space-joined string.
func (c *Client) AddTags(ctx context.Context, ids []int64, tags ...string) error {
	return c.Invoke(ctx, "addTags", tagParams{Notes: ids, Tags: strings.Join(tags, " ")}, nil)
}

// RemoveTags removes the given tags from every listed note in a single
// request.
func (c *Client) RemoveTags(ctx context.Context, ids []int64, tags ...string) error {
	return c.Invoke(ctx, "removeTags", tagParams{Notes: ids, Tags: strings.Join(tags, " ")}, nil)
}

// StoreMediaFile stores the file at path in Anki's media collection under
// the given filename.
func (c *Client) StoreMediaFile(ctx context.Context, filename, path string) error {
	params := map[string]string{
		"filename": filename,
		"path":     path,
	}
	return c.Invoke(ctx, "storeMediaFile", params, nil)
}
