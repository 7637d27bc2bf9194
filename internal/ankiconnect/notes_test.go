package ankiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeAnki implements enough of the AnkiConnect protocol to exercise the
// typed operations against an in-memory collection.
type fakeAnki struct {
	decks    map[string][]int64
	notes    map[int64]*Note
	requests []request
}

func newFakeAnki() *fakeAnki {
	return &fakeAnki{
		decks: make(map[string][]int64),
		notes: make(map[int64]*Note),
	}
}

func (f *fakeAnki) addNote(deck string, note Note) {
	f.decks[deck] = append(f.decks[deck], note.ID)
	f.notes[note.ID] = &note
}

func (f *fakeAnki) server(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		f.requests = append(f.requests, req)

		write := func(result any) {
			json.NewEncoder(w).Encode(map[string]any{"result": result, "error": nil})
		}

		params, _ := json.Marshal(req.Params)
		switch req.Action {
		case "deckNames":
			names := make([]string, 0, len(f.decks))
			for name := range f.decks {
				names = append(names, name)
			}
			write(names)
		case "findNotes":
			var p struct {
				Query string `json:"query"`
			}
			json.Unmarshal(params, &p)
			for name, ids := range f.decks {
				if p.Query == `deck:"`+name+`"` {
					write(ids)
					return
				}
			}
			write([]int64{})
		case "notesInfo":
			var p struct {
				Notes []int64 `json:"notes"`
			}
			json.Unmarshal(params, &p)
			notes := make([]Note, 0, len(p.Notes))
			for _, id := range p.Notes {
				if n, ok := f.notes[id]; ok {
					notes = append(notes, *n)
				}
			}
			write(notes)
		case "updateNoteFields":
			var p struct {
				Note struct {
					ID     int64             `json:"id"`
					Fields map[string]string `json:"fields"`
				} `json:"note"`
			}
			json.Unmarshal(params, &p)
			if n, ok := f.notes[p.Note.ID]; ok {
				for name, value := range p.Note.Fields {
					field := n.Fields[name]
					field.Value = value
					n.Fields[name] = field
				}
			}
			write(nil)
		case "addTags", "removeTags", "storeMediaFile":
			write(nil)
		default:
			t.Errorf("unexpected action %q", req.Action)
		}
	}))
}

func (f *fakeAnki) lastRequest() request {
	return f.requests[len(f.requests)-1]
}

func testNote(id int64, fields map[string]string) Note {
	note := Note{ID: id, ModelName: "Korean Vocab", Fields: make(map[string]Field)}
	order := 0
	for name, value := range fields {
		note.Fields[name] = Field{Value: value, Order: order}
		order++
	}
	return note
}

func TestNotesInfoEmptySkipsRemoteCall(t *testing.T) {
	fake := newFakeAnki()
	server := fake.server(t)
	defer server.Close()

	notes, err := newTestClient(server.URL).NotesInfo(context.Background(), nil)
	if err != nil {
		t.Fatalf("NotesInfo() error = %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("notes = %v, want empty", notes)
	}
	if len(fake.requests) != 0 {
		t.Errorf("requests = %d, want 0 for an empty identifier list", len(fake.requests))
	}
}

func TestFindNotesScopesQueryToDeck(t *testing.T) {
	fake := newFakeAnki()
	fake.addNote("Korean", testNote(101, map[string]string{"Front": "사과", "Back": "apple"}))
	server := fake.server(t)
	defer server.Close()

	ids, err := newTestClient(server.URL).FindNotes(context.Background(), "Korean")
	if err != nil {
		t.Fatalf("FindNotes() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != 101 {
		t.Errorf("ids = %v, want [101]", ids)
	}

	params, _ := json.Marshal(fake.lastRequest().Params)
	var p struct {
		Query string `json:"query"`
	}
	json.Unmarshal(params, &p)
	if p.Query != `deck:"Korean"` {
		t.Errorf("query = %q, want %q", p.Query, `deck:"Korean"`)
	}
}

func TestNotesInDeck(t *testing.T) {
	t.Run("empty deck short-circuits", func(t *testing.T) {
		fake := newFakeAnki()
		fake.decks["Empty"] = nil
		server := fake.server(t)
		defer server.Close()

		notes, err := newTestClient(server.URL).NotesInDeck(context.Background(), "Empty")
		if err != nil {
			t.Fatalf("NotesInDeck() error = %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("notes = %v, want empty", notes)
		}
		// Only the findNotes round trip, no notesInfo for zero ids.
		if len(fake.requests) != 1 {
			t.Errorf("requests = %d, want 1", len(fake.requests))
		}
	})

	t.Run("fetches details for found notes", func(t *testing.T) {
		fake := newFakeAnki()
		fake.addNote("Korean", testNote(101, map[string]string{"Front": "사과", "Back": "apple"}))
		fake.addNote("Korean", testNote(102, map[string]string{"Front": "물", "Back": "water"}))
		server := fake.server(t)
		defer server.Close()

		notes, err := newTestClient(server.URL).NotesInDeck(context.Background(), "Korean")
		if err != nil {
			t.Fatalf("NotesInDeck() error = %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("len(notes) = %d, want 2", len(notes))
		}
		if notes[0].FieldValue("Front") != "사과" {
			t.Errorf("Front = %q, want 사과", notes[0].FieldValue("Front"))
		}
	})
}

func TestAddTagsJoinsIntoSingleRequest(t *testing.T) {
	fake := newFakeAnki()
	server := fake.server(t)
	defer server.Close()

	if err := newTestClient(server.URL).AddTags(context.Background(), []int64{101, 102}, "leech"); err != nil {
		t.Fatalf("AddTags() error = %v", err)
	}
	if len(fake.requests) != 1 {
		t.Fatalf("requests = %d, want a single batched request", len(fake.requests))
	}

	params, _ := json.Marshal(fake.lastRequest().Params)
	var p tagParams
	json.Unmarshal(params, &p)
	if p.Tags != "leech" {
		t.Errorf("tags = %q, want %q", p.Tags, "leech")
	}
	if len(p.Notes) != 2 || p.Notes[0] != 101 || p.Notes[1] != 102 {
		t.Errorf("notes = %v, want [101 102]", p.Notes)
	}
}

func TestRemoveTagsSpaceJoinsMultipleTags(t *testing.T) {
	fake := newFakeAnki()
	server := fake.server(t)
	defer server.Close()

	if err := newTestClient(server.URL).RemoveTags(context.Background(), []int64{101}, "leech", "review"); err != nil {
		t.Fatalf("RemoveTags() error = %v", err)
	}

	params, _ := json.Marshal(fake.lastRequest().Params)
	var p tagParams
	json.Unmarshal(params, &p)
	if p.Tags != "leech review" {
		t.Errorf("tags = %q, want %q", p.Tags, "leech review")
	}
}

func TestUpdateNoteFieldsRoundTrip(t *testing.T) {
	fake := newFakeAnki()
	fake.addNote("Korean", testNote(101, map[string]string{"Front": "사과", "Back": "apple", "Examples": ""}))
	server := fake.server(t)
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	err := client.UpdateNoteFields(ctx, 101, map[string]string{"Examples": "사과를 먹어요. I eat an apple."})
	if err != nil {
		t.Fatalf("UpdateNoteFields() error = %v", err)
	}

	// Re-fetch the remote copy, not a stale local snapshot.
	notes, err := client.NotesInfo(ctx, []int64{101})
	if err != nil {
		t.Fatalf("NotesInfo() error = %v", err)
	}
	if got := notes[0].FieldValue("Examples"); got != "사과를 먹어요. I eat an apple." {
		t.Errorf("Examples = %q, want the updated value", got)
	}
	// Untouched fields keep their values.
	if got := notes[0].FieldValue("Front"); got != "사과" {
		t.Errorf("Front = %q, want 사과", got)
	}
}
