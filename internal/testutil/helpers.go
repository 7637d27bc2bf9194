package testutil

import "codeberg.org/snonux/hanki/internal/ankiconnect"

// NewNote builds a Korean vocabulary note with Front/Back set and any extra
// fields appended in order.
func NewNote(id int64, front, back string, extra map[string]string) ankiconnect.Note {
	note := ankiconnect.Note{
		ID:        id,
		ModelName: "Korean Vocab",
		Fields: map[string]ankiconnect.Field{
			"Front": {Value: front, Order: 0},
			"Back":  {Value: back, Order: 1},
		},
	}
	order := 2
	for name, value := range extra {
		note.Fields[name] = ankiconnect.Field{Value: value, Order: order}
		order++
	}
	return note
}
