package shell

import (
	"fmt"

	"codeberg.org/snonux/hanki/internal/ankiconnect"
)

// viewCards pages through the deck one card at a time.
func (s *Shell) viewCards(cards []ankiconnect.Note) error {
	if len(cards) == 0 {
		fmt.Fprintln(s.out, "No cards found in this deck.")
		return nil
	}

	current := 0
	for {
		card := cards[current]

		s.clear()
		fmt.Fprintf(s.out, "Card %d of %d\n", current+1, len(cards))
		fmt.Fprintf(s.out, "Tags: %s\n", tagList(card.Tags))
		s.printFields(card)

		// Only offer the directions that exist from here.
		choices := []string{}
		prevAt, nextAt := -1, -1
		if current > 0 {
			prevAt = len(choices)
			choices = append(choices, "Previous card")
		}
		if current < len(cards)-1 {
			nextAt = len(choices)
			choices = append(choices, "Next card")
		}
		choices = append(choices, "Back to deck menu")

		choice, err := s.prompter.Select("Navigation:", choices)
		if err != nil {
			return err
		}
		switch choice {
		case prevAt:
			current--
		case nextAt:
			current++
		default:
			s.clear()
			return nil
		}
	}
}

// viewNotesList shows the deck as a table and opens a detail view per
// selection.
func (s *Shell) viewNotesList(notes []ankiconnect.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(s.out, "No notes found in this deck.")
		return nil
	}

	for {
		s.clear()
		fmt.Fprintf(s.out, "Total notes: %d\n\n", len(notes))

		rows := make([][]string, 0, len(notes))
		for i, note := range notes {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				truncate(note.FieldValue("Front"), 30),
				truncate(note.FieldValue("Back"), 30),
				tagList(note.Tags),
			})
		}
		fmt.Fprintln(s.out, renderTable([]string{"#", "Front", "Back", "Tags"}, rows))

		choice, err := s.prompter.Select("Select a note to view details (or back to return):", notePickerChoices(notes))
		if err != nil {
			return err
		}
		if choice == len(notes) {
			s.clear()
			return nil
		}

		note := notes[choice]
		s.clear()
		fmt.Fprintf(s.out, "Note %d of %d\n", choice+1, len(notes))
		fmt.Fprintf(s.out, "Tags: %s\n", tagList(note.Tags))
		s.printFields(note)

		if err := s.acknowledge(); err != nil {
			return err
		}
	}
}

func (s *Shell) printFields(note ankiconnect.Note) {
	fmt.Fprintln(s.out, "\nFields:")
	for _, field := range displayFields(note) {
		fmt.Fprintf(s.out, "\n%s:\n%s\n", field.Name, field.Value)
	}
}
