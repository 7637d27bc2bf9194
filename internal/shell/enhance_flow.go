package shell

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/hanki/internal/ankiconnect"
	"codeberg.org/snonux/hanki/internal/enhance"
)

// enhanceChoices are the field picker entries, in the order the options map
// back to enhance.Options.
var enhanceChoices = []string{
	"Word Type (verb/noun/etc)",
	"Example Sentences",
	"Related Words & Usage Rules",
	"Conjugations",
	"Irregular Rules",
	"Additional Rules",
	"Phonetics",
	`Add "leech" tag for review`,
}

// selectEnhanceOptions asks which metadata to generate. All fields are
// pre-checked; the leech tag is not.
func (s *Shell) selectEnhanceOptions() (enhance.Options, error) {
	selected, err := s.prompter.MultiSelect(
		"What information would you like to generate?",
		enhanceChoices,
		[]int{0, 1, 2, 3, 4, 5, 6},
	)
	if err != nil {
		return enhance.Options{}, err
	}

	var opts enhance.Options
	for _, i := range selected {
		switch i {
		case 0:
			opts.Type = true
		case 1:
			opts.Examples = true
		case 2:
			opts.RelatedWordsRules = true
		case 3:
			opts.Conjugations = true
		case 4:
			opts.IrregularRules = true
		case 5:
			opts.AdditionalRules = true
		case 6:
			opts.Phonetics = true
		case 7:
			opts.AddLeechTag = true
		}
	}
	return opts, nil
}

// enhanceSingleLoop lets the user pick one note at a time, enhance it and
// return to the picker, until they back out. A failed enhancement is shown
// and acknowledged, then the picker comes back.
func (s *Shell) enhanceSingleLoop(ctx context.Context, notes []ankiconnect.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(s.out, "No notes found in this deck.")
		return nil
	}

	for {
		s.clear()
		fmt.Fprintf(s.out, "Total notes: %d\n", len(notes))

		choice, err := s.prompter.Select("Select a note to enhance (or back to return):", notePickerChoices(notes))
		if err != nil {
			return err
		}
		if choice == len(notes) {
			s.clear()
			return nil
		}

		note := notes[choice]
		s.clear()
		fmt.Fprintf(s.out, "Selected note: Front: %s | Back: %s\n", note.FieldValue(enhance.FieldFront), note.FieldValue(enhance.FieldBack))
		fmt.Fprintf(s.out, "Current tags: %s\n\n", tagList(note.Tags))

		opts, err := s.selectEnhanceOptions()
		if err != nil {
			return err
		}

		fmt.Fprintf(s.out, "\nEnhancing note: %s (%s)\n", note.FieldValue(enhance.FieldFront), note.FieldValue(enhance.FieldBack))
		fmt.Fprintln(s.out, "Generating information using OpenAI...")

		if err := s.enhancer.EnhanceNote(ctx, note, opts); err != nil {
			s.showError(err)
			if err := s.acknowledge(); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(s.out, "✓ Note enhanced successfully!")
		// Leave the message visible before the picker redraws.
		s.pause(successPause)
	}
}

// enhanceMultiple runs the batch workflow: pick notes (those without
// examples pre-checked), pick shared options, process sequentially, then
// summarize.
func (s *Shell) enhanceMultiple(ctx context.Context, notes []ankiconnect.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(s.out, "No notes found in this deck.")
		return nil
	}

	// Newest notes first, they are the ones usually still missing content.
	ordered := make([]ankiconnect.Note, len(notes))
	for i, note := range notes {
		ordered[len(notes)-1-i] = note
	}

	selected, err := s.prompter.MultiSelect("Select notes to enhance:", notePickerChoices(ordered)[:len(ordered)], enhance.DefaultSelection(ordered))
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(s.out, "No notes selected for enhancement.")
		return nil
	}

	batch := make([]ankiconnect.Note, 0, len(selected))
	for _, i := range selected {
		batch = append(batch, ordered[i])
	}

	fmt.Fprintf(s.out, "\nSelected %d notes for enhancement.\n", len(batch))
	opts, err := s.selectEnhanceOptions()
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "\nEnhancing notes...")
	result := s.enhancer.EnhanceBatch(ctx, batch, opts, func(position, total int, note ankiconnect.Note) {
		fmt.Fprintf(s.out, "Processing note %d/%d: %s\n", position, total, note.FieldValue(enhance.FieldFront))
	})

	s.printBatchSummary(result)
	return nil
}

func (s *Shell) printBatchSummary(result enhance.BatchResult) {
	fmt.Fprintln(s.out, "\nEnhancement complete!")
	fmt.Fprintf(s.out, "Successfully enhanced: %d/%d notes\n", result.Succeeded, result.Attempted)

	if len(result.Failures) == 0 {
		return
	}
	fmt.Fprintln(s.out, "\nErrors occurred while processing these notes:")
	rows := make([][]string, 0, len(result.Failures))
	for _, failure := range result.Failures {
		rows = append(rows, []string{failure.Note.FieldValue(enhance.FieldFront), failure.Err.Error()})
	}
	fmt.Fprintln(s.out, renderTable([]string{"Note", "Error"}, rows))
}

// notePickerChoices lists notes as "n. Front: x | Back: y" with a trailing
// back entry.
func notePickerChoices(notes []ankiconnect.Note) []string {
	choices := make([]string, 0, len(notes)+1)
	for i, note := range notes {
		choices = append(choices, fmt.Sprintf("%d. Front: %s | Back: %s", i+1, note.FieldValue(enhance.FieldFront), note.FieldValue(enhance.FieldBack)))
	}
	return append(choices, "Back to deck menu")
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return "No tags"
	}
	return strings.Join(tags, ", ")
}
