package shell

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/hanki/internal/ai"
	"codeberg.org/snonux/hanki/internal/ankiconnect"
	"codeberg.org/snonux/hanki/internal/enhance"
)

var modifyChoices = []string{
	"Word Type (verb/noun/etc)",
	"Example Sentences",
	"Related Words & Usage Rules",
	"Conjugations",
	"Irregular Rules",
	"Additional Rules",
	"Phonetics",
	"Manage Tags",
}

// fieldForModifyChoice maps picker entries to note field names; the tags
// entry is handled separately.
var fieldForModifyChoice = map[int]string{
	0: enhance.FieldType,
	1: enhance.FieldExamples,
	2: enhance.FieldRelatedWordsRules,
	3: enhance.FieldConjugations,
	4: enhance.FieldIrregularRules,
	5: enhance.FieldAdditionalRules,
	6: enhance.FieldPhonetics,
}

// modifyNote edits one note's fields and tags from user input, without any
// AI involvement.
func (s *Shell) modifyNote(ctx context.Context, notes []ankiconnect.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(s.out, "No notes found in this deck.")
		return nil
	}

	choice, err := s.prompter.Select("Select a note to modify (or back to return):", notePickerChoices(notes))
	if err != nil {
		return err
	}
	if choice == len(notes) {
		return nil
	}
	note := notes[choice]

	selected, err := s.prompter.MultiSelect("What information would you like to modify?", modifyChoices, nil)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return nil
	}

	front := note.FieldValue(enhance.FieldFront)
	updated := make(map[string]string)
	manageTags := false

	for _, i := range selected {
		if i == 7 {
			manageTags = true
			continue
		}
		fieldName := fieldForModifyChoice[i]

		var value string
		if fieldName == enhance.FieldType {
			typeChoice, err := s.prompter.Select(fmt.Sprintf("Select word type for %q:", front), ai.WordTypes)
			if err != nil {
				return err
			}
			value = ai.WordTypes[typeChoice]
		} else {
			value, err = s.requireInput(fmt.Sprintf("Enter %s for %q:", strings.ToLower(fieldName), front))
			if err != nil {
				return err
			}
		}
		updated[fieldName] = value
	}

	if len(updated) > 0 {
		if err := s.store.UpdateNoteFields(ctx, note.ID, updated); err != nil {
			s.showError(err)
			return s.acknowledge()
		}
	}

	if manageTags {
		if err := s.manageTags(ctx, note); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "✓ Note updated!")
	return nil
}

func (s *Shell) manageTags(ctx context.Context, note ankiconnect.Note) error {
	action, err := s.prompter.Select("What would you like to do with tags?", []string{
		"Add new tags",
		"Remove existing tags",
		"Both add and remove tags",
	})
	if err != nil {
		return err
	}

	if action == 0 || action == 2 {
		tags, err := s.requireInput("Enter tags to add (space-separated):")
		if err != nil {
			return err
		}
		if err := s.store.AddTags(ctx, []int64{note.ID}, strings.Fields(tags)...); err != nil {
			s.showError(err)
			return s.acknowledge()
		}
	}
	if action == 1 || action == 2 {
		tags, err := s.requireInput("Enter tags to remove (space-separated):")
		if err != nil {
			return err
		}
		if err := s.store.RemoveTags(ctx, []int64{note.ID}, strings.Fields(tags)...); err != nil {
			s.showError(err)
			return s.acknowledge()
		}
	}
	return nil
}

// requireInput reprompts until the answer is non-empty.
func (s *Shell) requireInput(message string) (string, error) {
	for {
		value, err := s.prompter.Input(message)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), nil
		}
		fmt.Fprintln(s.out, "A value is required")
	}
}
