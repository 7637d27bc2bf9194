package shell

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"codeberg.org/snonux/hanki/internal/ankiconnect"
	"codeberg.org/snonux/hanki/internal/enhance"
)

// NoteService is the deck and note surface the shell drives.
type NoteService interface {
	DeckNames(ctx context.Context) ([]string, error)
	NotesInDeck(ctx context.Context, deck string) ([]ankiconnect.Note, error)
	enhance.NoteStore
}

// Shell runs the menu-driven navigation loop.
type Shell struct {
	store     NoteService
	enhancer  *enhance.Enhancer
	audio     *enhance.AudioEnhancer
	sentences enhance.SentenceGenerator
	prompter  Prompter
	out       io.Writer
	rng       *rand.Rand
	pause     func(time.Duration)

	// ClearScreen redraws menus on a fresh screen. Only enabled when stdout
	// is a terminal.
	ClearScreen bool
}

// successPause keeps a success message on screen before the next redraw
// wipes it.
const successPause = 2 * time.Second

// New assembles the shell around its collaborators.
func New(store NoteService, enhancer *enhance.Enhancer, audio *enhance.AudioEnhancer, sentences enhance.SentenceGenerator, prompter Prompter, out io.Writer) *Shell {
	return &Shell{
		store:     store,
		enhancer:  enhancer,
		audio:     audio,
		sentences: sentences,
		prompter:  prompter,
		out:       out,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		pause:     time.Sleep,
	}
}

// state enumerates the navigation positions of the main loop. Every menu
// transition is explicit, so each state can be tested without a terminal.
type state int

const (
	stateMainMenu state = iota
	stateDeckPicker
	stateDeckMenu
	stateExit
)

// Run drives the navigation loop until the user exits. Workflow errors are
// shown and acknowledged inside the loop; only prompter/terminal failures
// propagate out.
func (s *Shell) Run(ctx context.Context) error {
	current := stateMainMenu
	deck := ""

	for current != stateExit {
		var err error
		switch current {
		case stateMainMenu:
			current, err = s.mainMenu()
		case stateDeckPicker:
			deck, current, err = s.pickDeck(ctx)
		case stateDeckMenu:
			current, err = s.deckMenu(ctx, deck)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "Goodbye!")
	return nil
}

func (s *Shell) mainMenu() (state, error) {
	choice, err := s.prompter.Select("What would you like to do?", []string{
		"Select a deck to work with",
		"Exit",
	})
	if err != nil {
		return stateExit, err
	}
	if choice == 1 {
		return stateExit, nil
	}
	return stateDeckPicker, nil
}

func (s *Shell) pickDeck(ctx context.Context) (string, state, error) {
	decks, err := s.store.DeckNames(ctx)
	if err != nil {
		s.showError(err)
		if ackErr := s.acknowledge(); ackErr != nil {
			return "", stateExit, ackErr
		}
		return "", stateMainMenu, nil
	}
	if len(decks) == 0 {
		fmt.Fprintln(s.out, "No decks found.")
		return "", stateMainMenu, nil
	}

	choice, err := s.prompter.Select("Select a deck:", decks)
	if err != nil {
		return "", stateExit, err
	}
	return decks[choice], stateDeckMenu, nil
}

type deckAction int

const (
	actionViewCards deckAction = iota
	actionViewNotes
	actionEnhanceSingle
	actionEnhanceMultiple
	actionGenerateAudio
	actionModifyNote
	actionGenerateSentence
	actionBack
)

func (s *Shell) deckMenu(ctx context.Context, deck string) (state, error) {
	fmt.Fprintf(s.out, "\nWorking with deck: %s\n", deck)
	choice, err := s.prompter.Select("What would you like to do with this deck?", []string{
		"View cards (card by card)",
		"View notes (as list)",
		"Enhance single note with AI",
		"Enhance multiple notes with AI",
		"Generate pronunciation audio",
		"Modify a note manually",
		"Generate practice sentence",
		"Back to main menu",
	})
	if err != nil {
		return stateExit, err
	}

	action := deckAction(choice)
	if action == actionBack {
		return stateMainMenu, nil
	}

	// Every action works on a fresh snapshot of the deck. Writes performed
	// by a workflow are not folded back into it; the next action re-fetches.
	fmt.Fprintln(s.out, "Loading notes...")
	notes, err := s.store.NotesInDeck(ctx, deck)
	if err != nil {
		s.showError(err)
		if ackErr := s.acknowledge(); ackErr != nil {
			return stateExit, ackErr
		}
		return stateDeckMenu, nil
	}

	switch action {
	case actionViewCards:
		err = s.viewCards(notes)
	case actionViewNotes:
		err = s.viewNotesList(notes)
	case actionEnhanceSingle:
		err = s.enhanceSingleLoop(ctx, notes)
	case actionEnhanceMultiple:
		err = s.enhanceMultiple(ctx, notes)
	case actionGenerateAudio:
		err = s.generateAudio(ctx, notes)
	case actionModifyNote:
		err = s.modifyNote(ctx, notes)
	case actionGenerateSentence:
		err = s.generateSentence(ctx, notes)
	}
	if err != nil {
		return stateExit, err
	}
	return stateDeckMenu, nil
}

// generateSentence runs the practice sentence workflow. Any failing step
// aborts the whole operation and is reported once.
func (s *Shell) generateSentence(ctx context.Context, notes []ankiconnect.Note) error {
	result, err := enhance.GeneratePractice(ctx, s.sentences, notes, s.rng)
	if err != nil {
		s.showError(err)
		return nil
	}

	if result.Reason != "" {
		fmt.Fprintf(s.out, "\nSelection reasoning: %s\n", result.Reason)
	}
	fmt.Fprintln(s.out, "\nSelected words that work well together:")
	for _, word := range result.Words {
		fmt.Fprintf(s.out, "- %s (%s)\n", word.Korean, word.English)
	}
	fmt.Fprintln(s.out, "\nGenerated sentence:")
	fmt.Fprintf(s.out, "Korean: %s\n", result.Sentence.Korean)
	fmt.Fprintf(s.out, "English: %s\n", result.Sentence.English)
	fmt.Fprintf(s.out, "Grammar notes: %s\n", result.Sentence.GrammarNotes)
	return nil
}

// generateAudio attaches pronunciation audio to one selected note.
func (s *Shell) generateAudio(ctx context.Context, notes []ankiconnect.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(s.out, "No notes found in this deck.")
		return nil
	}

	choice, err := s.prompter.Select("Select a note to generate audio for (or back to return):", notePickerChoices(notes))
	if err != nil {
		return err
	}
	if choice == len(notes) {
		return nil
	}

	if err := s.audio.EnhanceNoteAudio(ctx, notes[choice]); err != nil {
		s.showError(err)
		return s.acknowledge()
	}
	return nil
}

func (s *Shell) showError(err error) {
	fmt.Fprintf(s.out, "\nError: %v\n", err)
}

// acknowledge pauses until the user dismisses an error.
func (s *Shell) acknowledge() error {
	_, err := s.prompter.Input("Press Enter to continue...")
	return err
}
