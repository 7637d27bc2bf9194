package enhance

import (
	"context"
	"fmt"
	"io"
	"time"

	"codeberg.org/snonux/hanki/internal/ankiconnect"
)

// SpeechSynthesizer converts text to speech, returning the path of a local
// audio file.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// AudioEnhancer attaches synthesized pronunciation audio to notes.
type AudioEnhancer struct {
	store NoteStore
	synth SpeechSynthesizer
	out   io.Writer

	now func() time.Time
}

// NewAudioEnhancer creates an audio enhancer writing progress to out.
func NewAudioEnhancer(store NoteStore, synth SpeechSynthesizer, out io.Writer) *AudioEnhancer {
	return &AudioEnhancer{store: store, synth: synth, out: out, now: time.Now}
}

// EnhanceNoteAudio synthesizes audio for the note's Korean text, stores it
// in Anki's media collection and writes a sound tag into the Audio field. A
// note without Korean text is skipped with a message, not an error. Any
// other failure aborts this note only.
func (a *AudioEnhancer) EnhanceNoteAudio(ctx context.Context, note ankiconnect.Note) error {
	korean := note.FieldValue(FieldFront)
	if korean == "" {
		fmt.Fprintln(a.out, "No Korean text found in note")
		return nil
	}

	fmt.Fprintf(a.out, "Generating audio for: %s\n", korean)
	audioPath, err := a.synth.Synthesize(ctx, korean)
	if err != nil {
		return fmt.Errorf("failed to generate audio: %w", err)
	}

	filename := mediaFilename(note.ID, a.now())
	if err := a.store.StoreMediaFile(ctx, filename, audioPath); err != nil {
		return fmt.Errorf("failed to store audio file: %w", err)
	}

	soundTag := fmt.Sprintf("[sound:%s]", filename)
	if err := a.store.UpdateNoteFields(ctx, note.ID, map[string]string{FieldAudio: soundTag}); err != nil {
		return fmt.Errorf("failed to update audio field: %w", err)
	}

	fmt.Fprintln(a.out, "Successfully added audio to note")
	return nil
}

// EnhanceNotesAudio processes notes in order, stopping at the first failure.
func (a *AudioEnhancer) EnhanceNotesAudio(ctx context.Context, notes []ankiconnect.Note) error {
	for _, note := range notes {
		if err := a.EnhanceNoteAudio(ctx, note); err != nil {
			return err
		}
	}
	return nil
}

// mediaFilename derives a collision-free media name from the note identifier
// and the current time.
func mediaFilename(noteID int64, now time.Time) string {
	return fmt.Sprintf("note_%d_%d.mp3", noteID, now.UnixMilli())
}
