package enhance

import (
	"context"
	"fmt"

	"codeberg.org/snonux/hanki/internal/ai"
	"codeberg.org/snonux/hanki/internal/ankiconnect"
)

// NoteStore is the subset of the AnkiConnect client the workflows write
// through.
type NoteStore interface {
	UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error
	AddTags(ctx context.Context, ids []int64, tags ...string) error
	RemoveTags(ctx context.Context, ids []int64, tags ...string) error
	StoreMediaFile(ctx context.Context, filename, path string) error
}

// FieldGenerator produces card metadata for a word pair.
type FieldGenerator interface {
	GenerateFields(ctx context.Context, korean, english string) (*ai.CardFields, error)
}

// Enhancer runs AI enhancement over notes.
type Enhancer struct {
	store     NoteStore
	generator FieldGenerator
}

// NewEnhancer creates an enhancer writing through store with content from
// generator.
func NewEnhancer(store NoteStore, generator FieldGenerator) *Enhancer {
	return &Enhancer{store: store, generator: generator}
}

// EnhanceNote generates the requested metadata for one note and writes it
// back. Only requested fields the model actually produced are written; the
// note's other fields are untouched. The leech tag is applied last when
// requested.
func (e *Enhancer) EnhanceNote(ctx context.Context, note ankiconnect.Note, opts Options) error {
	front := note.FieldValue(FieldFront)
	back := note.FieldValue(FieldBack)

	generated, err := e.generator.GenerateFields(ctx, front, back)
	if err != nil {
		return fmt.Errorf("failed to enhance note: %w", err)
	}

	updated := mergeFields(generated, opts)
	if len(updated) > 0 {
		if err := e.store.UpdateNoteFields(ctx, note.ID, updated); err != nil {
			return fmt.Errorf("failed to enhance note: %w", err)
		}
	}

	if opts.AddLeechTag {
		if err := e.store.AddTags(ctx, []int64{note.ID}, LeechTag); err != nil {
			return fmt.Errorf("failed to enhance note: %w", err)
		}
	}
	return nil
}

// Failure records one note's error during a batch run.
type Failure struct {
	Note ankiconnect.Note
	Err  error
}

// BatchResult summarizes a batch run. Attempted always equals the number of
// selected notes: processing continues past failures.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failures  []Failure
}

// ProgressFunc is called before each note is processed, with the 1-based
// position and the total count.
type ProgressFunc func(position, total int, note ankiconnect.Note)

// EnhanceBatch enhances the given notes sequentially, sharing one set of
// options. Each note's full cycle, including its write-back, completes
// before the next note starts. Per-note failures are collected, never
// propagated mid-run.
func (e *Enhancer) EnhanceBatch(ctx context.Context, notes []ankiconnect.Note, opts Options, progress ProgressFunc) BatchResult {
	result := BatchResult{}

	for i, note := range notes {
		if progress != nil {
			progress(i+1, len(notes), note)
		}
		result.Attempted++

		if err := e.EnhanceNote(ctx, note, opts); err != nil {
			result.Failures = append(result.Failures, Failure{Note: note, Err: err})
			continue
		}
		result.Succeeded++
	}

	return result
}

// DefaultSelection returns the indices of notes to pre-check in the
// multi-note picker: those with no Examples content yet.
func DefaultSelection(notes []ankiconnect.Note) []int {
	var selected []int
	for i, note := range notes {
		if !note.HasField(FieldExamples) {
			selected = append(selected, i)
		}
	}
	return selected
}
