package enhance

import (
	"context"
	"errors"
	"math/rand"

	"codeberg.org/snonux/hanki/internal/ai"
	"codeberg.org/snonux/hanki/internal/ankiconnect"
)

// maxSentenceCandidates caps how many word pairs are offered to the model
// for narrowing down.
const maxSentenceCandidates = 10

// SentenceGenerator narrows candidate words and composes a sentence from
// them.
type SentenceGenerator interface {
	SelectCombinableWords(ctx context.Context, candidates []ai.WordPair) ([]ai.WordPair, string, error)
	ComposeSentence(ctx context.Context, words []ai.WordPair) (*ai.Sentence, error)
}

// PracticeResult is the outcome of one practice sentence generation.
type PracticeResult struct {
	Words    []ai.WordPair
	Reason   string
	Sentence ai.Sentence
}

// ErrNoNotes means the deck holds no notes to build a sentence from.
var ErrNoNotes = errors.New("no notes found in this deck")

// GeneratePractice samples up to ten word pairs from the deck's notes
// uniformly without replacement, has the model narrow them to a combinable
// subset and composes a practice sentence from it. Unlike batch
// enhancement, any step failing aborts the whole operation.
func GeneratePractice(ctx context.Context, gen SentenceGenerator, notes []ankiconnect.Note, rng *rand.Rand) (*PracticeResult, error) {
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}

	words := make([]ai.WordPair, len(notes))
	for i, note := range notes {
		words[i] = ai.WordPair{
			Korean:  note.FieldValue(FieldFront),
			English: note.FieldValue(FieldBack),
		}
	}

	candidates := sampleWords(words, maxSentenceCandidates, rng)

	selected, reason, err := gen.SelectCombinableWords(ctx, candidates)
	if err != nil {
		return nil, err
	}

	sentence, err := gen.ComposeSentence(ctx, selected)
	if err != nil {
		return nil, err
	}

	return &PracticeResult{Words: selected, Reason: reason, Sentence: *sentence}, nil
}

// sampleWords picks up to count words uniformly without replacement.
func sampleWords(words []ai.WordPair, count int, rng *rand.Rand) []ai.WordPair {
	if count > len(words) {
		count = len(words)
	}
	sampled := make([]ai.WordPair, 0, count)
	for _, i := range rng.Perm(len(words))[:count] {
		sampled = append(sampled, words[i])
	}
	return sampled
}
