package testutil

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/hanki/internal/ai"
)

// FakeStore records write operations against the note store.
type FakeStore struct {
	UpdatedFields map[int64]map[string]string
	AddedTags     []string
	RemovedTags   []string
	StoredMedia   map[string]string // filename -> source path
	Calls         []string

	// UpdateErr fails UpdateNoteFields for the listed note ids.
	UpdateErr map[int64]error
}

// NewFakeStore returns an empty recording store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		UpdatedFields: make(map[int64]map[string]string),
		StoredMedia:   make(map[string]string),
		UpdateErr:     make(map[int64]error),
	}
}

func (s *FakeStore) UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error {
	s.Calls = append(s.Calls, fmt.Sprintf("updateNoteFields %d", id))
	if err, ok := s.UpdateErr[id]; ok {
		return err
	}
	if s.UpdatedFields[id] == nil {
		s.UpdatedFields[id] = make(map[string]string)
	}
	for name, value := range fields {
		s.UpdatedFields[id][name] = value
	}
	return nil
}

func (s *FakeStore) AddTags(ctx context.Context, ids []int64, tags ...string) error {
	s.Calls = append(s.Calls, fmt.Sprintf("addTags %v %s", ids, strings.Join(tags, " ")))
	s.AddedTags = append(s.AddedTags, tags...)
	return nil
}

func (s *FakeStore) RemoveTags(ctx context.Context, ids []int64, tags ...string) error {
	s.Calls = append(s.Calls, fmt.Sprintf("removeTags %v %s", ids, strings.Join(tags, " ")))
	s.RemovedTags = append(s.RemovedTags, tags...)
	return nil
}

func (s *FakeStore) StoreMediaFile(ctx context.Context, filename, path string) error {
	s.Calls = append(s.Calls, fmt.Sprintf("storeMediaFile %s", filename))
	s.StoredMedia[filename] = path
	return nil
}

// FakeFieldGenerator returns canned card fields, failing for words listed in
// FailFor.
type FakeFieldGenerator struct {
	Fields  ai.CardFields
	FailFor map[string]error
	Calls   []string
}

func (g *FakeFieldGenerator) GenerateFields(ctx context.Context, korean, english string) (*ai.CardFields, error) {
	g.Calls = append(g.Calls, korean)
	if err, ok := g.FailFor[korean]; ok {
		return nil, err
	}
	fields := g.Fields
	return &fields, nil
}

// FakeSynthesizer returns a canned audio file path.
type FakeSynthesizer struct {
	Path  string
	Err   error
	Calls []string
}

func (s *FakeSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	s.Calls = append(s.Calls, text)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Path, nil
}

// FakeSentenceGenerator scripts the two-step sentence generation.
type FakeSentenceGenerator struct {
	Selected   []ai.WordPair
	Reason     string
	SelectErr  error
	Sentence   ai.Sentence
	ComposeErr error

	SelectCalls  [][]ai.WordPair
	ComposeCalls [][]ai.WordPair
}

func (g *FakeSentenceGenerator) SelectCombinableWords(ctx context.Context, candidates []ai.WordPair) ([]ai.WordPair, string, error) {
	g.SelectCalls = append(g.SelectCalls, candidates)
	if g.SelectErr != nil {
		return nil, "", g.SelectErr
	}
	return g.Selected, g.Reason, nil
}

func (g *FakeSentenceGenerator) ComposeSentence(ctx context.Context, words []ai.WordPair) (*ai.Sentence, error) {
	g.ComposeCalls = append(g.ComposeCalls, words)
	if g.ComposeErr != nil {
		return nil, g.ComposeErr
	}
	sentence := g.Sentence
	return &sentence, nil
}

// ScriptedPrompter answers prompts from pre-recorded scripts. It satisfies
// the shell's Prompter interface.
type ScriptedPrompter struct {
	SelectAnswers      []int
	MultiSelectAnswers [][]int
	InputAnswers       []string

	Messages []string

	selectIdx, multiIdx, inputIdx int
}

func (p *ScriptedPrompter) Select(message string, choices []string) (int, error) {
	p.Messages = append(p.Messages, message)
	if p.selectIdx >= len(p.SelectAnswers) {
		return 0, fmt.Errorf("unscripted Select prompt: %s", message)
	}
	answer := p.SelectAnswers[p.selectIdx]
	p.selectIdx++
	return answer, nil
}

func (p *ScriptedPrompter) MultiSelect(message string, choices []string, checked []int) ([]int, error) {
	p.Messages = append(p.Messages, message)
	if p.multiIdx >= len(p.MultiSelectAnswers) {
		return nil, fmt.Errorf("unscripted MultiSelect prompt: %s", message)
	}
	answer := p.MultiSelectAnswers[p.multiIdx]
	p.multiIdx++
	if answer == nil {
		// nil scripts "accept the defaults".
		return checked, nil
	}
	return answer, nil
}

func (p *ScriptedPrompter) Input(message string) (string, error) {
	p.Messages = append(p.Messages, message)
	if p.inputIdx >= len(p.InputAnswers) {
		return "", fmt.Errorf("unscripted Input prompt: %s", message)
	}
	answer := p.InputAnswers[p.inputIdx]
	p.inputIdx++
	return answer, nil
}
