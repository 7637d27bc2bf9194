package enhance

import "codeberg.org/snonux/hanki/internal/ai"

// Note field names used by the Korean vocabulary template. Front and Back
// are the identity fields and are never written by enhancement.
const (
	FieldFront             = "Front"
	FieldBack              = "Back"
	FieldType              = "Type"
	FieldExamples          = "Examples"
	FieldPhonetics         = "Phonetics"
	FieldRelatedWordsRules = "Related Words/Rules"
	FieldConjugations      = "Conjugations"
	FieldIrregularRules    = "Irregular Rules"
	FieldAdditionalRules   = "Additional Rules"
	FieldAudio             = "Audio"
)

// LeechTag marks notes the user wants to revisit.
const LeechTag = "leech"

// Options selects which metadata fields one enhancement run generates. It is
// built once per run from user input and not mutated afterwards.
type Options struct {
	Type              bool
	Examples          bool
	RelatedWordsRules bool
	Conjugations      bool
	IrregularRules    bool
	AdditionalRules   bool
	Phonetics         bool
	AddLeechTag       bool
}

// AllFields returns options with every metadata field enabled and no leech
// tag, matching the default checkbox state of the field picker.
func AllFields() Options {
	return Options{
		Type:              true,
		Examples:          true,
		RelatedWordsRules: true,
		Conjugations:      true,
		IrregularRules:    true,
		AdditionalRules:   true,
		Phonetics:         true,
	}
}

// mergeFields builds the field update for a note from the generated content,
// keeping only fields that are both requested and non-empty.
func mergeFields(generated *ai.CardFields, opts Options) map[string]string {
	updated := make(map[string]string)

	if opts.Type && generated.Type != "" {
		updated[FieldType] = generated.Type
	}
	if opts.Phonetics && generated.Phonetics != "" {
		updated[FieldPhonetics] = generated.Phonetics
	}
	if opts.Examples && generated.Examples != "" {
		updated[FieldExamples] = generated.Examples
	}
	if opts.RelatedWordsRules && generated.RelatedWordsRules != "" {
		updated[FieldRelatedWordsRules] = generated.RelatedWordsRules
	}
	if opts.Conjugations && generated.Conjugations != "" {
		updated[FieldConjugations] = generated.Conjugations
	}
	if opts.IrregularRules && generated.IrregularRules != "" {
		updated[FieldIrregularRules] = generated.IrregularRules
	}
	if opts.AdditionalRules && generated.AdditionalRules != "" {
		updated[FieldAdditionalRules] = generated.AdditionalRules
	}

	return updated
}
