package classifier

import (
	"context"
	"strings"
)

// Classifier labels each text fragment with 1 (at risk) or 0 (safe).
// The returned slice has the same length and order as the input.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]int, error)
}

// KeywordClassifier is a local phrase matcher with no network dependency,
// used in development mode and as the test double of choice. It is far less
// accurate than the model-backed classifiers and errs on the side of flagging.
type KeywordClassifier struct {
	phrases []string
}

var defaultPhrases = []string{
	"kill myself",
	"end my life",
	"want to die",
	"want to end it",
	"no reason to live",
	"better off without me",
	"hurt myself",
	"self harm",
	"suicide",
	"suicidal",
}

func NewKeywordClassifier(extra ...string) *KeywordClassifier {
	return &KeywordClassifier{phrases: append(append([]string{}, defaultPhrases...), extra...)}
}

func (c *KeywordClassifier) Classify(_ context.Context, texts []string) ([]int, error) {
	labels := make([]int, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		for _, phrase := range c.phrases {
			if strings.Contains(lower, phrase) {
				labels[i] = 1
				break
			}
		}
	}
	return labels, nil
}
