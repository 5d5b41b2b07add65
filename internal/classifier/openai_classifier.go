package classifier

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClassifier is an alternative provider backed by the OpenAI moderation
// endpoint. A fragment is labeled 1 when any self-harm category is flagged.
// The moderation API scores one input per call, so fragments are submitted
// individually.
type OpenAIClassifier struct {
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAIClassifier(apiKey string, logger *zap.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		logger: logger,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, texts []string) ([]int, error) {
	labels := make([]int, len(texts))
	for i, text := range texts {
		resp, err := c.client.Moderations(ctx, openai.ModerationRequest{
			Model: openai.ModerationTextStable,
			Input: text,
		})
		if err != nil {
			return nil, fmt.Errorf("error calling moderation endpoint: %v", err)
		}
		if len(resp.Results) == 0 {
			return nil, fmt.Errorf("moderation endpoint returned no results")
		}

		cats := resp.Results[0].Categories
		if cats.SelfHarm || cats.SelfHarmIntent || cats.SelfHarmInstructions {
			labels[i] = 1
		}
	}
	return labels, nil
}
