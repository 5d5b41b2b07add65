package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// HTTPClassifier calls the external risk-detection service: a single
// POST /predict endpoint taking {"texts": [...]} and answering
// {"predictions": [...]} with positional correspondence.
//
// The call carries a bounded timeout and sits behind a circuit breaker so a
// down classifier degrades quickly instead of stalling content creation.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

type predictRequest struct {
	Texts []string `json:"texts"`
}

type predictResponse struct {
	Predictions []int `json:"predictions"`
}

func NewHTTPClassifier(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "risk-classifier",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("classifier breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &HTTPClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, texts []string) ([]int, error) {
	if len(texts) == 0 {
		return []int{}, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.predict(ctx, texts)
	})
	if err != nil {
		return nil, err
	}
	return result.([]int), nil
}

func (c *HTTPClassifier) predict(ctx context.Context, texts []string) ([]int, error) {
	body, err := json.Marshal(predictRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("error encoding classify request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building classify request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling classifier: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %s", resp.Status)
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("error decoding classifier response: %v", err)
	}

	// Labels align positionally with the input; anything else is malformed.
	if len(decoded.Predictions) != len(texts) {
		return nil, fmt.Errorf("classifier returned %d predictions for %d texts",
			len(decoded.Predictions), len(texts))
	}

	return decoded.Predictions, nil
}
