package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// HTTPEncoder calls a remote sentence-embedding endpoint. The endpoint takes
// {"texts": [...]} and answers {"embeddings": [[...], ...]} with one vector
// per input text, in order.
type HTTPEncoder struct {
	endpoint string
	client   *http.Client
}

func NewHTTPEncoder(endpoint string, timeout time.Duration) *HTTPEncoder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPEncoder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type encodeRequest struct {
	Texts []string `json:"texts"`
}

type encodeResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

func (e *HTTPEncoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(encodeRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("embedding endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var decoded encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(decoded.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding endpoint returned %d vectors for %d texts", len(decoded.Embeddings), len(texts))
	}
	return decoded.Embeddings, nil
}

var (
	encoderOnce sync.Once
	encoder     *HTTPEncoder
)

// LoadEncoder returns the process-wide sentence encoder. The first call
// probes the configured endpoint; a missing endpoint or failed probe leaves
// the capability absent for the process lifetime. Safe to call from
// concurrent requests.
func LoadEncoder(endpoint string, timeout time.Duration) (*HTTPEncoder, bool) {
	encoderOnce.Do(func() {
		if endpoint == "" {
			return
		}
		candidate := NewHTTPEncoder(endpoint, timeout)
		ctx, cancel := context.WithTimeout(context.Background(), candidate.client.Timeout)
		defer cancel()
		if _, err := candidate.Encode(ctx, []string{"probe"}); err != nil {
			log.Printf("Embedding endpoint unavailable, capability disabled: %v", err)
			return
		}
		encoder = candidate
	})
	return encoder, encoder != nil
}
