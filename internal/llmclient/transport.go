package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// generateResponse is the JSON shape returned by POST /generate.
type generateResponse struct {
	Text         string `json:"text"`
	ModelVersion string `json:"model_version,omitempty"`
}

// doGenerate sends POST /generate to baseURL and returns the completion text.
// The caller owns the context deadline; no timeout is set here.
func doGenerate(ctx context.Context, baseURL string, req *GenerateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned %d", resp.StatusCode)
	}

	var decoded generateResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	return strings.TrimSpace(decoded.Text), nil
}

// doHealth calls GET /health at baseURL.
func doHealth(ctx context.Context, baseURL string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}
	return nil
}
