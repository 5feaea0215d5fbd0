package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"quest-client/internal/domain"
)

const maxErrorBody = 512

// Client talks to the remote verification service. It keeps no state between calls.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client for baseURL. A zero timeout means no client-side limit.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type batchRequest struct {
	Answers []domain.AnswerEntry `json:"answers"`
}

type proofRequest struct {
	Points int `json:"points"`
}

type proofResponse struct {
	Success            bool   `json:"success"`
	VerificationResult string `json:"verification_result,omitempty"`
	VK                 string `json:"vk,omitempty"`
	PublicValues       string `json:"public_values,omitempty"`
}

// SubmitBatch posts every answer slot to /verify-batch. It makes exactly one attempt.
func (c *Client) SubmitBatch(ctx context.Context, entries []domain.AnswerEntry) (domain.VerificationResponse, error) {
	var resp domain.VerificationResponse
	if err := c.post(ctx, "/verify-batch", batchRequest{Answers: entries}, &resp); err != nil {
		return domain.VerificationResponse{}, err
	}
	return resp, nil
}

// GenerateProof posts the score to /generate-proof. success=false is returned
// as a negative result, not an error.
func (c *Client) GenerateProof(ctx context.Context, points int) (domain.ProofResult, error) {
	var resp proofResponse
	if err := c.post(ctx, "/generate-proof", proofRequest{Points: points}, &resp); err != nil {
		return domain.ProofResult{}, err
	}
	if !resp.Success {
		return domain.ProofResult{}, nil
	}
	return domain.ProofResult{
		Success: true,
		Artifact: domain.ProofArtifact{
			VerificationResult: resp.VerificationResult,
			VerificationKey:    resp.VK,
			PublicValues:       resp.PublicValues,
		},
	}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", domain.ErrNetwork, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrNetwork, path, err)
	}
	defer res.Body.Close()

	c.logger.Debug("verifier call", "path", path, "status", res.StatusCode, "request_id", requestID, "elapsed", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: status %d: %s", domain.ErrNetwork, path, res.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrNetwork, path, err)
	}
	return nil
}
