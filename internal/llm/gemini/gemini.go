// Package gemini adapts the llm.Generator port to the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moneta/internal/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ llm.Generator = (*Client)(nil)

func New(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type (
	request struct {
		Contents          []content         `json:"contents"`
		SystemInstruction *content          `json:"systemInstruction,omitempty"`
		GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	part struct {
		Text string `json:"text"`
	}

	generationConfig struct {
		ResponseMIMEType string      `json:"responseMimeType,omitempty"`
		ResponseSchema   *llm.Schema `json:"responseSchema,omitempty"`
	}

	// response carries the relevant slice of the generateContent envelope.
	// The payload is a nested text field that itself holds a JSON document
	// when a schema was requested.
	response struct {
		Candidates []struct {
			Content struct {
				Parts []part `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

// GenerateStructured requests a reply constrained to the given schema with
// an application/json response MIME type, and returns the inner text.
func (c *Client) GenerateStructured(ctx context.Context, credential, system, prompt string, schema *llm.Schema) (string, error) {
	req := request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	return c.generate(ctx, credential, req)
}

// GenerateText requests an unconstrained reply.
func (c *Client) GenerateText(ctx context.Context, credential, prompt string) (string, error) {
	return c.generate(ctx, credential, request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
}

func (c *Client) generate(ctx context.Context, credential string, req request) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", llm.ErrMissingCredential
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(credential))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &llm.TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.TransportError{Message: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &llm.TransportError{StatusCode: resp.StatusCode, Message: truncate(string(body), 512)}
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates", llm.ErrMalformedResponse)
	}
	text := strings.TrimSpace(envelope.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", llm.ErrMalformedResponse)
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
