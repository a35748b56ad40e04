package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ProxyProvider sends the transcript to a stateless completion proxy that
// holds the provider credential. No authentication material is sent.
type ProxyProvider struct {
	url    string
	model  string
	client *http.Client
}

// NewProxyProvider creates a provider for the proxy at url. An empty model
// leaves the choice to the proxy. A nil client uses http.DefaultClient.
func NewProxyProvider(url string, model string, client *http.Client) *ProxyProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &ProxyProvider{
		url:    url,
		model:  model,
		client: client,
	}
}

func (p *ProxyProvider) Name() string {
	return "proxy"
}

// proxyRequest is the proxy contract: {messages, max_tokens?, temperature?}.
// Model is only sent when one is configured for the proxy.
type proxyRequest struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type proxyResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (p *ProxyProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(proxyRequest{
		Model:       model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp.StatusCode, errorMessage(respBody))
	}

	var parsed proxyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, malformed("decoding response: %v", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil || parsed.Choices[0].Message.Content == "" {
		return nil, malformed("response has no choices[0].message.content")
	}

	return &CompletionResponse{
		Content:      parsed.Choices[0].Message.Content,
		InputTokens:  parsed.Usage.PromptTokens,
		OutputTokens: parsed.Usage.CompletionTokens,
		Model:        parsed.Model,
		FinishReason: parsed.Choices[0].FinishReason,
	}, nil
}

// errorMessage extracts the error text from an error-shaped body:
// {"error":{"message":"..."}} or {"error":"..."}.
func errorMessage(body []byte) string {
	var shaped struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &shaped); err != nil || len(shaped.Error) == 0 {
		return ""
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(shaped.Error, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}

	var s string
	if err := json.Unmarshal(shaped.Error, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}
