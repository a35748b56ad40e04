// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/ziadkadry99/beauty-advisor/internal/llm"
)

// Provider records requests and answers from a script. Each call consumes
// the next reply; once the script is exhausted Content and Err are used.
type Provider struct {
	mu      sync.Mutex
	calls   []llm.CompletionRequest
	script  []Reply
	Content string
	Err     error
}

// Reply is one scripted outcome.
type Reply struct {
	Content string
	Err     error
}

// New returns a provider that always answers content.
func New(content string) *Provider {
	return &Provider{Content: content}
}

// Failing returns a provider that always fails with err.
func Failing(err error) *Provider {
	return &Provider{Err: err}
}

// Then queues a reply.
func (p *Provider) Then(content string, err error) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = append(p.script, Reply{Content: content, Err: err})
	return p
}

func (p *Provider) Name() string { return "mock" }

func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := make([]llm.Message, len(req.Messages))
	copy(msgs, req.Messages)
	req.Messages = msgs
	p.calls = append(p.calls, req)

	reply := Reply{Content: p.Content, Err: p.Err}
	if len(p.script) > 0 {
		reply, p.script = p.script[0], p.script[1:]
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return &llm.CompletionResponse{Content: reply.Content, Model: "mock-model", FinishReason: "stop"}, nil
}

// Calls returns the recorded requests.
func (p *Provider) Calls() []llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]llm.CompletionRequest, len(p.calls))
	copy(out, p.calls)
	return out
}

// LastCall returns the most recent request. It panics when there is none.
func (p *Provider) LastCall() llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[len(p.calls)-1]
}
