package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MockResponse is one scripted reply for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted responses in order and records every
// request it receives. With the script exhausted it reports the
// provider as unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
}

// NewMockProvider creates a provider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewMockProviderFromConfig loads the scripted replies named by cfg. An
// empty ResponsesFile gives a provider with nothing to replay.
func NewMockProviderFromConfig(cfg MockConfig) (*MockProvider, error) {
	if cfg.ResponsesFile == "" {
		return NewMockProvider(), nil
	}
	raw, err := os.ReadFile(cfg.ResponsesFile)
	if err != nil {
		return nil, fmt.Errorf("read mock responses: %w", err)
	}
	var contents []json.RawMessage
	if err := json.Unmarshal(raw, &contents); err != nil {
		return nil, fmt.Errorf("parse mock responses %s: %w", cfg.ResponsesFile, err)
	}
	responses := make([]MockResponse, len(contents))
	for i, c := range contents {
		responses[i] = MockResponse{Content: c}
	}
	return NewMockProvider(responses...), nil
}

func (m *MockProvider) Name() string    { return ProviderMock }
func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, next.Content, next.Usage, "mock", StopEnd)
}

// AddResponse queues another scripted reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns a copy of the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
