package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockDictionaryClient mocks the dictionary API client. It is safe for
// concurrent use and records the peak number of in-flight requests.
type MockDictionaryClient struct {
	Responses map[string]string
	Errors    map[string]error
	Delays    map[string]time.Duration
	Delay     time.Duration

	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int
}

// NewMockDictionaryClient creates a mock answering from responses
func NewMockDictionaryClient(responses map[string]string) *MockDictionaryClient {
	if responses == nil {
		responses = make(map[string]string)
	}
	return &MockDictionaryClient{
		Responses: responses,
		Errors:    make(map[string]error),
		Delays:    make(map[string]time.Duration),
	}
}

// Fetch mocks a dictionary lookup
func (m *MockDictionaryClient) Fetch(ctx context.Context, word string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, word)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	delay := m.Delay
	if d, ok := m.Delays[word]; ok {
		delay = d
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := m.Errors[word]; ok {
		return nil, err
	}
	if body, ok := m.Responses[word]; ok {
		return []byte(body), nil
	}
	return nil, fmt.Errorf("no mock response for %q", word)
}

// Calls returns the words fetched so far, in call order
func (m *MockDictionaryClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// MaxInFlight returns the highest number of concurrent Fetch calls seen
func (m *MockDictionaryClient) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}
