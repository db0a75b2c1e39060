package api

import (
	"context"
	"sync"

	"github.com/diogo/tutorchat/internal/models"
)

// MockClient is a mock implementation of ChatClient for testing
type MockClient struct {
	// Mock return values
	SendVal  *models.ChatResponse
	SendErr  error
	SendFunc func(ctx context.Context, message string) (*models.ChatResponse, error)

	mu          sync.Mutex
	calls       int
	lastMessage string
	closed      bool
}

// Ensure MockClient implements ChatClient
var _ ChatClient = (*MockClient)(nil)

func (m *MockClient) Send(ctx context.Context, message string) (*models.ChatResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastMessage = message
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	return m.SendVal, m.SendErr
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Calls returns how many times Send was called
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastMessage returns the message passed to the most recent Send
func (m *MockClient) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastMessage
}

// Closed reports whether Close was called
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
