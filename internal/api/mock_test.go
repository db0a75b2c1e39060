package api

import (
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// MockHTTPDoer is a mock implementation of HTTPDoer for testing
type MockHTTPDoer struct {
	Response *fhttp.Response
	Err      error

	Requests    int
	LastRequest *fhttp.Request
	LastBody    []byte
}

// Do implements the HTTPDoer interface
func (m *MockHTTPDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.Requests++
	m.LastRequest = req
	if req.Body != nil {
		m.LastBody, _ = io.ReadAll(req.Body)
	}
	return m.Response, m.Err
}

// NewMockHTTPDoer creates a new MockHTTPDoer with a canned response
func NewMockHTTPDoer(body []byte, statusCode int) *MockHTTPDoer {
	return &MockHTTPDoer{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Body:       NewMockResponseBody(body),
			Header:     make(fhttp.Header),
		},
	}
}

// NewMockHTTPDoerWithError creates a new MockHTTPDoer that returns an error
func NewMockHTTPDoerWithError(err error) *MockHTTPDoer {
	return &MockHTTPDoer{Err: err}
}
