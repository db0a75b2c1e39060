// Package api provides the chat backend client used by the widget.
package api

// GJSON paths for extracting values from chat backend responses.
const (
	// PathResponse holds the reply text on success
	PathResponse = "response"

	// PathError holds a backend-reported failure description
	PathError = "error"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 4 << 20

// maxErrorBodyBytes bounds how much body is kept on an APIError
const maxErrorBodyBytes = 512
