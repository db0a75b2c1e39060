// Package models contains data types and constants for the tutor chat widget
// and its backend endpoint.
package models

// Endpoint paths and defaults for the chat backend
const (
	DefaultEndpoint = "http://localhost:8000"
	ChatPath        = "/api/chat/"
)

// User-visible texts
const (
	// FallbackMessage is shown when the exchange fails for any reason other
	// than a backend-reported error.
	FallbackMessage = "Sorry, something went wrong. Please try again."

	// ErrorPrefix is prepended to backend-reported errors.
	ErrorPrefix = "Error: "
)

// Backend endpoint error texts
const (
	ErrTextInvalidMethod = "Invalid request method"
	ErrTextNoMessage     = "No message provided"
	ErrTextNoAPIKey      = "Server configuration error: API Key missing"
)

// Generator defaults
const (
	DefaultGeneratorBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultGeneratorModel   = "gemini-2.0-flash-lite-001"
)

// TutorSystemPrompt scopes the backend model to engineering coursework.
const TutorSystemPrompt = `You are an AI tutor for engineering students on a job portal.
Your SOLE purpose is to help students learn and study engineering concepts.

RULES:
1. ONLY answer questions related to engineering, science, math, and coursework.
2. If a user asks about job applications, resumes, account issues, or general life advice, POLITELY REFUSE and explain that you are only here to help with engineering studies.
3. Provide clear, simple explanations for difficult concepts.
4. If asked, generate practice questions for engineering topics.
5. Do not provide code for entire assignments, but explain the logic or syntax.

Example Refusal: "I apologize, but I am designed specifically to help with engineering studies and coursework. For job application support, please check the FAQ or Contact section."`

// DefaultHeaders returns the default headers for chat requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "tutorchat/0.1",
	}
}
