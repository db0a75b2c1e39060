package models

// ChatRequest is the body posted to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by the chat endpoint. Exactly one of the
// fields is set.
type ChatResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HasError reports whether the backend reported an application error
func (r *ChatResponse) HasError() bool {
	return r != nil && r.Error != ""
}

// DisplayText returns the text the widget shows for this response
func (r *ChatResponse) DisplayText() string {
	if r == nil {
		return ""
	}
	if r.HasError() {
		return ErrorPrefix + r.Error
	}
	return r.Response
}
