// Package widget implements the chat widget controller: it opens and closes
// the chat window, sends user text to the backend and renders replies into
// a host-provided UI tree.
package widget

import "github.com/diogo/tutorchat/internal/models"

// UITree is the host's chat window. The widget is its only writer.
type UITree interface {
	SetOpen(open bool)
	FocusInput()
	InputValue() string
	ClearInput()
	// SetInputEnabled toggles both the input field and the send control
	SetInputEnabled(enabled bool)
	SetTyping(visible bool)
	AppendMessage(node MessageNode)
	ScrollToBottom()
}

// EventSource delivers user interactions to registered handlers
type EventSource interface {
	OnOpen(handler func())
	OnClose(handler func())
	OnSubmit(handler func())
}

// MessageNode is one message element appended to the tree.
//
// User messages carry Text only. Bot messages also carry the formatted HTML
// fragment and one copy control per code block, in document order.
type MessageNode struct {
	ID           string
	Sender       models.Sender
	Text         string
	HTML         string
	CopyControls []*CopyControl
}

// IsBot reports whether the node holds a bot message
func (n MessageNode) IsBot() bool {
	return n.Sender == models.SenderBot
}
