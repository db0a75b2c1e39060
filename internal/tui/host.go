package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/tutorchat/internal/widget"
)

// Messages forwarded from the widget to the bubbletea event loop
type (
	setOpenMsg struct {
		open bool
	}
	focusInputMsg    struct{}
	clearInputMsg    struct{}
	inputEnabledMsg  struct{ enabled bool }
	typingMsg        struct{ visible bool }
	appendMessageMsg struct {
		node widget.MessageNode
	}
	scrollBottomMsg struct{}
	// copyLabelMsg asks for a redraw after a copy control changed label
	copyLabelMsg struct{}
)

// Host adapts a bubbletea program to the widget's UITree and EventSource.
//
// Tree mutations become tea messages delivered through the send function.
// Handlers must never run inside Update: program.Send blocks until the event
// loop reads it, so the Model fires them from commands.
type Host struct {
	mu    sync.Mutex
	send  func(tea.Msg)
	input string

	onOpen   func()
	onClose  func()
	onSubmit func()
}

// Ensure Host implements the widget capabilities
var (
	_ widget.UITree      = (*Host)(nil)
	_ widget.EventSource = (*Host)(nil)
)

// NewHost creates a host. Call Attach before the program runs.
func NewHost() *Host {
	return &Host{}
}

// Attach sets the function used to deliver messages, usually program.Send
func (h *Host) Attach(send func(tea.Msg)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.send = send
}

func (h *Host) emit(msg tea.Msg) {
	h.mu.Lock()
	send := h.send
	h.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// SetOpen implements widget.UITree
func (h *Host) SetOpen(open bool) { h.emit(setOpenMsg{open: open}) }

// FocusInput implements widget.UITree
func (h *Host) FocusInput() { h.emit(focusInputMsg{}) }

// InputValue implements widget.UITree. The Model mirrors the textarea here.
func (h *Host) InputValue() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input
}

// ClearInput implements widget.UITree
func (h *Host) ClearInput() {
	h.setInput("")
	h.emit(clearInputMsg{})
}

// SetInputEnabled implements widget.UITree
func (h *Host) SetInputEnabled(enabled bool) { h.emit(inputEnabledMsg{enabled: enabled}) }

// SetTyping implements widget.UITree
func (h *Host) SetTyping(visible bool) { h.emit(typingMsg{visible: visible}) }

// AppendMessage implements widget.UITree
func (h *Host) AppendMessage(node widget.MessageNode) { h.emit(appendMessageMsg{node: node}) }

// ScrollToBottom implements widget.UITree
func (h *Host) ScrollToBottom() { h.emit(scrollBottomMsg{}) }

// CopyChanged is passed to widget.WithCopyChangeHandler so label flips redraw
func (h *Host) CopyChanged(*widget.CopyControl) { h.emit(copyLabelMsg{}) }

// OnOpen implements widget.EventSource
func (h *Host) OnOpen(handler func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOpen = handler
}

// OnClose implements widget.EventSource
func (h *Host) OnClose(handler func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClose = handler
}

// OnSubmit implements widget.EventSource
func (h *Host) OnSubmit(handler func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSubmit = handler
}

func (h *Host) setInput(value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = value
}

// fire returns a command running the handler selected by pick
func (h *Host) fire(pick func(*Host) func()) tea.Cmd {
	return func() tea.Msg {
		h.mu.Lock()
		handler := pick(h)
		h.mu.Unlock()
		if handler != nil {
			handler()
		}
		return nil
	}
}

func (h *Host) openCmd() tea.Cmd   { return h.fire(func(h *Host) func() { return h.onOpen }) }
func (h *Host) closeCmd() tea.Cmd  { return h.fire(func(h *Host) func() { return h.onClose }) }
func (h *Host) submitCmd() tea.Cmd { return h.fire(func(h *Host) func() { return h.onSubmit }) }
