package widget

import (
	"errors"
	"sync"
)

// fakeTree records every mutation made by the widget
type fakeTree struct {
	mu       sync.Mutex
	open     bool
	focused  int
	input    string
	enabled  bool
	typing   bool
	messages []MessageNode
	scrolls  int
	// log keeps the call order for ordering assertions
	log []string
}

func newFakeTree() *fakeTree {
	return &fakeTree{enabled: true}
}

func (f *fakeTree) record(op string) {
	f.log = append(f.log, op)
}

func (f *fakeTree) SetOpen(open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = open
	f.record("open")
}

func (f *fakeTree) FocusInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused++
	f.record("focus")
}

func (f *fakeTree) InputValue() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

func (f *fakeTree) ClearInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = ""
	f.record("clear")
}

func (f *fakeTree) SetInputEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
	if enabled {
		f.record("enable")
	} else {
		f.record("disable")
	}
}

func (f *fakeTree) SetTyping(visible bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing = visible
	if visible {
		f.record("typing-on")
	} else {
		f.record("typing-off")
	}
}

func (f *fakeTree) AppendMessage(node MessageNode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, node)
	f.record("append-" + string(node.Sender))
}

func (f *fakeTree) ScrollToBottom() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrolls++
	f.record("scroll")
}

func (f *fakeTree) setInput(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = s
}

func (f *fakeTree) snapshot() ([]MessageNode, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := append([]MessageNode(nil), f.messages...)
	log := append([]string(nil), f.log...)
	return msgs, log
}

func (f *fakeTree) focusCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused
}

// fakeEvents captures the registered handlers
type fakeEvents struct {
	open, close, submit func()
}

func (e *fakeEvents) OnOpen(h func())   { e.open = h }
func (e *fakeEvents) OnClose(h func())  { e.close = h }
func (e *fakeEvents) OnSubmit(h func()) { e.submit = h }

// fakeClipboard stores the last written text
type fakeClipboard struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	c.writes++
	return nil
}

func (c *fakeClipboard) contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

var errUnavailable = errors.New("clipboard unavailable")
