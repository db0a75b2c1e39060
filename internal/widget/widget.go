package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/diogo/tutorchat/internal/api"
	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/format"
	"github.com/diogo/tutorchat/internal/logging"
	"github.com/diogo/tutorchat/internal/models"
)

// DefaultFocusDelay is the pause between opening the window and focusing the input
const DefaultFocusDelay = 300 * time.Millisecond

// Widget drives a chat window through its UITree
type Widget struct {
	tree   UITree
	client api.ChatClient
	logger zerolog.Logger

	baseCtx        context.Context
	fallback       string
	focusDelay     time.Duration
	clipboard      Clipboard
	copyResetDelay time.Duration
	onCopyChange   func(*CopyControl)

	mu         sync.Mutex
	open       bool
	busy       bool
	focusTimer *time.Timer
}

// Option configures a Widget
type Option func(*Widget)

// WithLogger sets the diagnostics logger
func WithLogger(l zerolog.Logger) Option {
	return func(w *Widget) {
		w.logger = logging.Component(l, "widget")
	}
}

// WithFallbackMessage overrides the text shown when an exchange fails
func WithFallbackMessage(text string) Option {
	return func(w *Widget) {
		if text != "" {
			w.fallback = text
		}
	}
}

// WithFocusDelay overrides the input focus delay after opening
func WithFocusDelay(d time.Duration) Option {
	return func(w *Widget) {
		w.focusDelay = d
	}
}

// WithClipboard sets the clipboard used by copy controls
func WithClipboard(cb Clipboard) Option {
	return func(w *Widget) {
		w.clipboard = cb
	}
}

// WithCopyResetDelay overrides how long copy controls show Copied!
func WithCopyResetDelay(d time.Duration) Option {
	return func(w *Widget) {
		w.copyResetDelay = d
	}
}

// WithCopyChangeHandler is called whenever a copy control's label changes
func WithCopyChangeHandler(fn func(*CopyControl)) Option {
	return func(w *Widget) {
		w.onCopyChange = fn
	}
}

// WithBaseContext sets the context used for sends triggered by the event source
func WithBaseContext(ctx context.Context) Option {
	return func(w *Widget) {
		w.baseCtx = ctx
	}
}

// New creates a widget and registers its handlers on events
func New(tree UITree, events EventSource, client api.ChatClient, opts ...Option) *Widget {
	w := &Widget{
		tree:           tree,
		client:         client,
		logger:         logging.Nop(),
		baseCtx:        context.Background(),
		fallback:       models.FallbackMessage,
		focusDelay:     DefaultFocusDelay,
		clipboard:      SystemClipboard{},
		copyResetDelay: DefaultCopyResetDelay,
	}

	for _, opt := range opts {
		opt(w)
	}

	if events != nil {
		events.OnOpen(w.Open)
		events.OnClose(w.Close)
		events.OnSubmit(w.handleSubmit)
	}

	return w
}

// IsOpen reports whether the chat window is shown
func (w *Widget) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// IsBusy reports whether an exchange is in flight
func (w *Widget) IsBusy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Open shows the chat window and focuses the input after the focus delay
func (w *Widget) Open() {
	w.mu.Lock()
	w.open = true
	if w.focusTimer != nil {
		w.focusTimer.Stop()
	}
	w.focusTimer = time.AfterFunc(w.focusDelay, w.tree.FocusInput)
	w.mu.Unlock()

	w.tree.SetOpen(true)
	w.logger.Debug().Msg("chat window opened")
}

// Close hides the chat window. Messages are kept.
func (w *Widget) Close() {
	w.mu.Lock()
	w.open = false
	if w.focusTimer != nil {
		w.focusTimer.Stop()
		w.focusTimer = nil
	}
	w.mu.Unlock()

	w.tree.SetOpen(false)
	w.logger.Debug().Msg("chat window closed")
}

func (w *Widget) handleSubmit() {
	if err := w.Submit(w.baseCtx); err != nil {
		w.logger.Debug().Err(err).Msg("submit finished with error")
	}
}

// Submit sends the current input to the backend and appends the reply.
//
// Empty or whitespace-only input is ignored without a request. While an
// exchange is in flight Submit returns ErrBusy and sends nothing. Exchange
// failures are returned after the fallback message has been shown.
func (w *Widget) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return apierrors.ErrBusy
	}
	text := strings.TrimSpace(w.tree.InputValue())
	if text == "" {
		w.mu.Unlock()
		return nil
	}
	w.busy = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	w.AddMessage(text, models.SenderUser)
	w.tree.ClearInput()
	w.tree.SetInputEnabled(false)
	w.tree.SetTyping(true)
	w.tree.ScrollToBottom()

	resp, err := w.client.Send(ctx, text)

	w.tree.SetTyping(false)
	w.AddMessage(w.replyText(resp, err), models.SenderBot)
	w.tree.SetInputEnabled(true)
	w.tree.ScrollToBottom()

	return err
}

func (w *Widget) replyText(resp *models.ChatResponse, err error) string {
	switch {
	case err != nil:
		w.logger.Error().
			Err(err).
			Int("status", apierrors.GetHTTPStatus(err)).
			Str("endpoint", apierrors.GetEndpoint(err)).
			Msg("chat request failed")
		return w.fallback
	case resp == nil:
		w.logger.Error().Msg("chat request returned no response")
		return w.fallback
	case resp.HasError():
		w.logger.Warn().Str("backend_error", resp.Error).Msg("backend reported an error")
	}
	return resp.DisplayText()
}

// AddMessage appends a message to the tree and returns the node.
//
// User text is kept as plain text. Bot text is formatted and gets one copy
// control per code block.
func (w *Widget) AddMessage(text string, sender models.Sender) MessageNode {
	msg := models.NewMessage(text, sender)
	node := MessageNode{
		ID:     msg.ID,
		Sender: msg.Sender,
		Text:   msg.Text,
	}

	if msg.IsBot() {
		var blocks []format.CodeBlock
		node.HTML, blocks = format.FormatBlocks(text)
		for _, block := range blocks {
			node.CopyControls = append(node.CopyControls,
				NewCopyControl(block, w.clipboard, w.copyResetDelay, w.onCopyChange))
		}
	}

	w.tree.AppendMessage(node)
	return node
}
