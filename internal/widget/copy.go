package widget

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/diogo/tutorchat/internal/format"
)

// Copy control labels
const (
	LabelCopy   = format.CopyLabel
	LabelCopied = "Copied!"
)

// DefaultCopyResetDelay is how long the Copied! label stays up
const DefaultCopyResetDelay = 2 * time.Second

// Clipboard writes text to the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the OS clipboard
type SystemClipboard struct{}

// WriteAll implements Clipboard
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// CopyControl is the copy button attached to one rendered code block
type CopyControl struct {
	block      format.CodeBlock
	clipboard  Clipboard
	resetDelay time.Duration
	onChange   func(*CopyControl)

	mu    sync.Mutex
	label string
	timer *time.Timer
}

// NewCopyControl creates a control for block. onChange may be nil.
func NewCopyControl(block format.CodeBlock, cb Clipboard, resetDelay time.Duration, onChange func(*CopyControl)) *CopyControl {
	if cb == nil {
		cb = SystemClipboard{}
	}
	if resetDelay <= 0 {
		resetDelay = DefaultCopyResetDelay
	}
	return &CopyControl{
		block:      block,
		clipboard:  cb,
		resetDelay: resetDelay,
		onChange:   onChange,
		label:      LabelCopy,
	}
}

// Language returns the code block's language tag
func (c *CopyControl) Language() string {
	return c.block.Language
}

// Code returns the unescaped code body the control copies
func (c *CopyControl) Code() string {
	return c.block.Code
}

// Label returns the current button label
func (c *CopyControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Activate copies the code body and shows Copied! until the reset delay
// passes. Activating again restarts the delay.
func (c *CopyControl) Activate() error {
	if err := c.clipboard.WriteAll(c.block.Code); err != nil {
		return err
	}

	c.mu.Lock()
	c.label = LabelCopied
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.resetDelay, c.reset)
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *CopyControl) reset() {
	c.mu.Lock()
	c.label = LabelCopy
	c.timer = nil
	c.mu.Unlock()

	c.notify()
}

func (c *CopyControl) notify() {
	if c.onChange != nil {
		c.onChange(c)
	}
}
