package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/tutorchat/internal/api"
	"github.com/diogo/tutorchat/internal/render"
	"github.com/diogo/tutorchat/internal/widget"
)

// copyResultMsg reports the outcome of a copy control activation
type copyResultMsg struct {
	language string
	err      error
}

// Options configures the chat window
type Options struct {
	// Endpoint is shown in the header
	Endpoint string
	// StartOpen opens the window on launch instead of showing the launcher
	StartOpen bool
	// ShowHTML shows bot messages as formatted HTML fragments
	ShowHTML bool
	Render   render.Options
}

// Model represents the TUI state
type Model struct {
	host *Host
	opts Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State mirrored from the widget
	open         bool
	inputEnabled bool
	typing       bool
	nodes        []widget.MessageNode

	ready    bool
	showHTML bool
	status   string
	err      error

	// rendered caches glamour output per message and width
	rendered map[string]string

	width  int
	height int
}

// NewModel creates a chat window driven through host
func NewModel(host *Host, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about your engineering coursework..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}

	return Model{
		host:         host,
		opts:         opts,
		textarea:     ta,
		spinner:      s,
		inputEnabled: true,
		showHTML:     opts.ShowHTML,
		rendered:     make(map[string]string),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.opts.StartOpen {
		cmds = append(cmds, m.host.openCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.open {
				return m, m.host.closeCmd()
			}
			return m, tea.Quit

		case "ctrl+o":
			if !m.open {
				return m, m.host.openCmd()
			}
			return m, nil

		case "enter":
			if m.open && m.inputEnabled {
				m.host.setInput(m.textarea.Value())
				m.status = ""
				m.err = nil
				return m, m.host.submitCmd()
			}
			return m, nil

		case "ctrl+y":
			return m, m.copyLastCode()

		case "ctrl+t":
			m.showHTML = !m.showHTML
			m.updateViewport()
			return m, nil
		}

		if m.open && m.inputEnabled {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
			m.host.setInput(m.textarea.Value())
		}

	case setOpenMsg:
		m.open = msg.open
		if !m.open {
			m.textarea.Blur()
		}

	case focusInputMsg:
		if m.open && m.inputEnabled {
			cmds = append(cmds, m.textarea.Focus())
		}

	case clearInputMsg:
		m.textarea.Reset()

	case inputEnabledMsg:
		m.inputEnabled = msg.enabled
		if m.inputEnabled && m.open {
			cmds = append(cmds, m.textarea.Focus())
		} else {
			m.textarea.Blur()
		}

	case typingMsg:
		m.typing = msg.visible
		if m.typing {
			cmds = append(cmds, m.spinner.Tick)
		}

	case appendMessageMsg:
		m.nodes = append(m.nodes, msg.node)
		m.updateViewport()

	case scrollBottomMsg:
		m.viewport.GotoBottom()

	case copyLabelMsg:
		m.updateViewport()

	case copyResultMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("copy failed: %w", msg.err)
		} else {
			m.status = fmt.Sprintf("Copied %s block to clipboard", msg.language)
		}

	case spinner.TickMsg:
		if m.typing {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if _, ok := msg.(tea.KeyMsg); ok && m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// copyLastCode activates the copy control of the most recent code block.
// Activation runs in a command since it notifies the host.
func (m Model) copyLastCode() tea.Cmd {
	for i := len(m.nodes) - 1; i >= 0; i-- {
		controls := m.nodes[i].CopyControls
		if len(controls) == 0 {
			continue
		}
		control := controls[len(controls)-1]
		return func() tea.Msg {
			return copyResultMsg{language: control.Language(), err: control.Activate()}
		}
	}
	return nil
}

func (m *Model) resize() {
	headerHeight := 3
	inputHeight := 5
	statusHeight := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Initializing...")
	}
	if !m.open {
		return m.renderLauncher()
	}

	contentWidth := m.width - 4
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ Engineering Tutor"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.Endpoint),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	var messages string
	if len(m.nodes) == 0 {
		messages = hintStyle.Render("Ask a question about engineering, science or math to get started.")
	} else {
		messages = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.Width(contentWidth).Height(m.viewport.Height).Render(messages))

	var input string
	if m.typing {
		input = m.spinner.View() + typingStyle.Render(" Tutor is typing...")
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left, inputLabelStyle.Render("You"), m.textarea.View())
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	} else if m.status != "" {
		sections = append(sections, copiedStyle.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLauncher() string {
	button := launcherStyle.Render("💬 Chat with the tutor")
	hint := hintStyle.Render("ctrl+o to open  •  esc to quit")
	content := lipgloss.JoinVertical(lipgloss.Right, button, hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Right, lipgloss.Bottom, content)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	view := "HTML"
	if m.showHTML {
		view = "Rendered"
	}
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy code"},
		{"Ctrl+T", view},
		{"Esc", "Close"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, node := range m.nodes {
		if i > 0 {
			content.WriteString("\n")
		}

		if !node.IsBot() {
			content.WriteString(userLabelStyle.Render("⬤ You") + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(node.Text))
			content.WriteString("\n")
			continue
		}

		content.WriteString(botLabelStyle.Render("✦ Tutor") + "\n")
		var body string
		if m.showHTML {
			body = htmlStyle.Render(node.HTML)
		} else {
			body = m.renderReply(node, bubbleWidth-4)
		}
		content.WriteString(botBubbleStyle.Width(bubbleWidth).Render(body))
		content.WriteString("\n")

		if chips := renderCopyControls(node.CopyControls); chips != "" {
			content.WriteString(chips)
			content.WriteString("\n")
		}
	}

	m.viewport.SetContent(content.String())
}

func (m *Model) renderReply(node widget.MessageNode, width int) string {
	key := fmt.Sprintf("%s:%d", node.ID, width)
	if out, ok := m.rendered[key]; ok {
		return out
	}
	out := render.Reply(node.Text, m.opts.Render.WithWidth(width))
	m.rendered[key] = out
	return out
}

func renderCopyControls(controls []*widget.CopyControl) string {
	if len(controls) == 0 {
		return ""
	}
	chips := make([]string, 0, len(controls))
	for _, c := range controls {
		label := c.Label()
		style := copyStyle
		if label == widget.LabelCopied {
			style = copiedStyle
		}
		chips = append(chips, style.Render("["+label+"]")+hintStyle.Render(" "+c.Language()))
	}
	return strings.Join(chips, "  ")
}

// RunChat starts the chat window and blocks until the user quits
func RunChat(ctx context.Context, client api.ChatClient, opts Options, widgetOpts ...widget.Option) error {
	host := NewHost()
	widgetOpts = append(widgetOpts,
		widget.WithBaseContext(ctx),
		widget.WithCopyChangeHandler(host.CopyChanged),
	)
	widget.New(host, host, client, widgetOpts...)

	p := tea.NewProgram(
		NewModel(host, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	host.Attach(p.Send)
	defer host.Attach(nil)

	_, err := p.Run()
	return err
}
