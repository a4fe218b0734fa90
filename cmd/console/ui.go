package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/ravenlog/pkg/narrate"
)

// ConsoleUI is the BubbleTea model that follows one game's log.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	sseClient    *http.Client
	game         *GameResponse
	items        []LogItem
	prompt       *Prompt
	logViewport  viewport.Model
	metaViewport viewport.Model
	ready        bool
	width        int
	height       int
	err          error
	status       string
	connected    bool

	events chan SSEEvent
	ctx    context.Context
	cancel context.CancelFunc

	// Quit confirmation state
	showQuitModal bool
}

type sseEventMsg SSEEvent

type sseClosedMsg struct {
	err error
}

type promptMsg struct {
	prompt *Prompt
	err    error
}

type logMsg struct {
	items []LogItem
	err   error
}

type copiedMsg struct {
	err error
}

// appendedData is the payload of a log.appended event.
type appendedData struct {
	Index int `json:"index"`
	Entry struct {
		Time time.Time `json:"time"`
		Data struct {
			Type string `json:"type"`
		} `json:"data"`
	} `json:"entry"`
	Text string `json:"text"`
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, game *GameResponse, items []LogItem) ConsoleUI {
	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	ctx, cancel := context.WithCancel(context.Background())
	return ConsoleUI{
		config: cfg,
		client: client,
		// The stream stays open, so it must not share the request timeout.
		sseClient:    &http.Client{},
		game:         game,
		items:        items,
		logViewport:  logVp,
		metaViewport: metaVp,
		events:       make(chan SSEEvent, 16),
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.listen(), waitForEvent(m.events), m.refreshPrompt())
}

// listen runs the SSE stream until it ends. Events arrive through m.events.
func (m ConsoleUI) listen() tea.Cmd {
	return func() tea.Msg {
		return sseClosedMsg{err: listenToSSE(m.ctx, m.sseClient, m.config.APIBaseURL, m.game.ID, m.events)}
	}
}

func waitForEvent(events <-chan SSEEvent) tea.Cmd {
	return func() tea.Msg {
		return sseEventMsg(<-events)
	}
}

func (m ConsoleUI) refreshPrompt() tea.Cmd {
	return func() tea.Msg {
		p, err := fetchPrompt(m.client, m.config.APIBaseURL, m.game.ID, m.config.Viewer)
		return promptMsg{prompt: p, err: err}
	}
}

func (m ConsoleUI) refreshLog() tea.Cmd {
	return func() tea.Msg {
		items, err := fetchLog(m.client, m.config.APIBaseURL, m.game.ID)
		return logMsg{items: items, err: err}
	}
}

func (m ConsoleUI) sendChoice(target string) tea.Cmd {
	return func() tea.Msg {
		p, err := choose(m.client, m.config.APIBaseURL, m.game.ID, m.config.Viewer, target)
		return promptMsg{prompt: p, err: err}
	}
}

func copyLog(items []LogItem) tea.Cmd {
	text := plainLog(items)
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - logWidth - 6

		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 5
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4

		m.ready = true
		m.writeLogContent()
		m.logViewport.GotoBottom()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		}
		switch key := msg.String(); key {
		case "q":
			m.showQuitModal = true
			return m, nil
		case "c":
			return m, copyLog(m.items)
		case "r":
			m.status = "Reloading..."
			return m, tea.Batch(m.refreshLog(), m.refreshPrompt())
		default:
			if target, ok := optionForKey(m.prompt, key); ok {
				m.status = "Sending choice..."
				return m, m.sendChoice(target)
			}
		}

	case sseEventMsg:
		m.handleEvent(SSEEvent(msg))
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if msg.Type == "choice.committed" {
			cmds = append(cmds, m.refreshPrompt())
		}
		return m, tea.Batch(cmds...)

	case sseClosedMsg:
		m.connected = false
		m.err = msg.err
		if m.err == nil {
			m.status = "Event stream closed. Press r to reload."
		}
		m.metaViewport.SetContent(m.writeMetadata())

	case logMsg:
		m.status = ""
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.items = msg.items
			m.writeLogContent()
			m.logViewport.GotoBottom()
		}
		m.metaViewport.SetContent(m.writeMetadata())

	case promptMsg:
		m.status = ""
		switch {
		case errors.Is(msg.err, errNoChoice):
			m.prompt = nil
		case msg.err != nil:
			m.err = msg.err
		default:
			m.err = nil
			m.prompt = msg.prompt
		}
		m.metaViewport.SetContent(m.writeMetadata())

	case copiedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("copy failed: %w", msg.err)
		} else {
			m.status = fmt.Sprintf("Copied %d lines.", len(m.items))
		}
		m.metaViewport.SetContent(m.writeMetadata())
	}

	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(vpCmd, mvCmd)
}

func (m *ConsoleUI) handleEvent(ev SSEEvent) {
	switch ev.Type {
	case "connected":
		m.connected = true
		m.err = nil
	case "log.appended":
		var data appendedData
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			m.err = fmt.Errorf("bad log.appended event: %w", err)
			break
		}
		m.items = appendItem(m.items, LogItem{
			Index: data.Index,
			Time:  data.Entry.Time,
			Type:  data.Entry.Data.Type,
			Text:  data.Text,
		})
		m.writeLogContent()
		m.logViewport.GotoBottom()
	case "record.rejected":
		var data struct {
			RequestID string `json:"request_id"`
			Reason    string `json:"reason"`
		}
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			m.err = fmt.Errorf("bad record.rejected event: %w", err)
			break
		}
		m.status = "Rejected: " + data.Reason
	}
	m.metaViewport.SetContent(m.writeMetadata())
}

// appendItem adds item unless an entry with the same index is already there,
// which happens when a reload races the stream.
func appendItem(items []LogItem, item LogItem) []LogItem {
	for _, it := range items {
		if it.Index == item.Index {
			return items
		}
	}
	return append(items, item)
}

// optionForKey maps the digit keys onto the options of an active prompt.
func optionForKey(p *Prompt, key string) (string, bool) {
	if p == nil || !p.Active || len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	i := int(key[0] - '1')
	if i >= len(p.Options) {
		return "", false
	}
	return p.Options[i].ID, true
}

func (m *ConsoleUI) writeLogContent() {
	if !m.ready {
		return
	}
	var content strings.Builder
	content.WriteString(titleStyle.Render("RAVENLOG") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(m.logViewport.Width-4, 1))) + "\n\n")
	if len(m.items) == 0 {
		content.WriteString(promptStyle.Render("Nothing has happened yet.") + "\n")
	}
	content.WriteString(renderLog(m.items, m.logViewport.Width-4))
	m.logViewport.SetContent(content.String())
}

// renderLog formats the log for a panel of the given width. Continuation
// lines are indented past the clock.
func renderLog(items []LogItem, width int) string {
	const clockWidth = len("15:04") + 2
	textWidth := width - clockWidth
	if textWidth < 20 {
		textWidth = 20
	}
	indent := strings.Repeat(" ", clockWidth)

	var b strings.Builder
	for _, it := range items {
		text := it.Text
		style := narratorStyle
		if it.Error != "" {
			text = it.Error
			style = errorStyle
		}
		lines := strings.Split(wordwrap.String(text, textWidth), "\n")
		b.WriteString(clockStyle.Render(narrate.Clock(it.Time)) + "  " + style.Render(lines[0]) + "\n")
		for _, line := range lines[1:] {
			b.WriteString(indent + style.Render(line) + "\n")
		}
	}
	return b.String()
}

// plainLog is the unstyled log, one line per entry.
func plainLog(items []LogItem) string {
	var b strings.Builder
	for _, it := range items {
		text := it.Text
		if it.Error != "" {
			text = it.Error
		}
		fmt.Fprintf(&b, "%s  %s\n", narrate.Clock(it.Time), text)
	}
	return b.String()
}

func (m ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(m.game.ID.String() + "\n\n")

	content.WriteString("Catalog:\n")
	content.WriteString(m.game.Catalog + "\n\n")

	content.WriteString("Entries:\n")
	content.WriteString(fmt.Sprintf("%d total\n\n", len(m.items)))

	if m.connected {
		content.WriteString(narratorStyle.Render("● live") + "\n\n")
	} else {
		content.WriteString(loadingStyle.Render("○ not connected") + "\n\n")
	}

	content.WriteString(titleStyle.Render("DECISION") + "\n\n")
	content.WriteString(renderPrompt(m.prompt))
	content.WriteString("\n")

	if m.status != "" {
		content.WriteString(loadingStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	content.WriteString("\n" + promptStyle.Render("c copy · r reload · q quit") + "\n")
	return content.String()
}

func renderPrompt(p *Prompt) string {
	if p == nil {
		return promptStyle.Render("No decision is pending.") + "\n"
	}
	var b strings.Builder
	b.WriteString(p.Message + "\n")
	if p.Waiting != "" {
		b.WriteString(promptStyle.Render(p.Waiting) + "\n")
	}
	if p.Active {
		for i, opt := range p.Options {
			b.WriteString(optionStyle.Render(fmt.Sprintf("%d  %s", i+1, opt.Name)) + "\n")
		}
	}
	return b.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m.quit()
		default:
			switch msg.String() {
			case "y", "Y":
				return m.quit()
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Stop following this game?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		m.logViewport.View(),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
