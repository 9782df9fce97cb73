// Package shell is the interactive administrator menu. It parses one intent
// at a time, hands validated primitives to the enrollment service and renders
// the result or rejection. It never exits on a rejection.
package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
)

const defaultWidth = 80

func menuZoneID(i int) string {
	return fmt.Sprintf("shell-menu-%d", i)
}

// Config controls the shell behavior.
type Config struct {
	MaxAttempts   int
	ShowActivity  bool
	ActivityLines int
}

// DefaultConfig returns the shell defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		ShowActivity:  true,
		ActivityLines: 8,
	}
}

type mode int

const (
	modeMenu mode = iota
	modePrompt
	modeHelp
)

// Option configures a Model.
type Option func(*Model)

// WithKeyMap replaces the default keybindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keys = k
	}
}

// WithLogListener shows a pane of live log lines fed by l.
func WithLogListener(l *pubsub.Listener[string]) Option {
	return func(m *Model) {
		m.logListener = l
	}
}

// Model is the Bubble Tea model of the shell.
type Model struct {
	ctx  context.Context
	svc  Service
	cfg  Config
	keys KeyMap
	help help.Model

	mode   mode
	cursor int

	// Prompt state
	action    Action
	fields    []field
	step      int
	attempts  int
	collected values
	parseErr  error
	input     textinput.Model

	last     outcome
	activity []string
	logs     []string

	events      *pubsub.Listener[enrollment.Change]
	logListener *pubsub.Listener[string]

	width  int
	height int
}

// New creates the shell. The activity subscription lives as long as ctx.
func New(ctx context.Context, svc Service, cfg Config, opts ...Option) Model {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.ActivityLines <= 0 {
		cfg.ActivityLines = DefaultConfig().ActivityLines
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 120

	m := Model{
		ctx:   ctx,
		svc:   svc,
		cfg:   cfg,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		input: input,
		width: defaultWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if cfg.ShowActivity {
		m.events = pubsub.NewListener(ctx, svc.Events())
	}
	return m
}

// Init starts listening for service and log events.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.events != nil {
		cmds = append(cmds, m.events.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pubsub.Event[enrollment.Change]:
		m.activity = appendBounded(m.activity, enrollment.Describe(msg), m.cfg.ActivityLines)
		return m, m.events.Listen()

	case pubsub.Event[string]:
		m.logs = appendBounded(m.logs, strings.TrimRight(msg.Payload, "\n"), m.cfg.ActivityLines)
		return m, m.logListener.Listen()

	case tea.MouseMsg:
		if m.mode == modeMenu && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			for i, item := range menu {
				if z := zone.Get(menuZoneID(i)); z != nil && z.InBounds(msg) {
					m.cursor = i
					return m.choose(item.action)
				}
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateMenu(msg)
		}
	}

	if m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menu)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		return m.choose(menu[m.cursor].action)
	}

	if msg.Type == tea.KeyRunes {
		a, err := ParseMenuChoice(string(msg.Runes))
		if err != nil {
			m.last = outcome{err: err}
			return m, nil
		}
		for i, item := range menu {
			if item.action == a {
				m.cursor = i
			}
		}
		return m.choose(a)
	}
	return m, nil
}

func (m Model) choose(a Action) (tea.Model, tea.Cmd) {
	if a == ActionExit {
		log.Info(log.CatShell, "Exiting administrator interface")
		return m, tea.Quit
	}

	m.action = a
	m.fields = fieldsFor(a)
	m.step = 0
	m.attempts = 0
	m.collected = values{}
	m.parseErr = nil

	if len(m.fields) == 0 {
		m.finish()
		return m, nil
	}

	m.mode = modePrompt
	m.resetInput()
	return m, textinput.Blink
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := promptKeys(m.keys)
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Cancel):
		m.backToMenu()
		m.last = outcome{status: "Cancelled."}
		return m, nil
	case key.Matches(msg, k.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	f := m.fields[m.step]
	val, err := f.parse(m.input.Value())
	if err != nil {
		m.attempts++
		log.Debug(log.CatShell, "Invalid input", "action", m.action, "field", f.key, "attempt", m.attempts, "error", err)
		if m.attempts >= m.cfg.MaxAttempts {
			m.backToMenu()
			m.last = outcome{err: fmt.Errorf("%s: %w: %w", m.action, ErrTooManyAttempts, err)}
			return m, nil
		}
		m.parseErr = err
		m.input.Reset()
		return m, nil
	}

	m.collected[f.key] = val
	m.step++
	m.attempts = 0
	m.parseErr = nil
	if m.step < len(m.fields) {
		m.resetInput()
		return m, nil
	}

	m.finish()
	return m, nil
}

// finish runs the chosen action with the collected values.
func (m *Model) finish() {
	m.last = run(m.ctx, m.svc, m.action, m.collected, m.width)
	if m.last.err != nil {
		log.Debug(log.CatShell, "Action rejected", "action", m.action, "error", m.last.err)
	} else {
		log.Debug(log.CatShell, "Action done", "action", m.action)
	}
	m.backToMenu()
}

func (m *Model) backToMenu() {
	m.mode = modeMenu
	m.fields = nil
	m.parseErr = nil
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) resetInput() {
	f := m.fields[m.step]
	m.input.Reset()
	m.input.Placeholder = f.placeholder
	m.input.Focus()
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel):
		m.mode = modeMenu
	}
	return m, nil
}

// View renders the shell.
func (m Model) View() string {
	if m.mode == modeHelp {
		footer := m.help.ShortHelpView([]key.Binding{m.keys.Help, m.keys.Cancel, m.keys.Quit})
		return zone.Scan(renderHelp(m.width) + "\n" + footer)
	}

	sections := []string{titleStyle.Render("Administrator Interface"), m.renderMenu()}

	if m.mode == modePrompt {
		sections = append(sections, m.renderPrompt())
	} else if s := m.renderOutcome(); s != "" {
		sections = append(sections, s)
	}

	if m.cfg.ShowActivity && len(m.activity) > 0 {
		sections = append(sections, renderPane("Activity", m.activity, m.width, nil))
	}
	if len(m.logs) > 0 {
		sections = append(sections, renderPane("Log", m.logs, m.width, logLineStyle))
	}

	if m.mode == modePrompt {
		sections = append(sections, m.help.ShortHelpView(promptKeys(m.keys).promptShortHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderMenu() string {
	lines := make([]string, len(menu))
	for i, item := range menu {
		label := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == m.cursor {
			lines[i] = selectedItemStyle.Render("> " + label)
		} else {
			lines[i] = menuItemStyle.Render(label)
		}
		lines[i] = zone.Mark(menuZoneID(i), lines[i])
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPrompt() string {
	f := m.fields[m.step]
	var b strings.Builder
	b.WriteString(promptStyle.Render(fmt.Sprintf("%s (%d/%d)", m.action, m.step+1, len(m.fields))))
	b.WriteString("\n")
	b.WriteString(f.prompt + ":\n")
	b.WriteString(m.input.View())
	if m.parseErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Invalid input: %v (attempt %d of %d)", m.parseErr, m.attempts, m.cfg.MaxAttempts)))
	}
	return b.String()
}

func (m Model) renderOutcome() string {
	if m.last.err != nil {
		return errorStyle.Render(rejection(m.last.err)) + "\n" + hintStyle.Render(m.last.err.Error())
	}
	if m.last.status == "" {
		return ""
	}
	s := successStyle.Render(m.last.status)
	if m.last.body != "" {
		s += "\n\n" + m.last.body
	}
	return s
}

// renderPane draws lines in a bordered box, one terminal row per line.
func renderPane(title string, lines []string, width int, style func(string) lipgloss.Style) string {
	inner := width - 4 // border and padding
	rendered := make([]string, len(lines))
	for i, line := range lines {
		if inner > 3 && ansi.StringWidth(line) > inner {
			line = ansi.Truncate(line, inner-3, "...")
		}
		if style != nil {
			line = style(line).Render(line)
		}
		rendered[i] = line
	}

	body := paneTitleStyle.Render(title) + "\n" + strings.Join(rendered, "\n")
	if width > 4 {
		return paneStyle.Width(width - 2).Render(body)
	}
	return paneStyle.Render(body)
}

func appendBounded(lines []string, line string, limit int) []string {
	lines = append(lines, line)
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}
