// Package tui implements the terminal editor for homepage sections.
package tui

import (
	"context"
	"fmt"
	"strings"

	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Mode is the editor state
type Mode int

const (
	// ModeIdle is the state before the first successful load
	ModeIdle Mode = iota
	// ModeListing browses the sections
	ModeListing
	// ModeEditing acts on one section
	ModeEditing
	// ModeConfirmingDelete waits for y or esc
	ModeConfirmingDelete
)

func (m Mode) String() string {
	switch m {
	case ModeListing:
		return "listing"
	case ModeEditing:
		return "editing"
	case ModeConfirmingDelete:
		return "confirming-delete"
	default:
		return "idle"
	}
}

// Model is the bubbletea model of the section editor
type Model struct {
	ctx    context.Context
	editor SectionEditor
	keys   KeyMap
	styles Styles

	mode     Mode
	sections []sectionapp.SectionResponse
	cursor   int
	target   uuid.UUID
	busy     bool

	status    string
	statusErr bool

	spinner spinner.Model
	help    help.Model
	width   int
}

// NewModel creates an editor over the given section service
func NewModel(ctx context.Context, editor SectionEditor) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		ctx:     ctx,
		editor:  editor,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		mode:    ModeIdle,
		busy:    true,
		spinner: sp,
		help:    help.New(),
	}
}

// Mode returns the current state
func (m Model) Mode() Mode { return m.mode }

// Sections returns the local copy of the section list
func (m Model) Sections() []sectionapp.SectionResponse { return m.sections }

// Status returns the status line and whether it reports a failure
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Init loads the sections
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("Load failed", msg.err)
			return m, nil
		}
		m.sections = msg.sections
		m.clampCursor()
		if m.mode == ModeIdle {
			m.mode = ModeListing
		}
		m.info(fmt.Sprintf("Loaded %d sections", len(m.sections)))
		return m, nil

	case toggledMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("Toggle failed", msg.err)
			return m, nil
		}
		for i := range m.sections {
			if m.sections[i].ID == msg.section.ID {
				m.sections[i] = *msg.section
			}
		}
		if msg.section.Visible {
			m.info(msg.section.Type + " is now visible")
		} else {
			m.info(msg.section.Type + " is now hidden")
		}
		return m, nil

	case reorderedMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("Move failed", msg.err)
			return m, nil
		}
		m.sections = msg.sections
		m.follow(m.target)
		m.info("Order saved")
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.mode = ModeEditing
			m.fail("Delete failed", msg.err)
			return m, nil
		}
		kept := m.sections[:0:0]
		for _, s := range m.sections {
			if s.ID != msg.id {
				kept = append(kept, s)
			}
		}
		m.sections = kept
		m.clampCursor()
		m.mode = ModeListing
		m.target = uuid.Nil
		m.info("Section deleted")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && m.mode != ModeConfirmingDelete {
		return m, tea.Quit
	}
	// one command in flight at a time
	if m.busy {
		return m, nil
	}

	switch m.mode {
	case ModeIdle:
		if key.Matches(msg, m.keys.Reload) {
			return m.start(m.load())
		}

	case ModeListing:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.sections)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Edit):
			if len(m.sections) > 0 {
				m.mode = ModeEditing
				m.target = m.sections[m.cursor].ID
				m.info("Editing " + m.sections[m.cursor].Type)
			}
		case key.Matches(msg, m.keys.Reload):
			return m.start(m.load())
		}

	case ModeEditing:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m.start(m.toggle(m.target))
		case key.Matches(msg, m.keys.MoveUp):
			return m.move(-1)
		case key.Matches(msg, m.keys.MoveDown):
			return m.move(1)
		case key.Matches(msg, m.keys.Delete):
			m.mode = ModeConfirmingDelete
		case key.Matches(msg, m.keys.Back):
			m.mode = ModeListing
			m.target = uuid.Nil
		}

	case ModeConfirmingDelete:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.start(m.remove(m.target))
		case key.Matches(msg, m.keys.Back):
			m.mode = ModeEditing
		}
	}
	return m, nil
}

// move swaps the edited section with its neighbour and asks for the new order
func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	from := m.cursor
	to := from + delta
	if to < 0 || to >= len(m.sections) {
		m.info("Already at the edge")
		return m, nil
	}
	if m.sections[to].IsHero {
		m.info("The hero section stays in place")
		return m, nil
	}

	moving := m.sections[from]
	ids := make([]uuid.UUID, 0, len(m.sections))
	for i := range m.sections {
		j := i
		switch i {
		case from:
			j = to
		case to:
			j = from
		}
		s := m.sections[j]
		// hero sections keep their slot; only a hero being moved is sent so the
		// service can reject it
		if s.IsHero && s.ID != moving.ID {
			continue
		}
		ids = append(ids, s.ID)
	}
	return m.start(m.reorder(ids))
}

func (m Model) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, cmd
}

func (m Model) load() tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		sections, err := editor.List(ctx)
		return loadedMsg{sections: sections, err: err}
	}
}

func (m Model) toggle(id uuid.UUID) tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		s, err := editor.ToggleVisibility(ctx, id)
		return toggledMsg{section: s, err: err}
	}
}

func (m Model) reorder(ids []uuid.UUID) tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		sections, err := editor.Reorder(ctx, sectionapp.ReorderSectionsRequest{IDs: ids})
		return reorderedMsg{sections: sections, err: err}
	}
}

func (m Model) remove(id uuid.UUID) tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		return deletedMsg{id: id, err: editor.Delete(ctx, id)}
	}
}

func (m *Model) follow(id uuid.UUID) {
	for i, s := range m.sections {
		if s.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.sections) {
		m.cursor = len(m.sections) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) info(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) fail(prefix string, err error) {
	m.status = prefix + ": " + err.Error()
	m.statusErr = true
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Homepage sections"))
	b.WriteString("\n")

	if m.mode == ModeIdle && len(m.sections) == 0 {
		if m.busy {
			b.WriteString(m.spinner.View() + " Loading...\n")
		} else {
			b.WriteString("Nothing loaded. Press r to retry.\n")
		}
	}

	for i, s := range m.sections {
		line := fmt.Sprintf("%3d  %-20s", s.Order, s.Type)
		var tags []string
		if s.IsHero {
			tags = append(tags, m.styles.Hero.Render("hero"))
		}
		if !s.Visible {
			tags = append(tags, m.styles.Hidden.Render("hidden"))
		}
		if len(tags) > 0 {
			line += " " + strings.Join(tags, " ")
		}
		if i == m.cursor && m.mode != ModeIdle {
			if m.mode != ModeListing {
				line += "  [editing]"
			}
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Row.Render(line))
		}
		b.WriteString("\n")
	}

	if m.mode == ModeConfirmingDelete && m.cursor < len(m.sections) {
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(fmt.Sprintf("Delete %s section? (y/esc)", m.sections[m.cursor].Type)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy && m.mode != ModeIdle:
		b.WriteString(m.spinner.View() + " Saving...")
	case m.statusErr:
		b.WriteString(m.styles.Error.Render(m.status))
	default:
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys.forMode(m.mode)))
	b.WriteString("\n")
	return b.String()
}
