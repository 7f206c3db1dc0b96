// Package display provides the terminal UI using Bubble Tea.
//
// The model is a thin shell around the search controller: every key
// that means something calls a controller method (wrapped in a command
// when it blocks), and every frame renders from a fresh session
// snapshot projected through the view package. The display never holds
// search state of its own beyond cursor positions.
package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/logger"
	"github.com/hammamikhairi/forager/internal/search"
	"github.com/hammamikhairi/forager/internal/view"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Padding(0, 1).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	inputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			PaddingLeft(4)

	suggestionPickStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0")).
				PaddingLeft(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
)

// Exporter saves one recipe to disk and returns the written path.
type Exporter interface {
	Save(ctx context.Context, r *domain.Recipe) (string, error)
}

// ── Bubble Tea model ─────────────────────────────────────────────

// Messages.
type (
	sessionMsg  struct{}
	exportedMsg struct {
		path string
		err  error
	}
)

// Model is the Bubble Tea model for the search screen.
type Model struct {
	ctrl     *search.Controller
	exporter Exporter
	log      *logger.Logger

	input       textinput.Model
	spin        spinner.Model
	suggestions []domain.SearchableItem
	cursor      int // dropdown selection, -1 when closed
	status      string
	width       int
	height      int
}

// NewModel creates the display model.
func NewModel(ctrl *search.Controller, exporter Exporter, log *logger.Logger) Model {
	ti := textinput.New()
	// Plain-text prompt so the textinput width math stays correct;
	// styled prompts add invisible ANSI bytes that break scrolling.
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputTextStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 300
	ti.Width = 60 // updated on first WindowSizeMsg

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a"))

	return Model{
		ctrl:     ctrl,
		exporter: exporter,
		log:      log,
		input:    ti,
		spin:     sp,
		cursor:   -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		const promptLen = 2
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case sessionMsg:
		// An operation finished (or was dropped); the snapshot in View
		// is the single source of truth, nothing to copy here.
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = urgentStyle.Render("export failed: " + msg.err.Error())
		} else {
			m.status = statusStyle.Render("saved " + msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.cursor >= 0 {
			m.cursor = -1
			return m, nil
		}
		return m, tea.Quit

	case "tab":
		return m.cycleMode()

	case "up":
		if len(m.suggestions) > 0 && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if len(m.suggestions) > 0 && m.cursor < len(m.suggestions)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.submit()

	case "ctrl+r":
		m.status = ""
		return m, m.runOp(m.ctrl.Discover)

	case "ctrl+l":
		return m, m.runOp(m.ctrl.LoadMore)

	case "ctrl+e":
		return m.export()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.suggestions = m.ctrl.UpdateQuery(v)
		m.cursor = -1
		if len(m.suggestions) > 0 {
			m.cursor = 0
		}
	}
	return m, cmd
}

func (m Model) cycleMode() (tea.Model, tea.Cmd) {
	next := domain.ModeURL
	switch m.ctrl.Snapshot().Mode {
	case domain.ModeURL:
		next = domain.ModeName
	case domain.ModeName:
		next = domain.ModeIngredient
	}
	m.ctrl.SetMode(next)
	m.input.Reset()
	m.suggestions = nil
	m.cursor = -1
	m.status = ""
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.status = ""
	if m.cursor >= 0 && m.cursor < len(m.suggestions) {
		item := m.suggestions[m.cursor]
		m.suggestions = nil
		m.cursor = -1
		m.input.Reset()
		return m, m.runOp(func(ctx context.Context) error {
			return m.ctrl.SelectSuggestion(ctx, item)
		})
	}
	return m, m.runOp(m.ctrl.Submit)
}

func (m Model) export() (tea.Model, tea.Cmd) {
	vm := view.Project(m.ctrl.Snapshot())
	if vm.Single == nil {
		m.status = secondaryStyle.Render("open a recipe first, then save it")
		return m, nil
	}
	r := vm.Single
	m.status = statusStyle.Render("saving " + r.Title + "...")
	exporter := m.exporter
	return m, func() tea.Msg {
		path, err := exporter.Save(context.Background(), r)
		return exportedMsg{path: path, err: err}
	}
}

// runOp runs a blocking controller call off the event loop. The result
// lands in the session either way, so completion only needs a repaint.
func (m Model) runOp(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			m.log.Debug("operation returned: %v", err)
		}
		return sessionMsg{}
	}
}

// ── Rendering ────────────────────────────────────────────────────

func (m Model) View() string {
	s := m.ctrl.Snapshot()
	vm := view.Project(s)

	var b strings.Builder
	b.WriteString(m.renderTabs(s.Mode))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteByte('\n')

	for i, item := range m.suggestions {
		if i == m.cursor {
			b.WriteString(suggestionPickStyle.Render("▸ " + item.Key()))
		} else {
			b.WriteString(suggestionStyle.Render(item.Key()))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	m.renderBody(&b, vm)

	if m.status != "" {
		b.WriteByte('\n')
		b.WriteString(m.status)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render(
		"tab: mode · enter: search · ↑/↓: pick · ctrl+r: discover · ctrl+l: more · ctrl+e: save · ctrl+c: quit"))
	return b.String()
}

func (m Model) renderTabs(active domain.SearchMode) string {
	var parts []string
	for _, mode := range []domain.SearchMode{
		domain.ModeURL, domain.ModeName, domain.ModeIngredient, domain.ModeDiscovery,
	} {
		label := mode.String()
		if mode == active {
			parts = append(parts, tabActiveStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderBody(b *strings.Builder, vm view.ViewModel) {
	if vm.ShowSpinner {
		b.WriteString(m.spin.View())
		b.WriteString(secondaryStyle.Render(" looking that up..."))
		b.WriteByte('\n')
		return
	}

	if vm.ErrorText != "" {
		b.WriteString(urgentStyle.Render("  " + vm.ErrorText))
		b.WriteByte('\n')
		return
	}

	if vm.Single != nil {
		m.renderRecipe(b, vm.Single)
		return
	}

	for _, r := range vm.Recipes {
		b.WriteString(titleStyle.Render("  " + r.Title))
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("    ★ %.1f · %d min", r.Rating, r.PrepTimeMinutes)))
		b.WriteByte('\n')
	}
	if vm.LoadingMore {
		b.WriteString(m.spin.View())
		b.WriteString(secondaryStyle.Render(" loading more..."))
		b.WriteByte('\n')
	} else if vm.CanLoadMore {
		b.WriteString(secondaryStyle.Render("  ctrl+l for more"))
		b.WriteByte('\n')
	}
}

func (m Model) renderRecipe(b *strings.Builder, r *domain.Recipe) {
	b.WriteString(titleStyle.Render("  " + r.Title))
	b.WriteByte('\n')
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  ★ %.1f · %d min", r.Rating, r.PrepTimeMinutes)))
	b.WriteString("\n\n")

	for _, ing := range r.Ingredients {
		b.WriteString(primaryStyle.Render("  " + ing.Amount + " " + ing.Ingredient.Name))
		b.WriteByte('\n')
	}
	if len(r.BasicIngredients) > 0 {
		b.WriteString(secondaryStyle.Render("  pantry: " + strings.Join(r.BasicIngredients, ", ")))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for _, st := range r.InstructionSteps {
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %d. %s", st.Order, st.Text)))
		b.WriteByte('\n')
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func Run(ctrl *search.Controller, exporter Exporter, log *logger.Logger) error {
	p := tea.NewProgram(NewModel(ctrl, exporter, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
