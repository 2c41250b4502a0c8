package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

// Preview size limits.
const (
	previewMaxW = 48
	previewMaxH = 12
	previewMinW = 8
	previewMinH = 4
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorGreen.Hex()))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	previewStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// MenuModel is the Bubble Tea model for the scene picker. The highlighted
// scene runs live in a small off-screen canvas.
type MenuModel struct {
	items     []registry.SceneInfo
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	opts      render.Options
	keyMapper *KeyMapper

	preview       registry.Scene
	previewCanvas *render.Canvas

	quitting  bool
	selected  *registry.SceneInfo // Set when user selects a scene
	openStats bool                // True if user pressed Tab for the stats board
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, opts render.Options) MenuModel {
	m := MenuModel{
		items:     registry.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
	}
	m.startPreview()
	return m
}

// previewSize fits the preview into the current window.
func (m MenuModel) previewSize() (int, int) {
	w := core.Clamp(m.width-4, previewMinW, previewMaxW)
	h := core.Clamp(m.height-len(m.items)-10, previewMinH, previewMaxH)
	return w, h
}

// startPreview creates a fresh preview for the highlighted scene.
func (m *MenuModel) startPreview() {
	m.preview = nil
	m.previewCanvas = nil
	if len(m.items) == 0 {
		return
	}

	scene, err := registry.Create(m.items[m.cursor].ID)
	if err != nil {
		return
	}

	w, h := m.previewSize()
	canvas, err := render.NewCanvas(w, h, io.Discard, m.opts)
	if err != nil {
		return
	}

	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = w, h
	scene.Reset(cfg)

	m.preview = scene
	m.previewCanvas = canvas
}

// Init starts the preview ticks.
func (m MenuModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.startPreview()
		return m, nil

	case TickMsg:
		if m.preview != nil {
			m.preview.Step()
			m.preview.Draw(m.previewCanvas)
			m.previewCanvas.Present()
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.startPreview()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.startPreview()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the scene
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit // Exit menu to show the stats board

	case MenuActionSwapPolicy:
		if m.opts.SwapPolicy == render.SwapCopy {
			m.opts.SwapPolicy = render.SwapExchange
		} else {
			m.opts.SwapPolicy = render.SwapCopy
		}
		m.startPreview()
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C A N V A S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scene", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.previewCanvas != nil {
		b.WriteString("\n")
		b.WriteString(centerText(previewStyle.Render(RenderCanvas(m.previewCanvas)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	policy := fmt.Sprintf("swap: %s", m.opts.SwapPolicy)
	b.WriteString(centerText(menuDimStyle.Render(policy), m.width))
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  X: Swap policy  |  Tab: Stats  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected scene, or nil if none selected.
func (m MenuModel) Selected() *registry.SceneInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user requested the stats board.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Options returns the render options, including the chosen swap policy.
func (m MenuModel) Options() render.Options {
	return m.opts
}

// centerText centers text within given width. Width is measured without
// ANSI sequences so styled text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	if strings.Contains(text, "\n") {
		return lipgloss.NewStyle().PaddingLeft(padding).Render(text)
	}
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	SceneID    string
	Config     core.RuntimeConfig
	Options    render.Options
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, opts render.Options) (MenuResult, error) {
	model := NewMenuModel(cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Options: opts}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Options: opts, Quit: true}, nil
	}

	result := MenuResult{
		Config:  m.Config(),
		Options: m.Options(),
	}

	if m.WantsStats() {
		result.WantsStats = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.SceneID = m.Selected().ID
	} else {
		result.Quit = true
	}

	return result, nil
}
