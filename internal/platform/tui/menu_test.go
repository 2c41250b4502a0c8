package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/render"
	_ "github.com/vovakirdan/tui-canvas/internal/scenes/banner"
	_ "github.com/vovakirdan/tui-canvas/internal/scenes/bounce"
	_ "github.com/vovakirdan/tui-canvas/internal/scenes/rain"
	"github.com/vovakirdan/tui-canvas/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('q'), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionStats},
		{runeKey('x'), MenuActionSwapPolicy},
		{runeKey('z'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func newTestMenu() MenuModel {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 30, Seed: 1}
	return NewMenuModel(cfg, render.DefaultOptions())
}

func TestMenuSelectsScene(t *testing.T) {
	m := newTestMenu()
	if len(m.items) < 3 {
		t.Fatalf("expected registered scenes, got %d", len(m.items))
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(MenuModel)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(MenuModel)

	if cmd == nil {
		t.Error("selecting a scene should quit the menu program")
	}
	if m.Selected() == nil || m.Selected().ID != m.items[1].ID {
		t.Errorf("Selected() = %+v, expected %s", m.Selected(), m.items[1].ID)
	}
}

func TestMenuPreviewAdvances(t *testing.T) {
	m := newTestMenu()
	if m.previewCanvas == nil {
		t.Fatal("menu should start a preview")
	}

	for i := 0; i < 5; i++ {
		model, _ := m.Update(TickMsg{})
		m = model.(MenuModel)
	}

	if strings.TrimSpace(m.previewCanvas.String()) == "" {
		t.Error("preview canvas is still blank after ticks")
	}
	if !strings.Contains(m.View(), "Select a scene") {
		t.Error("View() missing heading")
	}
}

func TestMenuTogglesSwapPolicy(t *testing.T) {
	m := newTestMenu()

	model, _ := m.Update(runeKey('x'))
	m = model.(MenuModel)
	if m.Options().SwapPolicy != render.SwapExchange {
		t.Errorf("SwapPolicy = %v, expected exchange", m.Options().SwapPolicy)
	}

	model, _ = m.Update(runeKey('x'))
	m = model.(MenuModel)
	if m.Options().SwapPolicy != render.SwapCopy {
		t.Errorf("SwapPolicy = %v, expected copy", m.Options().SwapPolicy)
	}
}

func TestMenuStatsAndQuit(t *testing.T) {
	m := newTestMenu()
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !model.(MenuModel).WantsStats() {
		t.Error("tab should open the stats board")
	}

	model, _ = newTestMenu().Update(runeKey('q'))
	if !model.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestStatsBoardCyclesScenes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveSession(storage.SessionRecord{SceneID: "banner", Width: 80, Height: 24, Frames: 10, Bytes: 200})

	m := NewStatsModel(store, 120, 40)
	if m.scenes[0].ID != "banner" {
		t.Fatalf("expected banner first, got %s", m.scenes[0].ID)
	}
	if len(m.sessions) != 1 {
		t.Fatalf("expected 1 banner session, got %d", len(m.sessions))
	}
	if !strings.Contains(m.View(), "1 sessions") {
		t.Error("summary line missing from view")
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(StatsModel)
	if m.sceneCursor != 1 || len(m.sessions) != 0 {
		t.Errorf("cursor=%d sessions=%d after tab", m.sceneCursor, len(m.sessions))
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = model.(StatsModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = model.(StatsModel)
	if m.sceneCursor != len(m.scenes)-1 {
		t.Errorf("shift+tab should wrap, cursor=%d", m.sceneCursor)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !model.(StatsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestStatsBoardWithoutStore(t *testing.T) {
	m := NewStatsModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Error("empty board should say no sessions")
	}
}
