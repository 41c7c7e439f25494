package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Technologicat/materials/internal/config"
)

type menuEntry struct {
	model, preset string
}

func (e menuEntry) String() string { return e.model + "/" + e.preset }

// Menu lists every preset and opens the live view on the chosen one.
type Menu struct {
	entries []menuEntry
	cursor  int
	live    *LiveModel
	err     error
}

func NewMenu() Menu {
	models := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		models = append(models, name)
	}
	sort.Strings(models)

	var entries []menuEntry
	for _, model := range models {
		for _, preset := range config.ListPresets(model) {
			entries = append(entries, menuEntry{model: model, preset: preset})
		}
	}
	return Menu{entries: entries}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(LiveModel)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.entries) == 0 {
			return m, nil
		}
		e := m.entries[m.cursor]
		live, err := NewLiveModel(e.String(), config.GetPreset(e.model, e.preset))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live = &live
		return m, live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle.Render("MATDRV") + "\n    " + mutedStyle.Render("material point driver") + "\n\n")
	for i, e := range m.entries {
		cfg := config.Presets[e.model][e.preset]
		desc := fmt.Sprintf("%s %s", cfg.Path.Kind, cfg.Path.Shape)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-28s", e)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", mutedStyle.Render(fmt.Sprintf("%-28s", e)), mutedStyle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusFailed.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + mutedStyle.Render(" navigate  ") + keyStyle.Render("enter") + mutedStyle.Render(" run  ") + keyStyle.Render("q") + mutedStyle.Render(" quit") + "\n")
	return b.String()
}

func RunMenu() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen()).Run()
	return err
}
