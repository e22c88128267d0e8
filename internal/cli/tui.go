package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/schemaforge/pkg/plc"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// rackModel - Interactive PLC rack browser
// =============================================================================

// rackModel is the bubbletea model for browsing the slots of a rack. The
// left column lists slots with their occupancy, the right one the pins of the
// slot under the cursor.
type rackModel struct {
	usage  []plc.SlotUsage
	pins   map[string][]plc.ReportRow // by slot designation
	cursor int
	height int // visible pin rows
	offset int // first visible pin row
	wired  bool
}

func newRackModel(usage []plc.SlotUsage, rows []plc.ReportRow) rackModel {
	pins := make(map[string][]plc.ReportRow, len(usage))
	for _, r := range rows {
		pins[r.Module] = append(pins[r.Module], r)
	}
	return rackModel{usage: usage, pins: pins, height: 16}
}

func (m rackModel) Init() tea.Cmd {
	return nil
}

func (m rackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.offset = 0
			}
		case "down", "j":
			if m.cursor < len(m.usage)-1 {
				m.cursor++
				m.offset = 0
			}
		case "pgdown", "J":
			if m.offset+m.height < len(m.visiblePins()) {
				m.offset += m.height
			}
		case "pgup", "K":
			m.offset = max(0, m.offset-m.height)
		case "w":
			m.wired = !m.wired
			m.offset = 0
		}
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-8)
	}
	return m, nil
}

// visiblePins returns the pins of the selected slot, only wired ones when the
// filter is on.
func (m rackModel) visiblePins() []plc.ReportRow {
	if len(m.usage) == 0 {
		return nil
	}
	rows := m.pins[m.usage[m.cursor].Slot.Designation]
	if !m.wired {
		return rows
	}
	var out []plc.ReportRow
	for _, r := range rows {
		if r.Wired() {
			out = append(out, r)
		}
	}
	return out
}

func (m rackModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("PLC Rack"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ slot  pgup/pgdn pins  w wired only  q quit"))
	b.WriteString("\n\n")

	var slots strings.Builder
	for i, u := range m.usage {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		} else if u.Free() == 0 {
			style = listDimStyle
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, u.Slot.Designation, occupancyBar(u))
		slots.WriteString(style.Render(line))
		slots.WriteString("\n")
	}

	pins := m.visiblePins()
	end := min(m.offset+m.height, len(pins))
	rows := make([][]string, 0, end-m.offset)
	for _, r := range pins[m.offset:end] {
		rows = append(rows, []string{r.Pin, r.Component, r.ComponentPin, r.Terminal})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pin", "Component", "Pin", "Terminal").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if rows[row][1] == "" {
				return listDimStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return listNormalStyle
		})

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, slots.String(), "  ", t.Render()))
	b.WriteString("\n")
	if len(m.usage) > 0 {
		u := m.usage[m.cursor]
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %s · %d/%d channels used · pins %d-%d of %d",
			u.Slot.Module.MPN, u.Slot.Module.SignalType, u.Used, u.Slot.Module.Channels,
			min(m.offset+1, end), end, len(pins))))
	}

	return b.String()
}

// occupancyBar draws used channels as filled cells, ten cells wide.
func occupancyBar(u plc.SlotUsage) string {
	const width = 10
	total := u.Slot.Module.Channels
	filled := 0
	if total > 0 {
		filled = (u.Used*width + total - 1) / total
	}
	bar := strings.Repeat("■", filled) + strings.Repeat("□", width-filled)
	return fmt.Sprintf("%s %2d/%-2d", bar, u.Used, total)
}
