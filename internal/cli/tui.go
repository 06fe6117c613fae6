package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mgrundel/timelane/pkg/schedule"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ScheduleListModel - Interactive schedule browsing
// =============================================================================

// ScheduleListModel is the bubbletea model for browsing the schedule set.
type ScheduleListModel struct {
	Schedules []schedule.Schedule
	Cursor    int
	Height    int
	Offset    int

	// ShowDetail toggles the detail pane for the schedule under the cursor.
	ShowDetail bool
}

// NewScheduleListModel creates a new schedule list model. Schedules are
// ordered by level, then start time, then id.
func NewScheduleListModel(schedules []schedule.Schedule) ScheduleListModel {
	sorted := make([]schedule.Schedule, len(schedules))
	copy(sorted, schedules)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Level != sorted[j].Level {
			return sorted[i].Level < sorted[j].Level
		}
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return ScheduleListModel{
		Schedules: sorted,
		Cursor:    0,
		Height:    15,
		Offset:    0,
	}
}

func (m ScheduleListModel) Init() tea.Cmd {
	return nil
}

func (m ScheduleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Schedules)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.ShowDetail = !m.ShowDetail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ScheduleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Schedules"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Schedules) == 0 {
		b.WriteString(listDimStyle.Render("  no schedules stored"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Schedules) {
		end = len(m.Schedules)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Schedules[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		excl := ""
		if s.Exclusive {
			excl = "excl"
		}

		rows = append(rows, []string{
			cursor,
			s.ID,
			s.Name,
			fmt.Sprintf("%d", s.Level),
			displayTime(s.Start),
			displayTime(s.End),
			excl,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Lvl", "Start", "End", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Schedules) {
				return lipgloss.NewStyle()
			}
			if col == 6 {
				return StyleWarning
			}
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.ShowDetail {
		b.WriteString(m.detailView())
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Schedules))))

	return b.String()
}

// detailView renders the parent and child links of the selected schedule.
func (m ScheduleListModel) detailView() string {
	s := m.Schedules[m.Cursor]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + StyleHighlight.Render(s.Name) + " " + listDimStyle.Render("("+s.ID+")"))
	b.WriteString("\n")
	b.WriteString("  " + listDimStyle.Render("parents:  ") + linkList(s.Parents))
	b.WriteString("\n")
	b.WriteString("  " + listDimStyle.Render("children: ") + linkList(s.Children))
	b.WriteString("\n")
	return b.String()
}

func linkList(ids []string) string {
	if len(ids) == 0 {
		return StyleDim.Render("—")
	}
	return StyleValue.Render(strings.Join(ids, ", "))
}
