package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/project"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for interactive drag exploration.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Explore drags interactively in the terminal",
		Long: `Tui opens a project in an interactive view. Move the cursor over tasks
and nudge their start times left and right; dependent tasks are pushed and the
schedule recomputes live, so you can watch slack drain and the critical path
shift.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			model := NewDragModel(p)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// DragModel is the bubbletea model for interactive drag exploration.
type DragModel struct {
	Project   *project.Project
	Overrides map[string]float64
	Schedule  *cpm.Schedule
	Cursor    int
	Status    string
}

// NewDragModel creates a drag model with the initial unconstrained schedule.
func NewDragModel(p *project.Project) DragModel {
	return DragModel{
		Project:  p,
		Schedule: cpm.Compute(p.Tasks, nil),
	}
}

func (m DragModel) Init() tea.Cmd {
	return nil
}

func (m DragModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Schedule.Order)-1 {
				m.Cursor++
			}
		case "left", "h":
			m = m.drag(-1)
		case "right", "l":
			m = m.drag(+1)
		case "r":
			m.Overrides = nil
			m.Schedule = cpm.Compute(m.Project.Tasks, nil)
			m.Status = "reset"
		}
	}
	return m, nil
}

// drag nudges the task under the cursor by delta time units, pushing
// dependents as needed, and recomputes the schedule.
func (m DragModel) drag(delta float64) DragModel {
	if m.Cursor >= len(m.Schedule.Order) {
		return m
	}
	id := m.Schedule.Order[m.Cursor]
	target := m.Schedule.ES[id] + delta

	next := cpm.Propagate(id, target, m.Schedule, m.Project.Tasks, m.Overrides)
	m.Overrides = next
	m.Schedule = cpm.Compute(m.Project.Tasks, next)

	if next[id] != target {
		m.Status = fmt.Sprintf("%s clamped to %s", id, formatTime(next[id]))
	} else {
		m.Status = fmt.Sprintf("%s %s %s", id, iconArrow, formatTime(next[id]))
	}
	return m
}

func (m DragModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Project.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ drag  r reset  q quit"))
	b.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i, id := range m.Schedule.Order {
		t, ok := m.Project.Task(id)
		if !ok {
			continue
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := ""
		if m.Schedule.IsCritical(id) {
			marker = "*"
		}
		rows = append(rows, []string{
			cursor,
			id,
			t.Name,
			strconv.Itoa(t.Duration),
			formatTime(m.Schedule.ES[id]),
			formatTime(m.Schedule.EF[id]),
			formatTime(m.Schedule.Slack[id]),
			marker,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Task", "Dur", "ES", "EF", "Slack", "Crit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(m.Schedule.Order) {
				return lipgloss.NewStyle()
			}
			id := m.Schedule.Order[row]
			base := lipgloss.NewStyle().Foreground(colorWhite)
			if m.Schedule.IsCritical(id) {
				base = base.Foreground(colorRed)
			}
			if row == m.Cursor {
				return listSelectedStyle.Foreground(base.GetForeground())
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("duration ") + StyleNumber.Render(formatTime(m.Schedule.Duration)))
	if m.Status != "" {
		b.WriteString(StyleDim.Render("  ·  ") + StyleDim.Render(m.Status))
	}
	b.WriteString("\n")

	return b.String()
}
