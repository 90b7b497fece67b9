package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hardpoint/pkg/pipeline"
	"github.com/matzehuels/hardpoint/pkg/render"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for the interactive frame browser.
func (c *CLI) browseCommand() *cobra.Command {
	fraction := pipeline.DefaultFraction

	cmd := &cobra.Command{
		Use:   "browse [design.toml]",
		Short: "Browse the solved frame tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			s, err := runner.SolveOnly(cmd.Context(), pipeline.Options{
				DesignFile: args[0],
				Fraction:   fraction,
			})
			if err != nil {
				return err
			}
			rep, err := render.BuildReport(s)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewFrameBrowserModel(rep))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&fraction, "fraction", fraction, "uniform design-space fraction in [0, 1]")

	return cmd
}

// FrameBrowserModel is the bubbletea model for browsing frames and points.
type FrameBrowserModel struct {
	Report   *render.Report
	Cursor   int
	Expanded bool // whether the selected frame's points are shown
	Height   int
	Offset   int
}

// NewFrameBrowserModel creates a browser over a built report.
func NewFrameBrowserModel(rep *render.Report) FrameBrowserModel {
	return FrameBrowserModel{Report: rep, Height: 15}
}

func (m FrameBrowserModel) Init() tea.Cmd {
	return nil
}

func (m FrameBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Expanded && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Expanded && m.Cursor < len(m.Report.Frames)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FrameBrowserModel) View() string {
	if m.Expanded {
		return m.pointView()
	}
	return m.frameView()
}

// frameView lists the frames of the solved linkage.
func (m FrameBrowserModel) frameView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Frames"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ points  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Report.Frames) {
		end = len(m.Report.Frames)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Report.Frames[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		parent := "root"
		if f.Parent != "" {
			parent = "parent " + f.Parent
		}
		line := fmt.Sprintf("%s%-4s %-22s %s · %d points",
			cursor, f.Key, f.Title, parent, len(f.Points))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// pointView shows the selected frame's points as a table.
func (m FrameBrowserModel) pointView() string {
	f := m.Report.Frames[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(f.Key + " · " + f.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for _, p := range f.Points {
		rows = append(rows, []string{
			p.Key,
			p.Title,
			formatVec(p.Local),
			formatVec(p.Ground),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Point", "Title", "Local", "Ground").
		Rows(rows...)
	b.WriteString(t.String())
	b.WriteString("\n")

	return b.String()
}
