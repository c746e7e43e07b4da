package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/ts"
)

const defaultWidth = 80

// Plan renders the discovery targets of a dry run
type Plan struct {
	Host    string
	Targets []string
	width   int
}

// NewPlan creates a plan sized to the current terminal
func NewPlan(host string, targets []string) *Plan {
	width := defaultWidth
	if size, err := ts.GetSize(); err == nil && size.Col() > 0 {
		width = size.Col()
	}
	return &Plan{Host: host, Targets: targets, width: width}
}

// Render returns the styled plan
func (p *Plan) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(0, 1).
		MaxWidth(p.width)

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#999999"))

	title := titleStyle.Render("Discovery plan for " + p.Host)

	if len(p.Targets) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("nothing to report: literal address or public suffix"),
		)
	}

	lines := make([]string, 0, len(p.Targets))
	for i, target := range p.Targets {
		lines = append(lines, fmt.Sprintf("%d. POST http://%s/", i+1, target))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		boxStyle.Render(strings.Join(lines, "\n")),
	)
}

// Write renders the plan to w
func (p *Plan) Write(w io.Writer) error {
	_, err := fmt.Fprintln(w, p.Render())
	return err
}
