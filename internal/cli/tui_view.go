package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/holotask/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var (
	tuiTitleStyle  = lipgloss.NewStyle().Foreground(formatter.ColorCyan).Bold(true)
	tuiCursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorCyan).Bold(true)
	tuiPanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorPurple).
			Padding(1, 3)
)

func (m tuiModel) View() string {
	if m.screen == screenLogin {
		return m.viewLogin()
	}
	return m.viewMain()
}

func (m tuiModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("HOLOTASK") + "\n")
	b.WriteString(formatter.Dim("Secure Command Uplink") + "\n\n")
	b.WriteString(m.login.View() + "\n\n")
	if m.status != "" {
		b.WriteString(formatter.StyleYellow.Render(m.status) + "\n\n")
	}
	b.WriteString(formatter.Dim("PERSISTENT_STORAGE: LOCAL_DB_V2_ACTIVE") + "\n")
	b.WriteString(formatter.Dim("enter: connect · esc: quit"))
	return tuiPanelStyle.Render(b.String()) + "\n"
}

func (m tuiModel) viewMain() string {
	user, _ := m.ctl.User()
	tasks := m.ctl.Tasks()
	rate := m.ctl.CompletionRate()

	var b strings.Builder
	b.WriteString(m.viewHeader(user, rate) + "\n\n")

	if len(tasks) == 0 {
		b.WriteString(formatter.Dim("No objectives yet. Press a to add one.") + "\n")
	}

	row := 0
	for _, t := range tasks {
		line := formatter.FormatTaskLine(t, 10, false)
		if m.ctl.IsRefining(t.ID) {
			line += " " + m.spin.View() + formatter.StylePurple.Render(" refining…")
		}
		b.WriteString(m.cursorMark(row) + line + "\n")
		row++

		if !m.ctl.IsExpanded(t.ID) {
			continue
		}
		if len(t.Subtasks) == 0 {
			b.WriteString("     " + formatter.Dim("└─ no sub-directives (s to add, r to decompose)") + "\n")
		}
		for j, s := range t.Subtasks {
			conn := "├─ "
			if j == len(t.Subtasks)-1 {
				conn = "└─ "
			}
			b.WriteString(m.cursorMark(row) + "   " + formatter.Dim(conn) + formatter.FormatSubtaskLine(s) + "\n")
			row++
		}
	}

	if m.mode != modeBrowse {
		b.WriteString("\n" + m.input.View() + "\n")
		b.WriteString(formatter.Dim("enter: save · esc: cancel") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + formatter.StyleYellow.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m tuiModel) viewHeader(user string, rate float64) string {
	barWidth := 24
	if m.width > 0 && m.width < 60 {
		barWidth = 12
	}
	bar := progress.New(
		progress.WithSolidFill(formatter.CoreColor(rate)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
	left := tuiTitleStyle.Render("HOLOTASK") + formatter.Dim(" // ") + formatter.Bold(user)
	right := fmt.Sprintf("%s %s %3.0f%% %s",
		formatter.Dim("FLEET_EFFICIENCY"), bar.ViewAs(rate), rate*100, formatter.RenderCore(rate))
	return left + "   " + right
}

func (m tuiModel) cursorMark(row int) string {
	if m.mode == modeBrowse && row == m.cursor {
		return tuiCursorStyle.Render("› ")
	}
	return "  "
}
