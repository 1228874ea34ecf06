package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "

	checkDone = "[x]"
	checkOpen = "[ ]"
)

// ListOptions controls FormatTaskList.
type ListOptions struct {
	// ExpandAll shows every task's subtasks.
	ExpandAll bool
	// Expanded, when set, selects which tasks show their subtasks.
	Expanded func(taskID string) bool
	// Refining, when set, marks tasks with an outstanding decomposition.
	Refining func(taskID string) bool
	BarWidth int
	// Now, when set, adds each task's age.
	Now time.Time
}

func (o ListOptions) expanded(id string) bool {
	return o.ExpandAll || (o.Expanded != nil && o.Expanded(id))
}

// Checkbox renders a completion box.
func Checkbox(done bool) string {
	if done {
		return StyleGreen.Render(checkDone)
	}
	return StyleDim.Render(checkOpen)
}

// FormatTaskLine renders one task row without its position.
func FormatTaskLine(t domain.Task, barWidth int, refining bool) string {
	if barWidth <= 0 {
		barWidth = 10
	}
	title := t.Text
	if t.Completed {
		title = Dim(title)
	}
	parts := []string{
		Checkbox(t.Completed),
		PriorityBadge(t.Priority),
		RenderCompactBar(t.Progress(), barWidth, t.Completed),
		fmt.Sprintf("%3d%%", t.PercentComplete()),
		title,
	}
	if n := len(t.Subtasks); n > 0 {
		parts = append(parts, Dim(fmt.Sprintf("(%d/%d)", t.CompletedSubtasks(), n)))
	}
	if refining {
		parts = append(parts, StylePurple.Render("refining…"))
	}
	return strings.Join(parts, " ")
}

// FormatSubtaskLine renders one subtask row without indentation.
func FormatSubtaskLine(s domain.Subtask) string {
	text := s.Text
	if s.Completed {
		text = Dim(text)
	}
	return Checkbox(s.Completed) + " " + text
}

// FormatTaskList renders tasks numbered from 1, with subtasks as a tree under
// expanded tasks.
func FormatTaskList(tasks []domain.Task, opts ListOptions) string {
	if len(tasks) == 0 {
		return Dim("No objectives yet. Add one with `holotask add <text>`.") + "\n"
	}

	numWidth := len(fmt.Sprint(len(tasks)))
	var b strings.Builder
	for i, t := range tasks {
		refining := opts.Refining != nil && opts.Refining(t.ID)
		num := StyleDim.Render(fmt.Sprintf("%*d.", numWidth, i+1))
		line := FormatTaskLine(t, opts.BarWidth, refining) + "  " + TruncID(t.ID)
		if !opts.Now.IsZero() {
			line += " " + Dim(HumanTimestamp(t.Created(), opts.Now))
		}
		fmt.Fprintf(&b, "%s %s\n", num, line)

		if !opts.expanded(t.ID) {
			continue
		}
		indent := strings.Repeat(" ", numWidth+2)
		for j, s := range t.Subtasks {
			conn := treeBranch
			if j == len(t.Subtasks)-1 {
				conn = treeCorner
			}
			fmt.Fprintf(&b, "%s%s%s %s\n", indent, StyleDim.Render(conn), StyleDim.Render(fmt.Sprintf("%d)", j+1)), FormatSubtaskLine(s))
		}
	}
	return b.String()
}

// FormatStats renders the completion summary for a user's tasks.
func FormatStats(username string, tasks []domain.Task) string {
	var done, subs, subsDone int
	for _, t := range tasks {
		if t.Completed {
			done++
		}
		subs += len(t.Subtasks)
		subsDone += t.CompletedSubtasks()
	}
	rate := domain.CompletionRate(tasks)

	rows := [][]string{
		{"Commander", username},
		{"Objectives", fmt.Sprintf("%d (%d completed)", len(tasks), done)},
		{"Sub-directives", fmt.Sprintf("%d/%d completed", subsDone, subs)},
		{"Fleet efficiency", RenderProgress(rate, 20)},
		{"Core", RenderCore(rate) + " " + Dim(CoreColor(rate))},
	}
	return RenderBox("Status", RenderTable([]string{"METRIC", "VALUE"}, rows))
}

// FormatRefinement describes a decomposition result.
func FormatRefinement(task domain.Task, subtasks []string, estimatedTime, category string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render("Decomposed"), Bold(task.Text))
	for _, s := range subtasks {
		fmt.Fprintf(&b, "  %s %s\n", StyleCyan.Render("+"), s)
	}
	fmt.Fprintf(&b, "%s %s   %s %s\n", Dim("Estimate:"), estimatedTime, Dim("Category:"), StylePurple.Render(category))
	return b.String()
}

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n")
	}
	return box.Render(content) + "\n"
}

// TruncID returns the first 8 characters of an id, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp renders t relative to now.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 14*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
