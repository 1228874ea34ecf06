package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/holotask/internal/cli/formatter"
	"github.com/alexanderramin/holotask/internal/decompose"
	"github.com/alexanderramin/holotask/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tuiScreen int

const (
	screenLogin tuiScreen = iota
	screenMain
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAddTask
	modeAddSubtask
)

// listRow is one selectable line: a task, or a subtask when subID is set.
type listRow struct {
	taskID string
	subID  string
}

// refinedMsg reports a finished decomposition.
type refinedMsg struct {
	taskID     string
	refinement decompose.Refinement
	err        error
}

// tuiModel is the bubbletea model for the interactive view. All task state
// lives in the session controller; the model only keeps UI state.
type tuiModel struct {
	ctx  context.Context
	app  *App
	ctl  *session.Controller
	keys tuiKeyMap
	help help.Model
	spin spinner.Model

	login textinput.Model
	input textinput.Model

	screen   tuiScreen
	mode     inputMode
	cursor   int
	status   string
	width    int
	spinning bool
}

func newTUIModel(ctx context.Context, app *App) tuiModel {
	login := textinput.New()
	login.Placeholder = "Commander ID..."
	login.Prompt = "› "
	login.CharLimit = 64

	input := textinput.New()
	input.Prompt = "+ "
	input.CharLimit = 280

	m := tuiModel{
		ctx:   ctx,
		app:   app,
		ctl:   app.Session,
		keys:  defaultTUIKeyMap(),
		help:  help.New(),
		spin:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(formatter.StylePurple)),
		login: login,
		input: input,
		width: 80,
	}
	if _, ok := m.ctl.User(); ok {
		m.screen = screenMain
	} else {
		m.login.Focus()
	}
	return m
}

func (m tuiModel) Init() tea.Cmd {
	if m.screen == screenLogin {
		return textinput.Blink
	}
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case refinedMsg:
		if msg.err != nil {
			m.status = "Decomposition: " + msg.err.Error()
		} else if msg.refinement.IsFallback() {
			m.status = "Decomposition unavailable; fallback steps added."
		} else {
			m.status = fmt.Sprintf("Decomposed into %d sub-directives (%s, %s).",
				len(msg.refinement.Subtasks), msg.refinement.Category, msg.refinement.EstimatedTime)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyRefining() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m tuiModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		err := m.ctl.Login(m.ctx, m.login.Value())
		if errors.Is(err, session.ErrEmptyUsername) {
			m.status = "Commander ID required."
			return m, nil
		}
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		user, _ := m.ctl.User()
		m.login.Reset()
		m.login.Blur()
		m.screen = screenMain
		m.cursor = 0
		m.status = "Uplink established. Welcome, " + user + "."
		return m, nil
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		text := m.input.Value()
		mode := m.mode
		row, hasRow := m.selected()
		m.closeInput()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		switch mode {
		case modeAddTask:
			if _, _, err := m.ctl.AddTask(m.ctx, text); err != nil {
				m.status = err.Error()
			}
			m.cursor = 0
		case modeAddSubtask:
			if hasRow {
				if err := m.ctl.AddSubtask(m.ctx, row.taskID, text); err != nil {
					m.status = err.Error()
				}
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) openInput(mode inputMode, placeholder string) tea.Cmd {
	m.mode = mode
	m.status = ""
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *tuiModel) closeInput() {
	m.mode = modeBrowse
	m.input.Reset()
	m.input.Blur()
}

func (m tuiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, hasRow := m.selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.AddTask):
		return m, m.openInput(modeAddTask, "New objective node...")

	case key.Matches(msg, m.keys.AddSub):
		if hasRow {
			if !m.ctl.IsExpanded(row.taskID) {
				m.ctl.ToggleExpanded(row.taskID)
			}
			return m, m.openInput(modeAddSubtask, "New sub-directive...")
		}

	case key.Matches(msg, m.keys.Expand):
		if hasRow {
			m.ctl.ToggleExpanded(row.taskID)
			if row.subID != "" {
				m.cursor = m.rowIndex(listRow{taskID: row.taskID})
			}
		}

	case key.Matches(msg, m.keys.Toggle):
		if hasRow {
			var err error
			if row.subID != "" {
				err = m.ctl.ToggleSubtask(m.ctx, row.taskID, row.subID)
			} else {
				err = m.ctl.ToggleTask(m.ctx, row.taskID)
			}
			m.setErr(err)
		}

	case key.Matches(msg, m.keys.Priority):
		if hasRow {
			if t, ok := m.ctl.Task(row.taskID); ok {
				m.setErr(m.ctl.SetPriority(m.ctx, t.ID, t.Priority.Next()))
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if hasRow {
			if row.subID != "" {
				m.setErr(m.ctl.DeleteSubtask(m.ctx, row.taskID, row.subID))
			} else {
				m.setErr(m.ctl.DeleteTask(m.ctx, row.taskID))
			}
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Decompose):
		if hasRow {
			return m.startDecompose(row.taskID)
		}

	case key.Matches(msg, m.keys.Logout):
		m.setErr(m.ctl.Logout(m.ctx))
		m.screen = screenLogin
		m.cursor = 0
		m.status = "Uplink closed."
		return m, m.login.Focus()
	}
	return m, nil
}

func (m tuiModel) startDecompose(taskID string) (tea.Model, tea.Cmd) {
	pending, err := m.ctl.Decompose(m.ctx, taskID)
	if err != nil {
		m.setErr(err)
		return m, nil
	}
	m.status = ""
	ctx := m.ctx
	wait := func() tea.Msg {
		r, err := pending.Wait(ctx)
		return refinedMsg{taskID: pending.TaskID, refinement: r, err: err}
	}
	if m.spinning {
		return m, wait
	}
	m.spinning = true
	return m, tea.Batch(wait, m.spin.Tick)
}

func (m *tuiModel) setErr(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// rows lists the selectable lines in display order.
func (m tuiModel) rows() []listRow {
	var rows []listRow
	for _, t := range m.ctl.Tasks() {
		rows = append(rows, listRow{taskID: t.ID})
		if m.ctl.IsExpanded(t.ID) {
			for _, s := range t.Subtasks {
				rows = append(rows, listRow{taskID: t.ID, subID: s.ID})
			}
		}
	}
	return rows
}

func (m tuiModel) selected() (listRow, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return listRow{}, false
	}
	return rows[m.cursor], true
}

func (m tuiModel) rowIndex(r listRow) int {
	for i, row := range m.rows() {
		if row == r {
			return i
		}
	}
	return 0
}

func (m *tuiModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tuiModel) anyRefining() bool {
	for _, t := range m.ctl.Tasks() {
		if m.ctl.IsRefining(t.ID) {
			return true
		}
	}
	return false
}
