package main

import (
	"fmt"

	"lablink/pkg/devicecode"
	"lablink/pkg/label"
	"lablink/pkg/linker"
	"lablink/pkg/taskboard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// viewType represents the active dashboard view.
type viewType int

const (
	// boardView shows the selectable task list.
	boardView viewType = iota
	// filterView shows the status/team filter checkboxes.
	filterView
	// linkView shows the device code scan field for one task.
	linkView
	// templateView shows the label template editor.
	templateView
	// confirmUnlinkView asks before removing a device link.
	confirmUnlinkView
)

// Model is the Bubble Tea model for the lablink task board.
type Model struct {
	projectID string
	svc       *services
	theme     Theme

	view   viewType
	cursor int
	width  int
	height int

	// tpl is the project's label template, loaded once and kept in sync
	// with edits from the template view.
	tpl label.Template

	// Link view state.
	scan       textinput.Model
	scanTaskID string

	// Template view state.
	tplCursor int

	// Filter view state.
	filterCursor int

	// Unlink confirmation state.
	unlinkTaskID string

	// Status bar state.
	status  string
	lastErr error
}

// newModel creates a Model for one project.
func newModel(projectID string, svc *services, tpl label.Template) Model {
	scan := textinput.New()
	scan.Placeholder = "scan QR code, barcode, or type \"<serial> <device-id>\""
	scan.CharLimit = 200
	scan.Width = 60

	return Model{
		projectID: projectID,
		svc:       svc,
		theme:     DefaultTheme(),
		view:      boardView,
		tpl:       tpl,
		scan:      scan,
		status:    "loading tasks...",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{fetchTasksCmd(m.svc, m.projectID), tickCmd()}
	if w := watchLinkDir(m.svc.linkDir); w != nil {
		cmds = append(cmds, w)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tasksMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.status = ""
			return m, nil
		}
		m.lastErr = nil
		m.status = ""
		m.svc.board.SetTasks(msg.tasks)
		m.cursor = clamp(m.cursor, len(m.svc.board.FilteredTasks()))

	case linkDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.status = fmt.Sprintf("linked %s as %q", msg.link.SerialNumber, msg.link.DeviceName)
		m.view = boardView

	case unlinkDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.status = fmt.Sprintf("unlinked task %s", msg.taskID)

	case exportDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.status = fmt.Sprintf("wrote %s (%d tasks)", msg.path, msg.count)

	case tickMsg:
		return m, tea.Batch(fetchTasksCmd(m.svc, m.projectID), tickCmd())

	case fsChangeMsg:
		// Another invocation changed the link database; refetch and re-arm
		// the watcher.
		cmds := []tea.Cmd{fetchTasksCmd(m.svc, m.projectID)}
		if w := watchLinkDir(m.svc.linkDir); w != nil {
			cmds = append(cmds, w)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// handleKeyPress dispatches keyboard input to the active view.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case linkView:
		return m.handleLinkViewKeys(key, msg)
	case templateView:
		return m.handleTemplateViewKeys(key)
	case filterView:
		return m.handleFilterViewKeys(key)
	case confirmUnlinkView:
		return m.handleConfirmUnlinkKeys(key)
	default:
		return m.handleBoardViewKeys(key)
	}
}

// handleBoardViewKeys processes keyboard input in the board view.
func (m Model) handleBoardViewKeys(key string) (tea.Model, tea.Cmd) {
	visible := m.svc.board.FilteredTasks()

	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if t, ok := taskAt(visible, m.cursor); ok {
			m.svc.board.ToggleSelection(t.ID)
		}
	case "a":
		m.svc.board.SelectAllVisible()
	case "c":
		m.svc.board.ClearSelection()
	case "f":
		m.view = filterView
		m.filterCursor = 0
	case "enter":
		if t, ok := taskAt(visible, m.cursor); ok {
			m.scanTaskID = t.ID
			m.scan.Reset()
			m.scan.Focus()
			m.view = linkView
		}
	case "u":
		if t, ok := taskAt(visible, m.cursor); ok && t.Linked() {
			m.unlinkTaskID = t.ID
			m.view = confirmUnlinkView
		}
	case "p":
		m.tplCursor = 0
		m.view = templateView
	case "e":
		return m.startExport("labels")
	case "E":
		return m.startExport("tasks")
	case "r":
		return m.startExport("rooms")
	case "R":
		m.status = "refreshing..."
		return m, fetchTasksCmd(m.svc, m.projectID)
	}
	return m, nil
}

// startExport kicks off an export of the selected tasks.
func (m Model) startExport(kind string) (tea.Model, tea.Cmd) {
	selected := m.svc.board.SelectedTasks()
	if len(selected) == 0 {
		m.status = "select tasks first (space, or a for all)"
		return m, nil
	}
	return m, exportCmd(kind, selected, m.tpl)
}

// handleLinkViewKeys processes keyboard input in the link view.
func (m Model) handleLinkViewKeys(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.view = boardView
		m.scanTaskID = ""
		return m, nil
	case "enter":
		parsed := devicecode.Parse(m.scan.Value())
		if !devicecode.Ready(parsed.SerialNumber, parsed.DeviceID) {
			// Warnings already shown under the field; stay put.
			return m, nil
		}
		taskID := m.scanTaskID
		m.status = fmt.Sprintf("linking %s...", parsed.SerialNumber)
		return m, linkCmd(m.svc, taskID, parsed.SerialNumber, parsed.DeviceID, m.tpl)
	}

	var cmd tea.Cmd
	m.scan, cmd = m.scan.Update(msg)
	return m, cmd
}

// handleTemplateViewKeys processes keyboard input in the template editor.
// Edits are saved on exit.
func (m Model) handleTemplateViewKeys(key string) (tea.Model, tea.Cmd) {
	fields := label.FieldNames()

	switch key {
	case "esc", "q":
		if err := m.svc.labels.Save(m.projectID, m.tpl); err != nil {
			m.lastErr = err
		} else {
			m.status = "label template saved"
		}
		m.view = boardView
	case "j", "down":
		if m.tplCursor < len(m.tpl.Fields)-1 {
			m.tplCursor++
		}
	case "k", "up":
		if m.tplCursor > 0 {
			m.tplCursor--
		}
	case "left", "h":
		m.tpl.Fields = cycleField(m.tpl.Fields, m.tplCursor, fields, -1)
	case "right", "l":
		m.tpl.Fields = cycleField(m.tpl.Fields, m.tplCursor, fields, +1)
	case "+":
		m.tpl.Fields = append(m.tpl.Fields, fields[0])
		m.tplCursor = len(m.tpl.Fields) - 1
	case "-":
		if len(m.tpl.Fields) > 1 {
			m.tpl.Fields = append(m.tpl.Fields[:m.tplCursor], m.tpl.Fields[m.tplCursor+1:]...)
			m.tplCursor = clamp(m.tplCursor, len(m.tpl.Fields))
		}
	case "#":
		m.tpl.HashPrefix = !m.tpl.HashPrefix
	}
	return m, nil
}

// handleFilterViewKeys processes keyboard input in the filter view.
func (m Model) handleFilterViewKeys(key string) (tea.Model, tea.Cmd) {
	opts := m.filterOptions()

	switch key {
	case "esc", "q", "f":
		m.view = boardView
		m.cursor = clamp(m.cursor, len(m.svc.board.FilteredTasks()))
	case "j", "down":
		if m.filterCursor < len(opts)-1 {
			m.filterCursor++
		}
	case "k", "up":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case " ", "enter":
		if m.filterCursor < len(opts) {
			opt := opts[m.filterCursor]
			if opt.isStatus {
				m.svc.board.ToggleStatusFilter(opt.id)
			} else {
				m.svc.board.ToggleCategoryFilter(opt.id)
			}
		}
	}
	return m, nil
}

// handleConfirmUnlinkKeys processes keyboard input in the unlink confirmation.
func (m Model) handleConfirmUnlinkKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y":
		taskID := m.unlinkTaskID
		m.unlinkTaskID = ""
		m.view = boardView
		return m, unlinkCmd(m.svc, taskID)
	case "n", "esc", "q":
		m.unlinkTaskID = ""
		m.view = boardView
	}
	return m, nil
}

// filterOption is one toggleable row in the filter view.
type filterOption struct {
	id       string
	name     string
	isStatus bool
	active   bool
}

// filterOptions derives the distinct statuses and teams from the full task
// list, statuses first, in task order.
func (m Model) filterOptions() []filterOption {
	var opts []filterOption
	seenStatus := make(map[string]bool)
	seenTeam := make(map[string]bool)

	tasks := m.svc.board.Tasks()
	for _, t := range tasks {
		if t.StatusID != "" && !seenStatus[t.StatusID] {
			seenStatus[t.StatusID] = true
			opts = append(opts, filterOption{
				id:       t.StatusID,
				name:     t.StatusName,
				isStatus: true,
				active:   m.svc.board.StatusFilterActive(t.StatusID),
			})
		}
	}
	for _, t := range tasks {
		if t.TeamID != "" && !seenTeam[t.TeamID] {
			seenTeam[t.TeamID] = true
			opts = append(opts, filterOption{
				id:     t.TeamID,
				name:   t.TeamName,
				active: m.svc.board.CategoryFilterActive(t.TeamID),
			})
		}
	}
	return opts
}

// taskAt returns the task under the cursor, if any.
func taskAt(tasks []taskboard.Task, cursor int) (taskboard.Task, bool) {
	if cursor < 0 || cursor >= len(tasks) {
		return taskboard.Task{}, false
	}
	return tasks[cursor], true
}

// cycleField replaces the field at idx with the next/previous known field.
func cycleField(current []string, idx int, known []string, dir int) []string {
	if idx < 0 || idx >= len(current) {
		return current
	}
	pos := 0
	for i, f := range known {
		if f == current[idx] {
			pos = i
			break
		}
	}
	pos = (pos + dir + len(known)) % len(known)

	out := make([]string, len(current))
	copy(out, current)
	out[idx] = known[pos]
	return out
}

// clamp keeps a cursor inside [0, n).
func clamp(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// stateMarker returns the one-character link state marker for a task.
func (m Model) stateMarker(t taskboard.Task) string {
	switch m.svc.orch.TaskState(t.ID) {
	case linker.Linking, linker.Unlinking:
		return "~"
	}
	if t.Linked() {
		return "*"
	}
	return " "
}
