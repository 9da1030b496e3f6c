package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"lablink/pkg/export"
	"lablink/pkg/label"
	"lablink/pkg/taskboard"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg triggers the periodic task refresh.
type tickMsg time.Time

// tasksMsg carries a freshly fetched task list with persisted links attached.
type tasksMsg struct {
	tasks []taskboard.Task
	err   error
}

// linkDoneMsg reports the outcome of a link attempt.
type linkDoneMsg struct {
	taskID string
	link   *taskboard.DeviceLink
	err    error
}

// unlinkDoneMsg reports the outcome of an unlink.
type unlinkDoneMsg struct {
	taskID string
	err    error
}

// exportDoneMsg reports a written export file.
type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// refreshInterval is how often the task list is re-fetched without a
// file change notification.
const refreshInterval = 30 * time.Second

// tickCmd returns a command that sends a tickMsg after the refresh interval.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchTasksCmd fetches the project's tasks and overlays the stored links.
func fetchTasksCmd(svc *services, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		tasks, err := svc.tasks.FetchTasks(ctx, projectID)
		if err != nil {
			return tasksMsg{err: err}
		}

		links, err := svc.links.List(ctx, projectID)
		if err != nil {
			return tasksMsg{err: err}
		}
		byTask := make(map[string]taskboard.DeviceLink, len(links))
		for _, l := range links {
			byTask[l.TaskID] = l
		}
		for i := range tasks {
			if l, ok := byTask[tasks[i].ID]; ok {
				rec := l
				tasks[i].DeviceLink = &rec
			}
		}
		return tasksMsg{tasks: tasks}
	}
}

// linkCmd runs the link orchestration for one task.
func linkCmd(svc *services, taskID, serial, device string, tpl label.Template) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		rec, err := svc.orch.Link(ctx, taskID, serial, device, tpl)
		return linkDoneMsg{taskID: taskID, link: rec, err: err}
	}
}

// unlinkCmd removes one task's device link.
func unlinkCmd(svc *services, taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		return unlinkDoneMsg{taskID: taskID, err: svc.orch.Unlink(ctx, taskID)}
	}
}

// exportCmd renders one export for the selected tasks and writes it to the
// current directory.
func exportCmd(kind string, tasks []taskboard.Task, tpl label.Template) tea.Cmd {
	return func() tea.Msg {
		var (
			content  string
			fileName string
			err      error
		)
		switch kind {
		case "labels":
			fileName = export.LabelsFileName
			content, err = export.Labels(tasks, tpl)
		case "tasks":
			fileName = export.AllTasksFileName
			content, err = export.AllTasks(tasks, tpl)
		case "rooms":
			fileName = export.RoomsFileName
			content, err = export.Rooms(tasks)
		}
		if err != nil {
			return exportDoneMsg{err: err}
		}

		path := filepath.Join(".", fileName)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path, count: len(tasks)}
	}
}
