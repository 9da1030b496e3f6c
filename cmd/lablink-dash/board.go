package main

import (
	"fmt"
	"strings"

	"lablink/pkg/devicecode"
	"lablink/pkg/label"
	"lablink/pkg/linker"
	"lablink/pkg/taskboard"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	statusBar := m.renderStatusBar()

	switch m.view {
	case linkView:
		return statusBar + "\n" + m.renderLinkView()
	case templateView:
		return statusBar + "\n" + m.renderTemplateView()
	case filterView:
		return statusBar + "\n" + m.renderFilterView()
	case confirmUnlinkView:
		return statusBar + "\n" + m.renderConfirmUnlink()
	default:
		return statusBar + "\n" + m.renderBoard()
	}
}

// renderStatusBar renders the project id, selection summary, and the last
// status or error message.
func (m Model) renderStatusBar() string {
	selection := fmt.Sprintf("%d selected", m.svc.board.SelectionCount())
	switch m.svc.board.Selection() {
	case taskboard.SelectionAll:
		selection += " (all)"
	case taskboard.SelectionNone:
		selection = "none selected"
	}

	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("lablink " + m.projectID),
		lipgloss.NewStyle().Render(" | "),
		lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(selection),
	}

	if m.lastErr != nil {
		parts = append(parts,
			lipgloss.NewStyle().Render(" | "),
			lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.lastErr.Error()),
		)
	} else if m.status != "" {
		parts = append(parts,
			lipgloss.NewStyle().Render(" | "),
			lipgloss.NewStyle().Foreground(m.theme.Success).Render(m.status),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

// renderBoard renders the task list with selection checkboxes and link state
// markers.
func (m Model) renderBoard() string {
	visible := m.svc.board.FilteredTasks()
	if len(visible) == 0 {
		empty := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 0)
		return empty.Render("no tasks match the current filters") + "\n" + m.renderBoardHelp()
	}

	var b strings.Builder
	for i, t := range visible {
		b.WriteString(m.renderTaskLine(i, t))
		b.WriteString("\n")
	}
	b.WriteString(m.renderBoardHelp())
	return b.String()
}

// renderTaskLine renders one task row: cursor, checkbox, link marker, serial,
// and composed label.
func (m Model) renderTaskLine(index int, t taskboard.Task) string {
	cursor := "  "
	if index == m.cursor {
		cursor = "▸ "
	}

	checkbox := "[ ]"
	if m.svc.board.Selected(t.ID) {
		checkbox = "[x]"
	}

	serial := ""
	if t.Linked() {
		serial = t.DeviceLink.SerialNumber
	}

	line := fmt.Sprintf("%s%s %s %-10s  %s",
		cursor, checkbox, m.stateMarker(t), serial, label.Compose(t, m.tpl))

	if index == m.cursor {
		return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(line)
	}
	if t.Linked() {
		return lipgloss.NewStyle().Foreground(m.theme.Success).Render(line)
	}
	return line
}

// renderBoardHelp renders the board key hints.
func (m Model) renderBoardHelp() string {
	help := "j/k move · space select · a all · c clear · f filter · enter link · u unlink · p template · e/E/r export · R refresh · q quit"
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 0).Render(help)
}

// renderLinkView renders the scan field with live validation warnings.
func (m Model) renderLinkView() string {
	task, _ := m.svc.board.Find(m.scanTaskID)

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Padding(1, 0).
		Render("Link device to " + label.Compose(task, m.tpl))

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(0, 1).
		Render(m.scan.View())

	parsed := devicecode.Parse(m.scan.Value())
	var lines []string
	if parsed.SerialNumber != "" || parsed.DeviceID != "" {
		lines = append(lines, fmt.Sprintf("serial: %s  device: %s", parsed.SerialNumber, parsed.DeviceID))
	}
	warnStyle := lipgloss.NewStyle().Foreground(m.theme.Warning)
	if w := devicecode.ValidateSerialNumber(parsed.SerialNumber); w != "" {
		lines = append(lines, warnStyle.Render(w))
	}
	if w := devicecode.ValidateDeviceID(parsed.DeviceID); w != "" {
		lines = append(lines, warnStyle.Render(w))
	}

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 0).
		Render("enter to link · esc to cancel")

	sections := []string{title, input}
	if len(lines) > 0 {
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, help)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTemplateView renders the label template editor with a live preview.
func (m Model) renderTemplateView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Padding(1, 0).
		Render("Label template")

	var b strings.Builder
	for i, f := range m.tpl.Fields {
		cursor := "  "
		if i == m.tplCursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, i+1, f)
		if i == m.tplCursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	hash := "off"
	if m.tpl.HashPrefix {
		hash = "on"
	}
	b.WriteString(fmt.Sprintf("   hash prefix: %s\n", hash))

	preview := ""
	if visible := m.svc.board.FilteredTasks(); len(visible) > 0 {
		preview = lipgloss.NewStyle().Foreground(m.theme.Secondary).
			Render("preview: " + label.Compose(visible[0], m.tpl))
	}

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 0).
		Render("j/k move · h/l change field · + add · - remove · # toggle hash · esc save")

	return lipgloss.JoinVertical(lipgloss.Left, title, b.String(), preview, help)
}

// renderFilterView renders the status and team filter checkboxes.
func (m Model) renderFilterView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Padding(1, 0).
		Render("Filters (within a group ORed, across groups ANDed)")

	opts := m.filterOptions()
	var b strings.Builder
	lastWasStatus := true
	for i, opt := range opts {
		if i == 0 || opt.isStatus != lastWasStatus {
			group := "Teams"
			if opt.isStatus {
				group = "Statuses"
			}
			b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(group))
			b.WriteString("\n")
		}
		lastWasStatus = opt.isStatus

		cursor := "  "
		if i == m.filterCursor {
			cursor = "▸ "
		}
		checkbox := "[ ]"
		if opt.active {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, checkbox, opt.name)
		if i == m.filterCursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 0).
		Render("j/k move · space toggle · esc back")

	return lipgloss.JoinVertical(lipgloss.Left, title, b.String(), help)
}

// renderConfirmUnlink renders the unlink confirmation prompt.
func (m Model) renderConfirmUnlink() string {
	task, _ := m.svc.board.Find(m.unlinkTaskID)

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Warning).Padding(1, 0).
		Render("Unlink " + label.Compose(task, m.tpl) + "?")

	warning := lipgloss.NewStyle().Foreground(m.theme.Warning).Width(70).
		Render(linker.UnlinkWarning)

	help := lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 0).
		Render("y to unlink · n to cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, warning, help)
}
