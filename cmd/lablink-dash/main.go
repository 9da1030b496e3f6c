// Package main implements the lablink-dash interactive task board.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: lablink-dash <project-id>")
		os.Exit(2)
	}
	projectID := os.Args[1]

	svc, err := newServices(projectID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lablink-dash: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	tpl, err := svc.labels.Load(projectID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lablink-dash: load label template: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(projectID, svc, tpl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "lablink-dash: %v\n", err)
		os.Exit(1)
	}
}
