package main

import (
	"context"
	"fmt"

	"lablink/internal/config"
	"lablink/pkg/airthings"
	"lablink/pkg/auditlog"
	"lablink/pkg/fieldwire"
	"lablink/pkg/label"
	"lablink/pkg/linker"
	"lablink/pkg/linkstore"
	"lablink/pkg/taskboard"
)

// app wires the configured service clients and stores together for a single
// command invocation.
type app struct {
	paths  *Paths
	cfg    *config.Config
	tasks  *fieldwire.Client
	links  *linkstore.Store
	labels *label.Store
	audit  *auditlog.Log
}

// newApp resolves paths, loads the config, and opens the link database.
// Callers must Close() the returned app.
func newApp() (*app, error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	cfg, err := config.Load(paths.ConfigPath)
	if err != nil {
		return nil, err
	}

	links, err := linkstore.Open(paths.LinkDBPath)
	if err != nil {
		return nil, fmt.Errorf("open link db: %w", err)
	}

	// The audit log shares the link database file.
	audit, err := auditlog.Open(paths.LinkDBPath)
	if err != nil {
		links.Close()
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	return &app{
		paths:  paths,
		cfg:    cfg,
		tasks:  fieldwire.New(cfg.Fieldwire.APIURL, cfg.Fieldwire.TokenURL, cfg.Fieldwire.APIToken),
		links:  links,
		labels: label.NewStore(paths.TemplateDir),
		audit:  audit,
	}, nil
}

func (a *app) Close() error {
	auditErr := a.audit.Close()
	if err := a.links.Close(); err != nil {
		return err
	}
	return auditErr
}

// deviceSink returns the device service client built from the config.
func (a *app) deviceSink() *airthings.Client {
	at := a.cfg.Airthings
	return airthings.New(at.APIURL, at.AccountsURL, at.ClientID, at.ClientSecret, at.AccountID)
}

// orchestrator builds a link orchestrator for a project, resolving its
// configured device location.
func (a *app) orchestrator(projectID string, board *taskboard.Store) (*linker.Orchestrator, error) {
	locationID, err := a.cfg.LocationID(projectID)
	if err != nil {
		return nil, err
	}
	return linker.New(a.deviceSink(), a.links, board, projectID, locationID).WithAudit(a.audit), nil
}

// loadBoard fetches a project's tasks and overlays the persisted device links.
func (a *app) loadBoard(ctx context.Context, projectID string) (*taskboard.Store, error) {
	tasks, err := a.tasks.FetchTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	links, err := a.links.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}

	board := taskboard.NewStore()
	board.SetTasks(tasks)
	for _, l := range links {
		rec := l
		board.AttachLink(rec.TaskID, &rec)
	}
	return board, nil
}

// template loads the project's label template, falling back to the default.
func (a *app) template(projectID string) (label.Template, error) {
	tpl, err := a.labels.Load(projectID)
	if err != nil {
		return label.Template{}, fmt.Errorf("load label template: %w", err)
	}
	return tpl, nil
}
