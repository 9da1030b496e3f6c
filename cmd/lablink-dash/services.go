package main

import (
	"fmt"
	"os"
	"path/filepath"

	"lablink/internal/config"
	"lablink/pkg/airthings"
	"lablink/pkg/auditlog"
	"lablink/pkg/fieldwire"
	"lablink/pkg/label"
	"lablink/pkg/linker"
	"lablink/pkg/linkstore"
	"lablink/pkg/taskboard"
)

// services bundles the clients and stores the dashboard talks to.
type services struct {
	tasks   *fieldwire.Client
	links   *linkstore.Store
	audit   *auditlog.Log
	labels  *label.Store
	board   *taskboard.Store
	orch    *linker.Orchestrator
	linkDir string // directory holding the link database, watched for changes
}

// newServices loads the config and opens the stores for one project.
func newServices(projectID string) (*services, error) {
	home := stateHome()

	cfg, err := config.Load(configPath(home))
	if err != nil {
		return nil, err
	}
	locationID, err := cfg.LocationID(projectID)
	if err != nil {
		return nil, err
	}

	dbPath := linkDBPath(home)
	links, err := linkstore.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open link db: %w", err)
	}

	audit, err := auditlog.Open(dbPath)
	if err != nil {
		links.Close()
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	at := cfg.Airthings
	sink := airthings.New(at.APIURL, at.AccountsURL, at.ClientID, at.ClientSecret, at.AccountID)
	board := taskboard.NewStore()

	return &services{
		tasks:   fieldwire.New(cfg.Fieldwire.APIURL, cfg.Fieldwire.TokenURL, cfg.Fieldwire.APIToken),
		links:   links,
		audit:   audit,
		labels:  label.NewStore(filepath.Join(home, "templates")),
		board:   board,
		orch:    linker.New(sink, links, board, projectID, locationID).WithAudit(audit),
		linkDir: filepath.Dir(dbPath),
	}, nil
}

func (s *services) Close() error {
	auditErr := s.audit.Close()
	if err := s.links.Close(); err != nil {
		return err
	}
	return auditErr
}

// stateHome returns the lablink home directory from LABLINK_HOME or ~/.lablink.
func stateHome() string {
	if v := os.Getenv("LABLINK_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lablink"
	}
	return filepath.Join(home, ".lablink")
}

// configPath returns the config file path, honoring LABLINK_CONFIG_PATH.
func configPath(home string) string {
	if v := os.Getenv("LABLINK_CONFIG_PATH"); v != "" {
		return v
	}
	return filepath.Join(home, "config.yaml")
}

// linkDBPath returns the link database path, honoring LABLINK_DB_PATH.
func linkDBPath(home string) string {
	if v := os.Getenv("LABLINK_DB_PATH"); v != "" {
		return v
	}
	return filepath.Join(home, "links.db")
}
