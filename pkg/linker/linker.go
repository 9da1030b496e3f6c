// Package linker orchestrates linking a parsed, validated device to a task:
// it registers the device with the device service, persists the link record,
// and attaches the record to the in-memory task through the task store so the
// filter/selection invariant is preserved.
package linker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"lablink/pkg/airthings"
	"lablink/pkg/devicecode"
	"lablink/pkg/label"
	"lablink/pkg/taskboard"
)

// ErrLinkInFlight is returned when a link or unlink for the same task is
// already running. The attempt is rejected, never queued; the user retries
// once the first attempt settles.
var ErrLinkInFlight = errors.New("link operation already in flight for this task")

// ErrTaskNotFound is returned when the task id is not in the current
// collection.
var ErrTaskNotFound = errors.New("task not found")

// UnlinkWarning must be shown at unlink confirmation time. Removing the link
// record does not un-pair the physical device; that is a manual step in the
// device service.
const UnlinkWarning = "Unlinking removes the stored link only. The physical device " +
	"remains registered in the device service and must be removed there manually."

// State is the per-task link lifecycle.
type State int

const (
	// Unlinked means no device is linked and no operation is running.
	Unlinked State = iota
	// Linking means a link call is in flight.
	Linking
	// Linked means a device link is attached to the task.
	Linked
	// Unlinking means an unlink call is in flight.
	Unlinking
)

// DeviceSink registers devices with the external device service.
type DeviceSink interface {
	CreateDevice(ctx context.Context, locationID string, dev airthings.Device) error
}

// LinkStore persists link records.
type LinkStore interface {
	Insert(ctx context.Context, rec taskboard.DeviceLink) error
	Delete(ctx context.Context, projectID, taskID string) error
}

// Board is the task store surface the orchestrator mutates through. No other
// component writes task fields.
type Board interface {
	Find(taskID string) (taskboard.Task, bool)
	AttachLink(taskID string, link *taskboard.DeviceLink)
	DetachLink(taskID string)
}

// Auditor records completed link and unlink operations. Audit failures are
// logged, never surfaced: the link itself already succeeded.
type Auditor interface {
	RecordLink(ctx context.Context, rec taskboard.DeviceLink) error
	RecordUnlink(ctx context.Context, projectID, taskID string) error
}

// Orchestrator drives link and unlink for one project.
type Orchestrator struct {
	sink       DeviceSink
	links      LinkStore
	board      Board
	audit      Auditor
	projectID  string
	locationID string

	mu       sync.Mutex
	inFlight map[string]State
}

// New returns an orchestrator for the given project. locationID is the device
// service location devices are registered under.
func New(sink DeviceSink, links LinkStore, board Board, projectID, locationID string) *Orchestrator {
	return &Orchestrator{
		sink:       sink,
		links:      links,
		board:      board,
		projectID:  projectID,
		locationID: locationID,
		inFlight:   make(map[string]State),
	}
}

// WithAudit sets the auditor recording completed operations. Call before any
// Link or Unlink.
func (o *Orchestrator) WithAudit(a Auditor) *Orchestrator {
	o.audit = a
	return o
}

// TaskState returns the current lifecycle state for a task.
func (o *Orchestrator) TaskState(taskID string) State {
	o.mu.Lock()
	if st, ok := o.inFlight[taskID]; ok {
		o.mu.Unlock()
		return st
	}
	o.mu.Unlock()

	if task, ok := o.board.Find(taskID); ok && task.Linked() {
		return Linked
	}
	return Unlinked
}

// acquire marks a task operation in flight, or reports a conflict.
func (o *Orchestrator) acquire(taskID string, st State) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.inFlight[taskID]; ok {
		return ErrLinkInFlight
	}
	o.inFlight[taskID] = st
	return nil
}

// release clears the in-flight mark for a task.
func (o *Orchestrator) release(taskID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, taskID)
}

// Link registers the device and persists the link record, then attaches it to
// the task. Preconditions: both fields present and validator-clean. On any
// remote failure nothing is attached and the error is surfaced; there is no
// automatic retry.
func (o *Orchestrator) Link(ctx context.Context, taskID, serialNumber, deviceID string, tpl label.Template) (*taskboard.DeviceLink, error) {
	if warn := devicecode.ValidateSerialNumber(serialNumber); warn != "" {
		return nil, errors.New(warn)
	}
	if warn := devicecode.ValidateDeviceID(deviceID); warn != "" {
		return nil, errors.New(warn)
	}
	if !devicecode.Ready(serialNumber, deviceID) {
		return nil, errors.New("serial number and device ID are both required")
	}

	task, ok := o.board.Find(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}

	if err := o.acquire(taskID, Linking); err != nil {
		return nil, err
	}
	defer o.release(taskID)

	name := label.Compose(task, tpl)
	dev := airthings.Device{ID: deviceID, Name: name, SerialNumber: serialNumber}
	if err := o.sink.CreateDevice(ctx, o.locationID, dev); err != nil {
		return nil, fmt.Errorf("register device: %w", err)
	}

	rec := taskboard.DeviceLink{
		ID:           uuid.NewString(),
		ProjectID:    o.projectID,
		TaskID:       taskID,
		SerialNumber: serialNumber,
		DeviceID:     deviceID,
		DeviceName:   name,
		LinkedAt:     time.Now().UTC(),
	}
	if err := o.links.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist link: %w", err)
	}

	o.board.AttachLink(taskID, &rec)

	if o.audit != nil {
		if err := o.audit.RecordLink(ctx, rec); err != nil {
			log.Printf("auditlog: record link for task %s: %v", taskID, err)
		}
	}
	return &rec, nil
}

// Unlink deletes the persisted link record and detaches it from the task. It
// deliberately does not call the device service; callers present
// UnlinkWarning before invoking this.
func (o *Orchestrator) Unlink(ctx context.Context, taskID string) error {
	if err := o.acquire(taskID, Unlinking); err != nil {
		return err
	}
	defer o.release(taskID)

	if err := o.links.Delete(ctx, o.projectID, taskID); err != nil {
		return fmt.Errorf("remove link: %w", err)
	}

	o.board.DetachLink(taskID)

	if o.audit != nil {
		if err := o.audit.RecordUnlink(ctx, o.projectID, taskID); err != nil {
			log.Printf("auditlog: record unlink for task %s: %v", taskID, err)
		}
	}
	return nil
}
