package taskboard

import (
	"sort"
	"sync"
)

// SelectionState describes the checkbox header for the current view.
type SelectionState int

const (
	// SelectionNone means no visible task is selected.
	SelectionNone SelectionState = iota
	// SelectionSome means some, but not all, visible tasks are selected.
	SelectionSome
	// SelectionAll means every visible task is selected.
	SelectionAll
)

// Store owns the task collection, the active status/category filters, and the
// set of selected task ids. All mutation goes through its methods; every
// mutation that can change the filtered view re-runs Reconcile so the
// selection never references a task outside the visible set.
type Store struct {
	mu sync.Mutex

	tasks          []Task
	statusFilter   map[string]struct{}
	categoryFilter map[string]struct{}
	selected       map[string]struct{}
}

// NewStore returns an empty store with no filters and no selection.
func NewStore() *Store {
	return &Store{
		statusFilter:   make(map[string]struct{}),
		categoryFilter: make(map[string]struct{}),
		selected:       make(map[string]struct{}),
	}
}

// SetTasks replaces the task collection. Tasks are kept sorted ascending by
// sequence number; label numbering and export ordering depend on it. The
// selection is pruned to ids still visible under the current filters.
func (s *Store) SetTasks(tasks []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].SequenceNumber < s.tasks[j].SequenceNumber
	})

	s.reconcileLocked()
}

// Tasks returns a copy of the full task collection, unfiltered.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ToggleStatusFilter flips membership of id in the status filter set.
func (s *Store) ToggleStatusFilter(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	toggle(s.statusFilter, id)
	s.reconcileLocked()
}

// ToggleCategoryFilter flips membership of id in the category (team) filter set.
func (s *Store) ToggleCategoryFilter(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	toggle(s.categoryFilter, id)
	s.reconcileLocked()
}

// StatusFilterActive reports whether id is part of the status filter.
func (s *Store) StatusFilterActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.statusFilter[id]
	return ok
}

// CategoryFilterActive reports whether id is part of the category filter.
func (s *Store) CategoryFilterActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.categoryFilter[id]
	return ok
}

// FilteredTasks returns the tasks passing the active filters, sorted ascending
// by sequence number. An empty filter set passes everything.
func (s *Store) FilteredTasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filteredLocked()
}

// ToggleSelection flips membership of id in the selection. Toggling an id that
// is not currently visible is a no-op.
func (s *Store) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := false
	for _, t := range s.filteredLocked() {
		if t.ID == id {
			visible = true
			break
		}
	}
	if !visible {
		return
	}
	toggle(s.selected, id)
}

// Selected reports whether the task id is currently selected.
func (s *Store) Selected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.selected[id]
	return ok
}

// SelectAllVisible sets the selection to exactly the current filtered set.
func (s *Store) SelectAllVisible() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = make(map[string]struct{})
	for _, t := range s.filteredLocked() {
		s.selected[t.ID] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = make(map[string]struct{})
}

// SelectedTasks returns the selected tasks in filtered-view order.
func (s *Store) SelectedTasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Task
	for _, t := range s.filteredLocked() {
		if _, ok := s.selected[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// SelectionCount returns the number of selected tasks.
func (s *Store) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.selected)
}

// Selection derives the none/some/all indicator from the filtered view and
// the selection set. It is never stored.
func (s *Store) Selection() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filteredLocked()
	switch {
	case len(s.selected) == 0 || len(filtered) == 0:
		return SelectionNone
	case len(s.selected) == len(filtered):
		return SelectionAll
	default:
		return SelectionSome
	}
}

// AttachLink sets the device link on the task with the given id. Only the
// link orchestrator calls this.
func (s *Store) AttachLink(taskID string, link *DeviceLink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].DeviceLink = link
			return
		}
	}
}

// DetachLink clears the device link on the task with the given id.
func (s *Store) DetachLink(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].DeviceLink = nil
			return
		}
	}
}

// Find returns the task with the given id and whether it exists.
func (s *Store) Find(taskID string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return Task{}, false
}

// filteredLocked computes the filtered view. Callers must hold mu.
func (s *Store) filteredLocked() []Task {
	var out []Task
	for _, t := range s.tasks {
		if !passes(s.statusFilter, t.StatusID) {
			continue
		}
		if !passes(s.categoryFilter, t.TeamID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// reconcileLocked prunes the selection against the current filtered view.
// Callers must hold mu.
func (s *Store) reconcileLocked() {
	s.selected = Reconcile(s.selected, s.filteredLocked())
}

// Reconcile intersects a selection with the visible task set and returns the
// surviving selection. Selections dropped here are never restored, even if a
// later filter change makes the task visible again. The function is pure so
// the invariant can be tested in isolation.
func Reconcile(selected map[string]struct{}, visible []Task) map[string]struct{} {
	out := make(map[string]struct{}, len(selected))
	for _, t := range visible {
		if _, ok := selected[t.ID]; ok {
			out[t.ID] = struct{}{}
		}
	}
	return out
}

// passes implements the per-criterion filter rule: an empty filter set lets
// every value through.
func passes(filter map[string]struct{}, id string) bool {
	if len(filter) == 0 {
		return true
	}
	_, ok := filter[id]
	return ok
}

// toggle flips membership of id in set.
func toggle(set map[string]struct{}, id string) {
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
}
