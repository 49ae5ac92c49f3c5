package freedesktop

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"gopkg.in/yaml.v3"
)

// Slot links a notification identity to the id the server assigned to it.
type Slot struct {
	Identity  notify.Identity `yaml:"identity"`
	ID        uint32          `yaml:"id"`
	Arguments string          `yaml:"arguments,omitempty"`
}

type slotFile struct {
	Slots []Slot `yaml:"slots"`
}

// SlotStore keeps the identity to server id mapping, persisted as YAML so
// a notification posted before a restart can still be replaced or removed.
// An empty path keeps the store in memory.
//
// Several processes may share one file. Writes take an advisory lock on
// <path>.lock, re-read the file and apply only their own change, so slots
// written by another process are kept.
type SlotStore struct {
	path string

	mu    sync.Mutex
	slots map[notify.Identity]Slot
}

// OpenSlotStore loads the store at path. A missing file yields an empty store.
func OpenSlotStore(path string) (*SlotStore, error) {
	s := &SlotStore{path: path, slots: make(map[notify.Identity]Slot)}
	if path == "" {
		return s, nil
	}

	slots, err := readSlots(path)
	if err != nil {
		return nil, err
	}
	s.slots = slots
	return s, nil
}

func readSlots(path string) (map[notify.Identity]Slot, error) {
	slots := make(map[notify.Identity]Slot)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return slots, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot store: %w", err)
	}

	var f slotFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse slot store %s: %w", path, err)
	}
	for _, slot := range f.Slots {
		slots[slot.Identity] = slot
	}
	return slots, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (s *SlotStore) Path() string {
	return s.path
}

// Get returns the slot for id.
func (s *SlotStore) Get(id notify.Identity) (Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
	slot, ok := s.slots[id]
	return slot, ok
}

// ByID returns the slot holding server id n.
func (s *SlotStore) ByID(n uint32) (Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
	for _, slot := range s.slots {
		if slot.ID == n {
			return slot, true
		}
	}
	return Slot{}, false
}

// All returns every slot ordered by identity key.
func (s *SlotStore) All() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
	return s.sortedLocked()
}

// Put stores slot and persists the store.
func (s *SlotStore) Put(slot Slot) error {
	return s.update(func(slots map[notify.Identity]Slot) bool {
		slots[slot.Identity] = slot
		return true
	})
}

// Delete removes the slot for id and persists the store.
func (s *SlotStore) Delete(id notify.Identity) error {
	return s.update(func(slots map[notify.Identity]Slot) bool {
		if _, ok := slots[id]; !ok {
			return false
		}
		delete(slots, id)
		return true
	})
}

// Reset drops every slot and removes the backing file.
func (s *SlotStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make(map[notify.Identity]Slot)
	if s.path == "" {
		return nil
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove slot store: %w", err)
	}
	return nil
}

// update applies change to the current file contents under the file lock
// and writes the result when change reports a modification. The in-memory
// view is refreshed from the file either way.
func (s *SlotStore) update(change func(map[notify.Identity]Slot) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		change(s.slots)
		return nil
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	slots, err := readSlots(s.path)
	if err != nil {
		return err
	}
	if change(slots) {
		if err := writeSlots(s.path, slots); err != nil {
			return err
		}
	}
	s.slots = slots
	return nil
}

// refreshLocked picks up slots written by other processes. Files are
// replaced by rename, so reading needs no lock. An unreadable file keeps
// the current view.
func (s *SlotStore) refreshLocked() {
	if s.path == "" {
		return
	}
	if slots, err := readSlots(s.path); err == nil {
		s.slots = slots
	}
}

func (s *SlotStore) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create slot store dir: %w", err)
	}
	return lockFile(s.path + ".lock")
}

func (s *SlotStore) sortedLocked() []Slot {
	return sortSlots(s.slots)
}

func sortSlots(slots map[notify.Identity]Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identity.Key() < out[j].Identity.Key()
	})
	return out
}

func writeSlots(path string, slots map[notify.Identity]Slot) error {
	data, err := yaml.Marshal(slotFile{Slots: sortSlots(slots)})
	if err != nil {
		return fmt.Errorf("encode slot store: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write slot store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace slot store: %w", err)
	}
	return nil
}
