// Package memory provides an in-process notification platform. It keeps the
// notification history in a map, records every call, and lets callers fire
// activations and dismissals by hand. It backs the "memory" platform setting
// and the tests of the packages above it.
package memory

import (
	"context"
	"sync"

	"github.com/hay-kot/desknotify/internal/core/notify"
)

// Op names a platform operation.
type Op string

const (
	OpEnabled   Op = "enabled"
	OpShow      Op = "show"
	OpUpdate    Op = "update"
	OpRemove    Op = "remove"
	OpClear     Op = "clear"
	OpUninstall Op = "uninstall"
)

// Call captures a single platform call.
type Call struct {
	Op       Op
	Identity notify.Identity
	Content  notify.Content
	Data     map[string]string
	Result   notify.UpdateResult
}

// Platform is an in-memory notify.Platform, notify.ActivationSource and
// notify.Installation.
type Platform struct {
	// Disabled makes Enabled report false.
	Disabled bool
	// Packaged makes IsPackaged report true.
	Packaged bool
	// Errors maps operations to the error they return.
	Errors map[Op]error

	mu       sync.Mutex
	calls    []Call
	active   map[notify.Identity]notify.Content
	nextID   int
	handlers map[int]func(notify.Activation)
}

var (
	_ notify.Platform         = (*Platform)(nil)
	_ notify.ActivationSource = (*Platform)(nil)
	_ notify.Installation     = (*Platform)(nil)
)

// New returns an empty platform with notifications enabled.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) record(c Call) error {
	p.calls = append(p.calls, c)
	if p.Errors != nil {
		return p.Errors[c.Op]
	}
	return nil
}

func (p *Platform) ensure() {
	if p.active == nil {
		p.active = make(map[notify.Identity]notify.Content)
	}
}

// Enabled reports !Disabled.
func (p *Platform) Enabled(_ context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Call{Op: OpEnabled}); err != nil {
		return false, err
	}
	return !p.Disabled, nil
}

// Show stores content under id, replacing what was there.
func (p *Platform) Show(_ context.Context, content notify.Content, id notify.Identity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Call{Op: OpShow, Identity: id, Content: content}); err != nil {
		return err
	}
	p.ensure()
	p.active[id] = content
	return nil
}

// Update merges data into the stored content, or reports NotFound when the
// slot is empty.
func (p *Platform) Update(_ context.Context, data map[string]string, id notify.Identity) (notify.UpdateResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	content, ok := p.active[id]
	result := notify.UpdateSucceeded
	if !ok {
		result = notify.UpdateNotFound
	}

	if err := p.record(Call{Op: OpUpdate, Identity: id, Data: data, Result: result}); err != nil {
		return notify.UpdateNotFound, err
	}
	if !ok {
		return result, nil
	}

	merged := make(map[string]string, len(content.Data)+len(data))
	for k, v := range content.Data {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	content.Data = merged
	p.active[id] = content
	return result, nil
}

// Remove deletes the slot.
func (p *Platform) Remove(_ context.Context, id notify.Identity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Call{Op: OpRemove, Identity: id}); err != nil {
		return err
	}
	delete(p.active, id)
	return nil
}

// Clear deletes every slot.
func (p *Platform) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Call{Op: OpClear}); err != nil {
		return err
	}
	p.active = nil
	return nil
}

// IsPackaged reports the Packaged field.
func (p *Platform) IsPackaged() bool {
	return p.Packaged
}

// Uninstall records the call and clears every slot.
func (p *Platform) Uninstall(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record(Call{Op: OpUninstall}); err != nil {
		return err
	}
	p.active = nil
	return nil
}

// OnActivated registers handler for Activate.
func (p *Platform) OnActivated(handler func(notify.Activation)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handlers == nil {
		p.handlers = make(map[int]func(notify.Activation))
	}
	p.nextID++
	id := p.nextID
	p.handlers[id] = handler

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.handlers, id)
	}
}

// Activate delivers a to every registered handler, as if the user clicked
// a notification.
func (p *Platform) Activate(a notify.Activation) {
	p.mu.Lock()
	handlers := make([]func(notify.Activation), 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(a)
	}
}

// Dismiss drops the slot without recording a call, as if the user closed
// the notification.
func (p *Platform) Dismiss(id notify.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, id)
}

// Active returns the content currently shown in slot id.
func (p *Platform) Active(id notify.Identity) (notify.Content, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.active[id]
	return c, ok
}

// Handlers returns the number of registered activation handlers.
func (p *Platform) Handlers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handlers)
}

// Calls returns a copy of the recorded calls.
func (p *Platform) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// Ops returns the recorded operations in order.
func (p *Platform) Ops() []Op {
	p.mu.Lock()
	defer p.mu.Unlock()
	ops := make([]Op, len(p.calls))
	for i, c := range p.calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was called.
func (p *Platform) Count(op Op) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset clears recorded calls. Active slots are kept.
func (p *Platform) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
}
