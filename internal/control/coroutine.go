package control

import (
	"sync"

	"github.com/wayfinder-dap/wayfinder/internal/value"
)

// CoroutineStatus mirrors the host language's own coroutine status strings,
// surfaced verbatim in the `threads` DAP response's thread names.
type CoroutineStatus string

const (
	CoroutineRunning   CoroutineStatus = "running"
	CoroutineSuspended CoroutineStatus = "suspended"
	CoroutineNormal    CoroutineStatus = "normal"
	CoroutineDead      CoroutineStatus = "dead"
)

// CoroutineInfo describes one tracked coroutine, surfaced in the DAP
// `threads` response. This is a supplemented feature: the distilled
// specification models a single script thread, but the original
// implementation (wayfinder-tl/src/coroutine.rs) tracks every coroutine the
// script spawns so a breakpoint hit inside one is attributed to the right
// DAP "thread".
type CoroutineInfo struct {
	ThreadID int
	Ref      value.Ref
	Name     string
	Status   CoroutineStatus
}

// CoroutineRegistry assigns stable small-integer DAP thread IDs to
// interpreter coroutine registry references, for the lifetime of a debug
// session. The main script thread is always ThreadID 1.
type CoroutineRegistry struct {
	mu      sync.Mutex
	nextID  int
	byRef   map[value.Ref]int
	threads map[int]*CoroutineInfo
}

// MainThreadID is the reserved DAP thread ID for the main script thread.
const MainThreadID = 1

// NewCoroutineRegistry returns a registry pre-populated with the main
// thread.
func NewCoroutineRegistry() *CoroutineRegistry {
	r := &CoroutineRegistry{
		nextID:  MainThreadID + 1,
		byRef:   make(map[value.Ref]int),
		threads: make(map[int]*CoroutineInfo),
	}
	r.threads[MainThreadID] = &CoroutineInfo{ThreadID: MainThreadID, Name: "main", Status: CoroutineRunning}
	return r
}

// Track assigns (or returns the existing) DAP thread ID for a coroutine
// registry reference, recording its current status.
func (r *CoroutineRegistry) Track(ref value.Ref, name string, status CoroutineStatus) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byRef[ref]; ok {
		r.threads[id].Status = status
		if name != "" {
			r.threads[id].Name = name
		}
		return id
	}

	id := r.nextID
	r.nextID++
	r.byRef[ref] = id
	r.threads[id] = &CoroutineInfo{ThreadID: id, Ref: ref, Name: name, Status: status}
	return id
}

// SetStatus updates a tracked coroutine's status without re-registering it.
func (r *CoroutineRegistry) SetStatus(id int, status CoroutineStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.threads[id]; ok {
		info.Status = status
	}
}

// Forget removes a coroutine once it has finished (dead) and will not be
// referenced again, keeping the registry from growing unbounded across a
// long session that spawns many short-lived coroutines.
func (r *CoroutineRegistry) Forget(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.threads[id]; ok {
		delete(r.byRef, info.Ref)
		delete(r.threads, id)
	}
}

// List returns all currently tracked coroutines, main thread first, the
// rest in ascending thread-ID order.
func (r *CoroutineRegistry) List() []CoroutineInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CoroutineInfo, 0, len(r.threads))
	if main, ok := r.threads[MainThreadID]; ok {
		out = append(out, *main)
	}
	for id := MainThreadID + 1; id < r.nextID; id++ {
		if info, ok := r.threads[id]; ok {
			out = append(out, *info)
		}
	}
	return out
}
