package ledger

import (
	"sync"
	"time"
)

// IDAllocator hands out expense ids derived from the clock in Unix
// milliseconds. Ids strictly increase: when the clock has not moved past the
// last id (same millisecond, clock stepped back) the next integer is used.
type IDAllocator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDAllocator(now func() time.Time) *IDAllocator {
	if now == nil {
		now = time.Now
	}
	return &IDAllocator{now: now}
}

// Observe raises the floor so that no future id is <= id.
func (a *IDAllocator) Observe(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id > a.last {
		a.last = id
	}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.now().UnixMilli()
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}
