package store

import (
	"errors"
	"sync"
)

// ErrOperationInFlight is returned when the same mutation for the same
// entity is already running, e.g. a double-clicked delete.
var ErrOperationInFlight = errors.New("operation already in flight for this entity")

// inflightGuard de-duplicates mutations keyed by (operation, entity id)
type inflightGuard struct {
	mu  sync.Mutex
	ops map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{ops: make(map[string]struct{})}
}

// begin claims the (op, id) slot or fails with ErrOperationInFlight
func (g *inflightGuard) begin(op, id string) error {
	key := op + ":" + id
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.ops[key]; busy {
		return ErrOperationInFlight
	}
	g.ops[key] = struct{}{}
	return nil
}

// end releases the slot claimed by begin
func (g *inflightGuard) end(op, id string) {
	key := op + ":" + id
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ops, key)
}
