package syncer

import "sync"

// Mutation actions tracked by Pending.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionComplete = "complete"
	ActionReopen   = "reopen"
)

type pendingKey struct {
	entityID string
	action   string
}

// Pending tracks in-flight mutations per (entity id, action), so the
// UI can disable exactly the control that was pressed & nothing else.
type Pending struct {
	mu sync.Mutex
	m  map[pendingKey]bool
}

func NewPending() *Pending {
	return &Pending{m: make(map[pendingKey]bool)}
}

func (p *Pending) start(entityID, action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[pendingKey{entityID, action}] = true
}

func (p *Pending) finish(entityID, action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, pendingKey{entityID, action})
}

func (p *Pending) IsPending(entityID, action string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.m[pendingKey{entityID, action}]
}
