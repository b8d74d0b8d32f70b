package match

import "sync"

// SyncMatchingEngine guards a MatchingEngine with one mutex so it can be
// shared between goroutines. Each call, including the whole matching sequence
// of ProcessOrder, runs inside a single critical section, and read queries
// copy their result before the lock is released.
type SyncMatchingEngine struct {
	mu     sync.Mutex
	engine *MatchingEngine
}

// NewSyncMatchingEngine creates a mutex-guarded engine.
func NewSyncMatchingEngine(publishTrader PublishLog) *SyncMatchingEngine {
	return &SyncMatchingEngine{
		engine: NewMatchingEngine(publishTrader),
	}
}

// ProcessOrder is MatchingEngine.ProcessOrder under the lock.
func (s *SyncMatchingEngine) ProcessOrder(order *Order) []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ProcessOrder(order)
}

// CancelOrder is MatchingEngine.CancelOrder under the lock.
func (s *SyncMatchingEngine) CancelOrder(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CancelOrder(id)
}

// Snapshot returns the per-level aggregate view, copied under the lock.
func (s *SyncMatchingEngine) Snapshot() BookSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Depth is MatchingEngine.Depth under the lock.
func (s *SyncMatchingEngine) Depth(limit uint32) (*Depth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Depth(limit)
}

// Stats is MatchingEngine.Stats under the lock.
func (s *SyncMatchingEngine) Stats() *BookStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Stats()
}

// Order returns a copy of a resting order.
func (s *SyncMatchingEngine) Order(id uint64) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.book.Order(id)
}
