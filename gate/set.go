package gate

import (
	"sync"
)

// Set is the active gate set, keyed by bucket id. Only the dispatching
// client mutates it: install on a 429, remove when the reset elapses.
type Set struct {
	gates map[string]*Gate
	lock  *sync.RWMutex
}

func NewSet() *Set {
	return &Set{
		gates: map[string]*Gate{},
		lock:  &sync.RWMutex{},
	}
}

// Install registers the gate under its bucket id. It returns false if
// a gate for the bucket is already active, at most one gate per bucket
// may exist and late callers must reuse the existing one.
func (s *Set) Install(gate *Gate) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.gates[gate.bucket]
	if ok {
		return false
	}
	s.gates[gate.bucket] = gate
	return true
}

func (s *Set) Get(bucket string) (*Gate, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	gate, ok := s.gates[bucket]
	return gate, ok
}

func (s *Set) Remove(bucket string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.gates, bucket)
}

// Snapshot returns the currently active gates for a pre-flight scan.
// New gates installed after the snapshot are picked up on the next
// attempt of the retry loop.
func (s *Set) Snapshot() []*Gate {
	s.lock.RLock()
	defer s.lock.RUnlock()

	gates := make([]*Gate, 0, len(s.gates))
	for _, gate := range s.gates {
		gates = append(gates, gate)
	}
	return gates
}

func (s *Set) Size() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.gates)
}
