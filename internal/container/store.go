package container

import (
	"sync"
	"sync/atomic"

	"github.com/danpasecinic/inverter/internal/binding"
	"github.com/danpasecinic/inverter/internal/token"
)

// Record is one slot of a multi key. Value providers are settled from the start,
// singleton factories become settled after their first run.
type Record struct {
	Provider *binding.Provider
	Value    any
	Settled  bool
}

type Entry struct {
	Key       *token.Key
	Providers []*binding.Provider
	Cached    bool
}

// stamps orders single bindings across every store, so a cached value can tell
// whether any binding it was built from has been replaced since.
var stamps atomic.Uint64

type cacheEntry struct {
	value any
	stamp uint64
}

// Store holds the bindings of one container. Lookups never mutate; the cache is
// written by the resolver only.
type Store struct {
	mu      sync.RWMutex
	singles map[*token.Key]*binding.Provider
	multies map[*token.Key][]*Record
	stamps  map[*token.Key]uint64
	cache   map[*token.Key]cacheEntry
	order   []*token.Key
}

func NewStore() *Store {
	return &Store{
		singles: make(map[*token.Key]*binding.Provider),
		multies: make(map[*token.Key][]*Record),
		stamps:  make(map[*token.Key]uint64),
		cache:   make(map[*token.Key]cacheEntry),
	}
}

func (s *Store) BindValue(p *binding.Provider) {
	s.bind(p)
}

func (s *Store) BindFactory(p *binding.Provider) {
	s.bind(p)
}

func (s *Store) bind(p *binding.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := p.Key
	if !s.known(key) {
		s.order = append(s.order, key)
	}

	if !key.Multi() {
		s.singles[key] = p
		s.stamps[key] = stamps.Add(1)
		delete(s.cache, key)
		return
	}

	record := &Record{Provider: p}
	if p.Kind == binding.KindValue {
		record.Value = p.Value
		record.Settled = true
	}

	records := s.multies[key]
	for i, existing := range records {
		if existing.Provider.ID == p.ID {
			records[i] = record
			return
		}
	}
	s.multies[key] = append(records, record)
}

func (s *Store) known(key *token.Key) bool {
	if _, ok := s.singles[key]; ok {
		return true
	}
	_, ok := s.multies[key]
	return ok
}

func (s *Store) Lookup(key *token.Key) (*binding.Provider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.singles[key]
	return p, ok
}

// Records returns a snapshot of the multi slots for key, in registration order.
func (s *Store) Records(key *token.Key) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.multies[key]
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = *r
	}
	return out
}

// Settle replaces a pending multi slot with its computed value, in place.
func (s *Store) Settle(key *token.Key, id string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.multies[key] {
		if r.Provider.ID == id && !r.Settled {
			r.Value = value
			r.Settled = true
			return
		}
	}
}

func (s *Store) Settled(key *token.Key, id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.multies[key] {
		if r.Provider.ID == id {
			return r.Value, r.Settled
		}
	}
	return nil, false
}

// Stamp is the stamp of the current single binding for key, 0 if unbound here.
func (s *Store) Stamp(key *token.Key) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stamps[key]
}

func (s *Store) Cached(key *token.Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cache[key]
	return c.value, ok
}

// Fresh returns the cached value for key only if it was cached at stamp.
func (s *Store) Fresh(key *token.Key, stamp uint64) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cache[key]
	if !ok || c.stamp != stamp {
		return nil, false
	}
	return c.value, true
}

func (s *Store) Cache(key *token.Key, value any, stamp uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = cacheEntry{value: value, stamp: stamp}
}

func (s *Store) Has(key *token.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.known(key)
}

func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

func (s *Store) Keys() []*token.Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]*token.Key, len(s.order))
	copy(keys, s.order)
	return keys
}

func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		entry := Entry{Key: key}
		if p, ok := s.singles[key]; ok {
			entry.Providers = []*binding.Provider{p}
			_, entry.Cached = s.cache[key]
			entry.Cached = entry.Cached || p.Kind == binding.KindValue
		} else {
			settled := true
			for _, r := range s.multies[key] {
				entry.Providers = append(entry.Providers, r.Provider)
				settled = settled && r.Settled
			}
			entry.Cached = settled
		}
		entries = append(entries, entry)
	}
	return entries
}
