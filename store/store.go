package store

import (
	"sort"
	"sync"
)

// Store is the shared cache. There is one per environment; every write goes
// through Update so that a response is applied as a single transaction.
type Store struct {
	mu      sync.Mutex
	records map[DataID]*Record

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(changed []DataID)
}

func New() *Store {
	s := &Store{
		records: make(map[DataID]*Record),
		subs:    make(map[int]func([]DataID)),
	}
	s.records[RootID] = newRecord(RootID, "__Root")
	return s
}

// Update runs fn with exclusive access to the records. Subscribers are
// notified after fn returns if any record was touched.
func (s *Store) Update(fn func(tx *Tx)) {
	s.mu.Lock()
	tx := &Tx{store: s, touched: make(map[DataID]struct{})}
	fn(tx)
	tx.done = true
	s.mu.Unlock()

	if len(tx.touched) == 0 {
		return
	}
	changed := make([]DataID, 0, len(tx.touched))
	for id := range tx.touched {
		changed = append(changed, id)
	}
	sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })

	s.subMu.Lock()
	subs := make([]func([]DataID), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(changed)
	}
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id DataID) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// Has reports whether a record exists.
func (s *Store) Has(id DataID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	return ok
}

// Subscribe registers fn to be called with the ids touched by each
// transaction. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(changed []DataID)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Tx is the cache handle passed to store updaters. It must not be used
// after the Update call that created it has returned.
type Tx struct {
	store   *Store
	touched map[DataID]struct{}
	done    bool
}

func (tx *Tx) touch(id DataID) {
	if tx.done {
		panic("store: transaction used after Update returned")
	}
	tx.touched[id] = struct{}{}
}

// Get returns the live record or nil. Changes to the record must be
// reported with Touch if made through the Record setters directly.
func (tx *Tx) Get(id DataID) *Record {
	rec := tx.store.records[id]
	if rec != nil {
		tx.touch(id)
	}
	return rec
}

func (tx *Tx) Root() *Record {
	return tx.Get(RootID)
}

// Create returns the record with id, creating it if needed.
func (tx *Tx) Create(id DataID, typename string) *Record {
	tx.touch(id)
	if rec, ok := tx.store.records[id]; ok {
		if typename != "" {
			rec.typename = typename
		}
		return rec
	}
	rec := newRecord(id, typename)
	tx.store.records[id] = rec
	return rec
}

// Delete removes the record. References to it held by other records are
// left in place; use Detach to remove them.
func (tx *Tx) Delete(id DataID) {
	if id == RootID {
		return
	}
	if _, ok := tx.store.records[id]; !ok {
		return
	}
	tx.touch(id)
	delete(tx.store.records, id)
}

// Detach removes every reference to id: single links are cleared, plural
// links lose the id, and connection edges pointing at id are removed along
// with their edge records.
func (tx *Tx) Detach(id DataID) {
	edges := make(map[DataID]struct{})
	for eid, rec := range tx.store.records {
		if node, ok := rec.links["node"]; ok && node == id && eid != id {
			edges[eid] = struct{}{}
		}
	}

	for rid, rec := range tx.store.records {
		changed := false
		for k, target := range rec.links {
			if target == id {
				delete(rec.links, k)
				rec.fields[k] = nil
				changed = true
			}
		}
		for k, ids := range rec.linkLists {
			kept := ids[:0:0]
			for _, target := range ids {
				if _, isEdge := edges[target]; target == id || isEdge {
					continue
				}
				kept = append(kept, target)
			}
			if len(kept) != len(ids) {
				rec.linkLists[k] = kept
				changed = true
			}
		}
		if changed {
			tx.touch(rid)
		}
	}

	for eid := range edges {
		tx.Delete(eid)
	}
}

