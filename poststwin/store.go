package poststwin

import (
	"fmt"
	"sort"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/posts-contract-tests/servicedef"
)

// Store is a thread-safe in-memory collection of post records, listed in id order.
//
// Records are kept as arbitrary JSON objects, since the service accepts posts with missing or
// extra fields and echoes them back as they were sent.
type Store struct {
	mu      sync.RWMutex
	records map[int]ldvalue.Value
	lastID  int
}

// NewStore creates a Store seeded with count generated posts, with ids 1 through count.
func NewStore(count int) *Store {
	s := &Store{records: make(map[int]ldvalue.Value)}
	for id := 1; id <= count; id++ {
		s.records[id] = seedPost(id)
	}
	s.lastID = count
	return s
}

func seedPost(id int) ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set(servicedef.FieldUserID, ldvalue.Int((id-1)/10+1)).
		Set(servicedef.FieldID, ldvalue.Int(id)).
		Set(servicedef.FieldTitle, ldvalue.String(fmt.Sprintf("post title %d", id))).
		Set(servicedef.FieldBody, ldvalue.String(fmt.Sprintf("body of post %d", id))).
		Build()
}

// List returns all records in ascending id order. If userID is defined, only posts with that
// userId are returned.
func (s *Store) List(userID ldvalue.OptionalInt) []ldvalue.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ret := make([]ldvalue.Value, 0, len(ids))
	for _, id := range ids {
		r := s.records[id]
		if userID.IsDefined() && !r.GetByKey(servicedef.FieldUserID).Equal(ldvalue.Int(userID.IntValue())) {
			continue
		}
		ret = append(ret, r)
	}
	return ret
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (ldvalue.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

// NextID returns the id that the next created record would get, without reserving it.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastID + 1
}

// Create stores a new record made of the given fields plus a newly assigned id, which
// overrides any id in the fields.
func (s *Store) Create(fields ldvalue.Value) ldvalue.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	r := withID(fields, s.lastID)
	s.records[s.lastID] = r
	return r
}

// Replace stores fields as the new content of an existing record, keeping its id. It returns
// false if there is no such record.
func (s *Store) Replace(id int, fields ldvalue.Value) (ldvalue.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ldvalue.Null(), false
	}
	r := withID(fields, id)
	s.records[id] = r
	return r, true
}

// Update merges fields into an existing record. It returns false if there is no such record.
func (s *Store) Update(id int, fields ldvalue.Value) (ldvalue.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.records[id]
	if !ok {
		return ldvalue.Null(), false
	}
	r := withID(servicedef.Merge(old, fields), id)
	s.records[id] = r
	return r, true
}

// Delete removes a record. It returns false if there was no such record.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func withID(fields ldvalue.Value, id int) ldvalue.Value {
	return servicedef.Merge(fields, ldvalue.ObjectBuild().Set(servicedef.FieldID, ldvalue.Int(id)).Build())
}
