// Package store implements the normalized client-side cache that mirrors
// server entities by id.
package store

import (
	"github.com/google/uuid"
)

// DataID identifies a record in the store.
type DataID string

// RootID is the record holding top-level query and mutation fields.
const RootID DataID = "client:root"

// NewClientID returns a fresh id for a record that has no server id.
func NewClientID(prefix string) DataID {
	return DataID("client:" + prefix + ":" + uuid.NewString())
}

// Record is a single normalized entity. Values are scalars as decoded from
// JSON; references to other records are kept as links.
type Record struct {
	id        DataID
	typename  string
	fields    map[string]interface{}
	links     map[string]DataID
	linkLists map[string][]DataID
}

func newRecord(id DataID, typename string) *Record {
	return &Record{
		id:        id,
		typename:  typename,
		fields:    make(map[string]interface{}),
		links:     make(map[string]DataID),
		linkLists: make(map[string][]DataID),
	}
}

func (r *Record) ID() DataID {
	return r.id
}

func (r *Record) Typename() string {
	return r.typename
}

// Value returns the scalar stored under key.
func (r *Record) Value(key string) (interface{}, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// String returns the scalar under key if it is a string.
func (r *Record) String(key string) string {
	s, _ := r.fields[key].(string)
	return s
}

func (r *Record) SetValue(key string, v interface{}) {
	delete(r.links, key)
	delete(r.linkLists, key)
	r.fields[key] = v
}

// LinkedRecordID returns the id of the record linked under key.
func (r *Record) LinkedRecordID(key string) (DataID, bool) {
	id, ok := r.links[key]
	return id, ok
}

// LinkedRecordIDs returns the ids of the records linked under key.
func (r *Record) LinkedRecordIDs(key string) ([]DataID, bool) {
	ids, ok := r.linkLists[key]
	return ids, ok
}

func (r *Record) SetLinkedRecordID(key string, id DataID) {
	delete(r.fields, key)
	delete(r.linkLists, key)
	r.links[key] = id
}

func (r *Record) SetLinkedRecordIDs(key string, ids []DataID) {
	delete(r.fields, key)
	delete(r.links, key)
	r.linkLists[key] = ids
}

func (r *Record) clone() Record {
	c := Record{
		id:        r.id,
		typename:  r.typename,
		fields:    make(map[string]interface{}, len(r.fields)),
		links:     make(map[string]DataID, len(r.links)),
		linkLists: make(map[string][]DataID, len(r.linkLists)),
	}
	for k, v := range r.fields {
		c.fields[k] = v
	}
	for k, v := range r.links {
		c.links[k] = v
	}
	for k, v := range r.linkLists {
		c.linkLists[k] = append([]DataID(nil), v...)
	}
	return c
}
