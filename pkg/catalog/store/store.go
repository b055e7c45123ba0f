// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package store

import (
	"sort"
	"strings"

	"github.com/google/btree"
)

// ObjectStore is the catalog cache proper: a mapping from lowercased
// database name to DatabaseDesc. It carries no lock of its own — the
// Catalog lock that guards it lives one layer up, shared with the Delta
// Log and the reconciler's watermark/ServiceID state, so that a single
// critical section covers a whole update batch.
//
// Database names are additionally indexed in a btree.BTreeG, the same
// generic ordered structure cockroach's lease manager uses to keep
// pending descriptor updates sorted for range scans. Here it lets
// pattern-filtered listing walk databases in sorted order in one pass,
// rather than copying every key out of the map and sorting it on every
// call.
type ObjectStore struct {
	dbs   map[string]*DatabaseDesc
	names *btree.BTreeG[string]
}

// NewObjectStore returns an empty store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		dbs:   make(map[string]*DatabaseDesc),
		names: btree.NewG(32, func(a, b string) bool { return a < b }),
	}
}

// GetDb returns the database record for name (case-insensitive), or nil if
// absent.
func (s *ObjectStore) GetDb(name string) *DatabaseDesc {
	return s.dbs[strings.ToLower(name)]
}

// ContainsTable reports whether db.tbl both exist.
func (s *ObjectStore) ContainsTable(db, tbl string) bool {
	d := s.GetDb(db)
	if d == nil {
		return false
	}
	return d.ContainsTable(tbl)
}

// GetTable returns the table record for db.tbl, or nil if the database or
// table does not exist. A non-nil result may have Kind == Incomplete;
// callers that need to surface the load failure call TableDesc.CheckLoaded.
func (s *ObjectStore) GetTable(db, tbl string) *TableDesc {
	d := s.GetDb(db)
	if d == nil {
		return nil
	}
	t, _ := d.GetTable(tbl)
	return t
}

// ListDbNames returns the lowercased names of every database matching
// pattern, in sorted order; every returned name round-trips through GetDb.
func (s *ObjectStore) ListDbNames(pattern string) []string {
	var out []string
	s.names.Ascend(func(name string) bool {
		if MatchesPattern(name, pattern) {
			out = append(out, name)
		}
		return true
	})
	return out
}

// ListTableNames returns the names of every table in db matching pattern,
// sorted. Returns nil if db does not exist.
func (s *ObjectStore) ListTableNames(db, pattern string) []string {
	d := s.GetDb(db)
	if d == nil {
		return nil
	}
	names := d.TableNames()
	out := names[:0:0]
	for _, n := range names {
		if MatchesPattern(n, pattern) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// PutDb installs db, replacing wholesale whatever was previously present
// under the same name. Callers (the reconciler) are responsible for
// enforcing version-monotonicity before calling this.
func (s *ObjectStore) PutDb(db *DatabaseDesc) {
	key := strings.ToLower(db.Name)
	if _, existed := s.dbs[key]; !existed {
		s.names.ReplaceOrInsert(key)
	}
	s.dbs[key] = db
}

// PutTable installs tbl under dbName, replacing wholesale whatever was
// previously present under the same name. The parent database must already
// exist; PutTable is a no-op (returns false) otherwise, matching
// addTable's "parent database of table does not exist" skip.
func (s *ObjectStore) PutTable(dbName string, tbl *TableDesc) bool {
	key := strings.ToLower(dbName)
	d, ok := s.dbs[key]
	if !ok {
		return false
	}
	d = d.clone()
	d.tables[strings.ToLower(tbl.Name)] = tbl
	s.dbs[key] = d
	return true
}

// PutFunction installs fn under dbName. Returns false if the parent
// database does not exist.
func (s *ObjectStore) PutFunction(dbName string, fn *FunctionDesc) bool {
	key := strings.ToLower(dbName)
	d, ok := s.dbs[key]
	if !ok {
		return false
	}
	d = d.clone()
	d.functions[fn.Signature] = fn
	s.dbs[key] = d
	return true
}

// RemoveDb removes the database by name. Idempotent.
func (s *ObjectStore) RemoveDb(name string) {
	key := strings.ToLower(name)
	if _, ok := s.dbs[key]; ok {
		delete(s.dbs, key)
		s.names.Delete(key)
	}
}

// RemoveTable removes a table from its database. Idempotent; a no-op if
// the database or table is absent.
func (s *ObjectStore) RemoveTable(dbName, tbl string) {
	key := strings.ToLower(dbName)
	d, ok := s.dbs[key]
	if !ok {
		return
	}
	tk := strings.ToLower(tbl)
	if _, ok := d.tables[tk]; !ok {
		return
	}
	d = d.clone()
	delete(d.tables, tk)
	s.dbs[key] = d
}

// RemoveFunction removes a function from its database. Idempotent.
func (s *ObjectStore) RemoveFunction(dbName, signature string) {
	key := strings.ToLower(dbName)
	d, ok := s.dbs[key]
	if !ok {
		return
	}
	if _, ok := d.functions[signature]; !ok {
		return
	}
	d = d.clone()
	delete(d.functions, signature)
	s.dbs[key] = d
}

// Clear empties the store, used on a detected catalog-service identity
// change.
func (s *ObjectStore) Clear() {
	s.dbs = make(map[string]*DatabaseDesc)
	s.names = btree.NewG(32, func(a, b string) bool { return a < b })
}
