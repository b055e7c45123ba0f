// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package store

import (
	"strings"

	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
)

// FunctionDesc is a registered UDF/UDAF signature.
type FunctionDesc struct {
	Signature string
	DbName    string
	Version   catalogpb.CatalogVersion
}

// DatabaseDesc is a database record: its own metadata plus child tables,
// keyed by lowercased name, and functions, keyed by signature as given.
// Per the parent/child ownership
// design note, tables do not hold a pointer back to their Database; they
// carry DbName and are looked up through the ObjectStore, so replacing a
// Database record (an update never mutates in place) never leaves a
// dangling child.
type DatabaseDesc struct {
	Name     string
	Owner    string
	Comment  string
	Location string
	Version  catalogpb.CatalogVersion

	tables    map[string]*TableDesc
	functions map[string]*FunctionDesc
}

// NewDatabaseDesc constructs an empty database record.
func NewDatabaseDesc(name, owner, comment, location string, version catalogpb.CatalogVersion) *DatabaseDesc {
	return &DatabaseDesc{
		Name:      name,
		Owner:     owner,
		Comment:   comment,
		Location:  location,
		Version:   version,
		tables:    make(map[string]*TableDesc),
		functions: make(map[string]*FunctionDesc),
	}
}

// clone returns a copy of db with its own copies of the child maps (the
// table and function records in them are shared, not copied), so the
// copy's maps can be changed without touching db's. clone exists so that putTable/putFunction/removeTable/removeFunction can
// produce a new DatabaseDesc value without ever mutating one a reader might
// currently hold (records are replaced wholesale, never mutated in place).
func (db *DatabaseDesc) clone() *DatabaseDesc {
	cp := *db
	cp.tables = make(map[string]*TableDesc, len(db.tables))
	for k, v := range db.tables {
		cp.tables[k] = v
	}
	cp.functions = make(map[string]*FunctionDesc, len(db.functions))
	for k, v := range db.functions {
		cp.functions[k] = v
	}
	return &cp
}

// GetTable returns the table with the given name (case-insensitive) and
// whether it was found. The returned record may have Kind == Incomplete.
func (db *DatabaseDesc) GetTable(name string) (*TableDesc, bool) {
	t, ok := db.tables[strings.ToLower(name)]
	return t, ok
}

// ContainsTable reports whether a table by this name is present.
func (db *DatabaseDesc) ContainsTable(name string) bool {
	_, ok := db.tables[strings.ToLower(name)]
	return ok
}

// GetFunction returns the function with the given signature.
func (db *DatabaseDesc) GetFunction(signature string) (*FunctionDesc, bool) {
	f, ok := db.functions[signature]
	return f, ok
}

// TableNames returns all table names in this database, unsorted.
func (db *DatabaseDesc) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	for _, t := range db.tables {
		names = append(names, t.Name)
	}
	return names
}
