// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalogpb

import "strings"

// ObjectKind distinguishes the kinds of catalog objects carried in an
// update batch. TABLE and VIEW are tracked identically by the cache;
// CATALOG_MARKER carries only a version and advances the watermark.
type ObjectKind int

const (
	// CatalogMarker is a pseudo-object used solely to convey the new
	// watermark version for a batch.
	CatalogMarker ObjectKind = iota
	Database
	Table
	View
	Function
)

func (k ObjectKind) String() string {
	switch k {
	case CatalogMarker:
		return "CATALOG_MARKER"
	case Database:
		return "DATABASE"
	case Table:
		return "TABLE"
	case View:
		return "VIEW"
	case Function:
		return "FUNCTION"
	default:
		return "UNKNOWN"
	}
}

// ObjectKey identifies a catalog object within a single Impalad catalog
// cache. For DATABASE objects, Name is empty and Db is the (lowercased)
// database name. For TABLE/VIEW, Db and Name are the lowercased database
// and table names. For FUNCTION, Name is the canonical signature string
// (name plus argument-type encoding); it is compared case-sensitively
// since function signatures are not lowercased by convention.
type ObjectKey struct {
	Db   string
	Name string
}

// NewDbKey returns the key for a database object, lowercasing the name.
func NewDbKey(db string) ObjectKey {
	return ObjectKey{Db: strings.ToLower(db)}
}

// NewTableKey returns the key for a table or view object.
func NewTableKey(db, table string) ObjectKey {
	return ObjectKey{Db: strings.ToLower(db), Name: strings.ToLower(table)}
}

// NewFunctionKey returns the key for a function object, identified by its
// canonical signature string within the owning database.
func NewFunctionKey(db, signature string) ObjectKey {
	return ObjectKey{Db: strings.ToLower(db), Name: signature}
}

// CatalogObject is the tagged union carried in update/removal batches,
// mirroring the wire-level TCatalogObject: every field besides Kind, Key
// and Version is informational payload used by the store when applying
// an add, and is nil/zero for a removal or a CATALOG_MARKER.
type CatalogObject struct {
	Kind    ObjectKind
	Key     ObjectKey
	Version CatalogVersion

	// Payload is the kind-specific record to install (a *DatabaseDesc,
	// *TableDesc, or *FunctionDesc defined by package store). It is nil
	// for CATALOG_MARKER entries and for entries in a removal list.
	Payload interface{}
}
