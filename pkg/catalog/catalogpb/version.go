// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package catalogpb defines the wire-adjacent data model shared by every
// layer of the catalog cache: versions, service identity, object kinds and
// keys, and the tagged CatalogObject union used in update batches.
package catalogpb

// CatalogVersion is a monotonically increasing identifier assigned by the
// catalog service to every object mutation. The zero value is reserved and
// never appears on a record actually present in the cache (see
// InitialCatalogVersion).
type CatalogVersion uint64

// InitialCatalogVersion is the version a brand new ImpaladCatalog starts
// with, before any broadcast has been applied. It is also the reserved
// "no version" sentinel: no object placed in the store ever carries it.
const InitialCatalogVersion CatalogVersion = 0

// IsValid reports whether v could belong to a real, applied object.
func (v CatalogVersion) IsValid() bool {
	return v > InitialCatalogVersion
}

// Less reports whether v precedes other, for use as a btree.LessFunc.
func (v CatalogVersion) Less(other CatalogVersion) bool {
	return v < other
}
