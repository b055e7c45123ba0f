// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package deltalog implements the catalog delta log: a bounded tombstone
// record of dropped objects, keyed by identity, remembering the version at
// which each drop was observed. It exists to stop a stale broadcast "add"
// from resurrecting an object this node has already dropped via direct
// DDL.
package deltalog

import (
	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/google/btree"
)

// entry is one tombstone record.
type entry struct {
	key     catalogpb.ObjectKey
	kind    catalogpb.ObjectKind
	version catalogpb.CatalogVersion
}

func (e entry) less(o entry) bool {
	if e.version != o.version {
		return e.version < o.version
	}
	// Tie-break on key so equal-version entries still have a total order
	// inside the btree (required for it to behave as a set).
	if e.key.Db != o.key.Db {
		return e.key.Db < o.key.Db
	}
	return e.key.Name < o.key.Name
}

// DeltaLog is not internally synchronized; like ObjectStore it lives
// inside the single Catalog lock's consistency domain and is only ever
// touched while that lock is held exclusively (drops, GC) or not at all
// (it is never read outside the write lock either — was_removed_after is
// only called from inside ApplyBatch).
type DeltaLog struct {
	byKey     map[catalogpb.ObjectKey]entry
	byVersion *btree.BTreeG[entry]
}

// New returns an empty delta log.
func New() *DeltaLog {
	return &DeltaLog{
		byKey:     make(map[catalogpb.ObjectKey]entry),
		byVersion: btree.NewG(32, entry.less),
	}
}

// RecordDrop inserts or overwrites the tombstone for key. A later drop of
// the same key always replaces an earlier one, even if (by construction
// this should not happen) the new version happens to be lower.
func (l *DeltaLog) RecordDrop(key catalogpb.ObjectKey, kind catalogpb.ObjectKind, version catalogpb.CatalogVersion) {
	if old, ok := l.byKey[key]; ok {
		l.byVersion.Delete(old)
	}
	e := entry{key: key, kind: kind, version: version}
	l.byKey[key] = e
	l.byVersion.ReplaceOrInsert(e)
}

// WasRemovedAfter reports whether key was dropped at a version strictly
// greater than version.
func (l *DeltaLog) WasRemovedAfter(key catalogpb.ObjectKey, version catalogpb.CatalogVersion) bool {
	e, ok := l.byKey[key]
	if !ok {
		return false
	}
	return e.version > version
}

// Len reports the number of tombstones currently held, for metrics.
func (l *DeltaLog) Len() int {
	return len(l.byKey)
}

// GarbageCollect removes every tombstone with version <= watermark. It is
// total over the full uint64 range of watermark values and never errors:
// there is no invalid watermark to reject.
func (l *DeltaLog) GarbageCollect(watermark catalogpb.CatalogVersion) {
	var toDelete []entry
	l.byVersion.Ascend(func(e entry) bool {
		if e.version > watermark {
			return false
		}
		toDelete = append(toDelete, e)
		return true
	})
	for _, e := range toDelete {
		l.byVersion.Delete(e)
		delete(l.byKey, e.key)
	}
}
