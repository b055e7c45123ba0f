// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package store

import (
	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/cockroachdb/errors"
)

// TableKind tags the file-format-specific payload a Table carries. It
// replaces an inheritance hierarchy with a single dispatch point, per the
// polymorphic-table design note: the two operations that actually differ
// by kind (loading and descriptor construction) switch on Kind rather
// than being virtual methods.
type TableKind int

const (
	HdfsText TableKind = iota
	HdfsRCFile
	HdfsParquet
	HdfsSequence
	HdfsAvro
	HBase
	// Incomplete marks a table whose metadata failed to load. It carries
	// the error that caused the failure and is yielded only to surface
	// that error lazily, the first time the table is actually accessed
	// (never at cache-population time).
	Incomplete
)

func (k TableKind) String() string {
	switch k {
	case HdfsText:
		return "HDFS_TEXT"
	case HdfsRCFile:
		return "HDFS_RCFILE"
	case HdfsParquet:
		return "HDFS_PARQUET"
	case HdfsSequence:
		return "HDFS_SEQUENCE"
	case HdfsAvro:
		return "HDFS_AVRO"
	case HBase:
		return "HBASE"
	case Incomplete:
		return "INCOMPLETE"
	default:
		return "UNKNOWN"
	}
}

// HdfsPartition is one partition of an HDFS-backed table.
type HdfsPartition struct {
	Values   []string
	Location string
}

// StorageDescriptor is the pass-through, kind-specific storage shape Impala
// hands to the metastore on DDL and reads back on load. Its construction
// from a DDL request is a pure transform handled outside this cache; this
// type is the opaque result the cache stores.
type StorageDescriptor struct {
	Location  string
	InputFormat  string
	OutputFormat string
	SerdeLib     string
	SerdeParams  map[string]string
}

// TableDesc is the polymorphic table record. Shared fields live in the
// struct itself; Kind-specific data lives in the pointer fields below,
// exactly one of which is populated per Kind (Partitions/Storage for the
// HDFS kinds, LoadErr for Incomplete).
type TableDesc struct {
	ID      int64
	DbName  string
	Name    string
	Owner   string
	Kind    TableKind
	Version catalogpb.CatalogVersion

	// Columns holds the ordered column list; the first NumClusteringCols
	// entries are the clustering (partition) columns.
	Columns           ColumnList
	NumClusteringCols int

	// Populated only for the HDFS_* kinds.
	Partitions []HdfsPartition
	Storage    *StorageDescriptor

	// Populated only for Kind == Incomplete: the error that caused
	// loading to fail, re-raised the next time the table is accessed.
	LoadErr error
}

// ClusteringColumns returns the leading NumClusteringCols columns.
func (t *TableDesc) ClusteringColumns() []Column {
	cols := t.Columns.Columns()
	if t.NumClusteringCols > len(cols) {
		return cols
	}
	return cols[:t.NumClusteringCols]
}

// CheckLoaded returns the wrapped load error if this is an Incomplete
// table, nil otherwise. Callers that need to surface TableLoadingException
// at access time (not at population time) call this after a lookup.
func (t *TableDesc) CheckLoaded() error {
	if t.Kind != Incomplete {
		return nil
	}
	if t.LoadErr != nil {
		return errors.Wrapf(t.LoadErr, "missing table metadata for %s.%s", t.DbName, t.Name)
	}
	return errors.Newf("missing table metadata for %s.%s", t.DbName, t.Name)
}
