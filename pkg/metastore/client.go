// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package metastore defines the shape of the Hive-compatible metastore
// client this cache's DDL path drives, and the bounded pool it is leased
// from. The metastore implementation itself is an external collaborator:
// this package only specifies the name->record lookup and mutation
// surface the Request Facade needs, plus the pool's lease/release
// contract.
package metastore

import (
	"context"

	"github.com/bravechou2009/impala/pkg/catalog/store"
)

// Database is the metastore's view of a database, the input to
// store.NewDatabaseDesc after a successful load.
type Database struct {
	Name     string
	Owner    string
	Comment  string
	Location string
}

// Table is the metastore's view of a table, the input to building a
// store.TableDesc (or, on failure, the inputs to constructing an
// INCOMPLETE placeholder).
type Table struct {
	ID                int64
	DbName            string
	Name              string
	Owner             string
	Kind              store.TableKind
	Columns           []store.Column
	NumClusteringCols int
	Partitions        []store.HdfsPartition
	Storage           *store.StorageDescriptor
}

// Client is a leased handle to one underlying Hive metastore connection.
// Release must be called exactly once, on every exit path, whether or not
// the operation that leased it succeeded.
type Client interface {
	GetDatabase(ctx context.Context, name string) (*Database, error)
	GetTable(ctx context.Context, dbName, tableName string) (*Table, error)
	CreateDatabase(ctx context.Context, db *Database) error
	CreateTable(ctx context.Context, tbl *Table) error
	DropDatabase(ctx context.Context, name string) error
	DropTable(ctx context.Context, dbName, tableName string) error
	AlterTable(ctx context.Context, tbl *Table) error
	Release()
}

// Pool hands out leased Client handles, bounded to some maximum
// concurrency configured by the embedder.
type Pool interface {
	Get(ctx context.Context) (Client, error)
}
