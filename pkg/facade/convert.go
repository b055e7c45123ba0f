// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"github.com/bravechou2009/impala/pkg/catalog/store"
	"github.com/bravechou2009/impala/pkg/metastore"
)

func databaseDescFromMetastore(db *metastore.Database) *store.DatabaseDesc {
	return store.NewDatabaseDesc(db.Name, db.Owner, db.Comment, db.Location, 0)
}

func tableDescFromMetastore(tbl *metastore.Table) *store.TableDesc {
	return &store.TableDesc{
		ID:                tbl.ID,
		DbName:            tbl.DbName,
		Name:              tbl.Name,
		Owner:             tbl.Owner,
		Kind:              tbl.Kind,
		Columns:           store.NewColumnList(tbl.Columns),
		NumClusteringCols: tbl.NumClusteringCols,
		Partitions:        tbl.Partitions,
		Storage:           tbl.Storage,
	}
}

func incompleteTableFromError(db, table string, cause error) *store.TableDesc {
	return &store.TableDesc{
		DbName:  db,
		Name:    table,
		Kind:    store.Incomplete,
		LoadErr: cause,
	}
}

func metastoreDatabaseFromParams(p CreateDbParams) *metastore.Database {
	return &metastore.Database{Name: p.Db, Owner: p.Owner, Comment: p.Comment, Location: p.Location}
}

func metastoreTableFromParams(dbName, name, owner string, cols []store.Column, numClusteringCols int) *metastore.Table {
	return &metastore.Table{
		DbName:            dbName,
		Name:              name,
		Owner:             owner,
		Columns:           cols,
		NumClusteringCols: numClusteringCols,
	}
}
