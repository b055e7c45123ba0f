// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"context"

	"github.com/bravechou2009/impala/pkg/authorization"
	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/bravechou2009/impala/pkg/catalog/store"
	"github.com/bravechou2009/impala/pkg/catalogd"
	"github.com/bravechou2009/impala/pkg/metastore"
	"github.com/cockroachdb/errors"
)

// Each DDL method below is a thin orchestrator (per the DDL fan-out
// design note): validate params, call the metastore, synthesize a direct
// CatalogObject update carrying the version the catalog service assigned
// to the mutation, and feed it to the reconciler. None of them retry or
// branch on exception types from the metastore call; the metastore.Client
// methods already return a plain error, so there is no exception-driven
// control flow to avoid.

// CreateDatabase implements create_database. IfNotExists short-circuits
// to a no-op if the database is already present; absent that flag, a
// pre-existing database is AlreadyExistsException rather than whatever
// error the metastore itself returns for a duplicate create.
func (f *Facade) CreateDatabase(ctx context.Context, params CreateDbParams, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	if f.catalog.DbExists(params.Db) {
		if params.IfNotExists {
			return nil
		}
		return &catalogd.AlreadyExistsException{Name: params.Db}
	}

	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "create database")
	}
	defer client.Release()

	if err := client.CreateDatabase(ctx, metastoreDatabaseFromParams(params)); err != nil {
		return err
	}
	obj := catalogpb.CatalogObject{
		Kind:    catalogpb.Database,
		Key:     catalogpb.NewDbKey(params.Db),
		Version: nextVersion,
		Payload: store.NewDatabaseDesc(params.Db, params.Owner, params.Comment, params.Location, 0),
	}
	_, err = f.catalog.ApplyBatch(ctx, []catalogpb.CatalogObject{obj}, nil, serviceID)
	return err
}

// CreateTable implements create_table. IfNotExists short-circuits to a
// no-op if the table is already present; absent that flag, a pre-existing
// table is AlreadyExistsException.
func (f *Facade) CreateTable(ctx context.Context, params CreateTableParams, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	if f.catalog.TableExists(params.Db, params.Table) {
		if params.IfNotExists {
			return nil
		}
		return &catalogd.AlreadyExistsException{Name: params.Db + "." + params.Table}
	}

	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "create table")
	}
	defer client.Release()

	cols := make([]store.Column, len(params.Columns))
	for i, c := range params.Columns {
		cols[i] = store.Column{Name: c.Name, Type: c.Type, Comment: c.Comment}
	}
	msTbl := metastoreTableFromParams(params.Db, params.Table, params.Owner, cols, params.NumClusteringCols)
	if err := client.CreateTable(ctx, msTbl); err != nil {
		return err
	}
	obj := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(params.Db, params.Table),
		Version: nextVersion,
		Payload: &store.TableDesc{
			DbName: params.Db, Name: params.Table, Owner: params.Owner,
			Columns: store.NewColumnList(cols), NumClusteringCols: params.NumClusteringCols,
		},
	}
	_, err = f.catalog.ApplyBatch(ctx, []catalogpb.CatalogObject{obj}, nil, serviceID)
	return err
}

// CreateTableLike implements create_table_like: create Db.Table with the
// same schema as SrcDb.SrcTable, read from the cache (not re-fetched from
// the metastore) and handed to the metastore as the new table's shape.
// IfNotExists short-circuits to a no-op if Db.Table already exists.
func (f *Facade) CreateTableLike(ctx context.Context, params CreateTableLikeParams, user authorization.User, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	if f.catalog.TableExists(params.Db, params.Table) {
		if params.IfNotExists {
			return nil
		}
		return &catalogd.AlreadyExistsException{Name: params.Db + "." + params.Table}
	}

	src, err := f.catalog.GetTable(params.SrcDb, params.SrcTable, user, authorization.ViewMetadata)
	if err != nil {
		return err
	}
	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "create table like")
	}
	defer client.Release()

	cols := src.Columns.Columns()
	msTbl := metastoreTableFromParams(params.Db, params.Table, src.Owner, cols, src.NumClusteringCols)
	if err := client.CreateTable(ctx, msTbl); err != nil {
		return err
	}
	obj := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(params.Db, params.Table),
		Version: nextVersion,
		Payload: &store.TableDesc{
			DbName: params.Db, Name: params.Table, Owner: src.Owner,
			Columns: store.NewColumnList(cols), NumClusteringCols: src.NumClusteringCols,
		},
	}
	_, err = f.catalog.ApplyBatch(ctx, []catalogpb.CatalogObject{obj}, nil, serviceID)
	return err
}

// DropDatabase implements drop_database. IfExists short-circuits to a
// no-op if the database is already absent; absent that flag, dropping a
// nonexistent database is InvalidOperationException.
func (f *Facade) DropDatabase(ctx context.Context, params DropDbParams, dropVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	if !f.catalog.DbExists(params.Db) {
		if params.IfExists {
			return nil
		}
		return &catalogd.InvalidOperationException{Msg: "database does not exist: " + params.Db}
	}

	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "drop database")
	}
	defer client.Release()

	if err := client.DropDatabase(ctx, params.Db); err != nil {
		return err
	}
	obj := catalogpb.CatalogObject{
		Kind:    catalogpb.Database,
		Key:     catalogpb.NewDbKey(params.Db),
		Version: dropVersion,
	}
	_, err = f.catalog.ApplyBatch(ctx, nil, []catalogpb.CatalogObject{obj}, serviceID)
	return err
}

// DropTable implements drop_table. IfExists short-circuits to a no-op if
// the table is already absent; absent that flag, dropping a nonexistent
// table is InvalidOperationException.
func (f *Facade) DropTable(ctx context.Context, params DropTableParams, dropVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	if !f.catalog.TableExists(params.Db, params.Table) {
		if params.IfExists {
			return nil
		}
		return &catalogd.InvalidOperationException{Msg: "table does not exist: " + params.Db + "." + params.Table}
	}

	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "drop table")
	}
	defer client.Release()

	if err := client.DropTable(ctx, params.Db, params.Table); err != nil {
		return err
	}
	obj := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(params.Db, params.Table),
		Version: dropVersion,
	}
	_, err = f.catalog.ApplyBatch(ctx, nil, []catalogpb.CatalogObject{obj}, serviceID)
	return err
}

// UpdateMetastore implements update_metastore: re-reads a table already
// known to have changed underneath the metastore (e.g. after an INSERT
// changes partition statistics) and republishes it as a direct update.
func (f *Facade) UpdateMetastore(ctx context.Context, dbName, tableName string, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	return f.ResetTable(ctx, dbName, tableName, nextVersion, serviceID)
}

// AlterTable implements alter_table, dispatching on params.Kind. An
// unrecognized kind is reported as UnsupportedOperation.
func (f *Facade) AlterTable(ctx context.Context, params AlterTableParams, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	switch params.Kind {
	case AlterAddReplaceColumns, AlterAddPartition, AlterDropColumn, AlterChangeColumn,
		AlterDropPartition, AlterSetFileFormat, AlterSetLocation:
		// Each of these mutates the existing table in place at the
		// metastore; the cache republishes the post-mutation shape by
		// re-reading it, the same way UpdateMetastore does.
		client, err := f.pool.Get(ctx)
		if err != nil {
			return errors.Wrap(err, "alter table")
		}
		alterErr := client.AlterTable(ctx, &metastore.Table{DbName: params.Db, Name: params.Table})
		client.Release()
		if alterErr != nil {
			return alterErr
		}
		return f.ResetTable(ctx, params.Db, params.Table, nextVersion, serviceID)

	case AlterRenameTable:
		return f.alterRenameTable(ctx, params, nextVersion, serviceID)

	default:
		return &catalogd.UnsupportedOperation{Msg: "unknown alter table kind"}
	}
}

// alterRenameTable implements rename as drop-of-old plus add-of-new under
// one shared version, applied as two entries of a single batch rather
// than a single compound rename CatalogObject: it lets the Delta Log's
// existing drop-tracking cover the old name for free, with no new object
// kind to teach the reconciler about.
func (f *Facade) alterRenameTable(ctx context.Context, params AlterTableParams, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	rename := params.RenameTable
	if rename == nil {
		return &catalogd.UnsupportedOperation{Msg: "RENAME_TABLE missing RenameTableParams"}
	}
	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "rename table")
	}
	renameErr := client.AlterTable(ctx, &metastore.Table{DbName: rename.NewDb, Name: rename.NewTable})
	client.Release()
	if renameErr != nil {
		return renameErr
	}

	dropped := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(params.Db, params.Table),
		Version: nextVersion,
	}
	added, err := f.loadTableObject(ctx, rename.NewDb, rename.NewTable, nextVersion)
	if err != nil {
		return err
	}
	_, err = f.catalog.ApplyBatch(ctx,
		[]catalogpb.CatalogObject{added},
		[]catalogpb.CatalogObject{dropped},
		serviceID)
	return err
}

func (f *Facade) loadTableObject(ctx context.Context, db, table string, version catalogpb.CatalogVersion) (catalogpb.CatalogObject, error) {
	client, err := f.pool.Get(ctx)
	if err != nil {
		return catalogpb.CatalogObject{}, errors.Wrap(err, "loading renamed table")
	}
	defer client.Release()
	msTbl, err := client.GetTable(ctx, db, table)
	if err != nil {
		return catalogpb.CatalogObject{}, err
	}
	return catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(db, table),
		Version: version,
		Payload: tableDescFromMetastore(msTbl),
	}, nil
}
