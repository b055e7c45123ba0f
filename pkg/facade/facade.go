// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"context"

	"github.com/bravechou2009/impala/pkg/authorization"
	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/bravechou2009/impala/pkg/catalogd"
	"github.com/bravechou2009/impala/pkg/metastore"
	"github.com/cockroachdb/errors"
)

// Planner is the external SQL parsing/analysis/planning collaborator,
// explicitly out of scope for this cache. CreateExecRequest and Explain
// delegate to it; catalog reads performed inside that call happen under
// the Catalog lock's reader half via Catalog.View from the planner's own
// implementation, not from this package.
type Planner interface {
	Plan(ctx context.Context, req *ClientRequest, catalog *catalogd.Catalog, user authorization.User) (*ExecRequest, error)
	Explain(ctx context.Context, req *ClientRequest, catalog *catalogd.Catalog, user authorization.User) (string, error)
}

// Facade is the Request Facade: the only surface the query layer calls,
// exposed here as typed Go methods; HandleXxx wrappers further down
// marshal/unmarshal through Codec for callers that only have bytes.
type Facade struct {
	catalog *catalogd.Catalog
	pool    metastore.Pool
	planner Planner
	codec   Codec
}

// New constructs a Facade. codec may be nil to default to JSONCodec.
func New(catalog *catalogd.Catalog, pool metastore.Pool, planner Planner, codec Codec) *Facade {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Facade{catalog: catalog, pool: pool, planner: planner, codec: codec}
}

// CreateExecRequest delegates planning to the Planner collaborator.
func (f *Facade) CreateExecRequest(ctx context.Context, req *ClientRequest, user authorization.User) (*ExecRequest, error) {
	return f.planner.Plan(ctx, req, f.catalog, user)
}

// Explain delegates to the Planner collaborator's explain path.
func (f *Facade) Explain(ctx context.Context, req *ClientRequest, user authorization.User) (string, error) {
	return f.planner.Explain(ctx, req, f.catalog, user)
}

// GetDbNames implements get_db_names.
func (f *Facade) GetDbNames(params GetDbsParams) GetDbsResult {
	dbs := f.catalog.GetDbNames(params.Pattern, authorization.User{Name: params.User})
	return GetDbsResult{Dbs: dbs}
}

// GetTableNames implements get_table_names.
func (f *Facade) GetTableNames(params GetTablesParams) (GetTablesResult, error) {
	tables, err := f.catalog.GetTableNames(params.Db, params.Pattern, authorization.User{Name: params.User})
	if err != nil {
		return GetTablesResult{}, err
	}
	return GetTablesResult{Tables: tables}, nil
}

// DescribeTable implements describe_table.
func (f *Facade) DescribeTable(params DescribeTableParams) (DescribeTableResult, error) {
	tbl, err := f.catalog.GetTable(params.Db, params.Table, authorization.User{Name: params.User}, authorization.ViewMetadata)
	if err != nil {
		return DescribeTableResult{}, err
	}
	cols := tbl.Columns.Columns()
	out := make([]ColumnDesc, len(cols))
	for i, c := range cols {
		out[i] = ColumnDesc{Name: c.Name, Type: c.Type, Comment: c.Comment}
	}
	return DescribeTableResult{Columns: out}, nil
}

// ResetTable invalidates and reloads a single table's metadata from the
// metastore, publishing the result as a direct update to the reconciler.
func (f *Facade) ResetTable(ctx context.Context, dbName, tableName string, nextVersion catalogpb.CatalogVersion, serviceID catalogpb.ServiceID) error {
	client, err := f.pool.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "reset table")
	}
	defer client.Release()

	msTbl, loadErr := client.GetTable(ctx, dbName, tableName)
	obj := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(dbName, tableName),
		Version: nextVersion,
	}
	if loadErr != nil {
		obj.Payload = incompleteTableFromError(dbName, tableName, loadErr)
	} else {
		obj.Payload = tableDescFromMetastore(msTbl)
	}
	_, err = f.catalog.ApplyBatch(ctx, []catalogpb.CatalogObject{obj}, nil, serviceID)
	return err
}

// ResetCatalog reloads each database named in dbNames from the metastore
// and publishes it as a direct update, one batch per database. It does not
// enumerate or reload tables: the reloaded database record replaces the
// cached one wholesale, so that database's previously cached tables are no
// longer present until a later update supplies them.
func (f *Facade) ResetCatalog(ctx context.Context, dbNames []string, serviceID catalogpb.ServiceID) error {
	for _, db := range dbNames {
		client, err := f.pool.Get(ctx)
		if err != nil {
			return errors.Wrapf(err, "reset catalog: listing database %s", db)
		}
		msDb, loadErr := client.GetDatabase(ctx, db)
		client.Release()
		if loadErr != nil {
			return errors.Wrapf(loadErr, "reset catalog: loading database %s", db)
		}
		obj := catalogpb.CatalogObject{
			Kind:    catalogpb.Database,
			Key:     catalogpb.NewDbKey(db),
			Version: f.catalog.LastSyncedVersion() + 1,
			Payload: databaseDescFromMetastore(msDb),
		}
		if _, err := f.catalog.ApplyBatch(ctx, []catalogpb.CatalogObject{obj}, nil, serviceID); err != nil {
			return err
		}
	}
	return nil
}
