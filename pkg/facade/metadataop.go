// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"github.com/bravechou2009/impala/pkg/authorization"
	"github.com/bravechou2009/impala/pkg/catalog/store"
)

// ExecMetadataOp implements exec_metadata_op: the client-protocol metadata
// operations a JDBC/ODBC driver issues (get-schemas, get-tables,
// get-columns, get-types), each producing a row set shaped like the
// equivalent DatabaseMetaData call.
func (f *Facade) ExecMetadataOp(req MetadataOpRequest) (MetadataOpResponse, error) {
	user := authorization.User{Name: req.User}
	switch req.Kind {
	case MetadataOpGetSchemas:
		return f.metadataGetSchemas(req, user)
	case MetadataOpGetTables:
		return f.metadataGetTables(req, user)
	case MetadataOpGetColumns:
		return f.metadataGetColumns(req, user)
	case MetadataOpGetTypes:
		return metadataGetTypes(), nil
	default:
		return MetadataOpResponse{}, &unsupportedMetadataOp{kind: req.Kind}
	}
}

type unsupportedMetadataOp struct{ kind MetadataOpKind }

func (e *unsupportedMetadataOp) Error() string {
	return "unsupported metadata operation"
}

func (f *Facade) metadataGetSchemas(req MetadataOpRequest, user authorization.User) (MetadataOpResponse, error) {
	dbs := f.catalog.GetDbNames(req.SchemaPattern, user)
	rows := make([][]string, len(dbs))
	for i, db := range dbs {
		rows[i] = []string{db}
	}
	return MetadataOpResponse{Rows: rows}, nil
}

func (f *Facade) metadataGetTables(req MetadataOpRequest, user authorization.User) (MetadataOpResponse, error) {
	dbs := f.catalog.GetDbNames(req.SchemaPattern, user)
	var rows [][]string
	for _, db := range dbs {
		tables, err := f.catalog.GetTableNames(db, req.TablePattern, user)
		if err != nil {
			continue
		}
		for _, tbl := range tables {
			rows = append(rows, []string{db, tbl})
		}
	}
	return MetadataOpResponse{Rows: rows}, nil
}

func (f *Facade) metadataGetColumns(req MetadataOpRequest, user authorization.User) (MetadataOpResponse, error) {
	dbs := f.catalog.GetDbNames(req.SchemaPattern, user)
	var rows [][]string
	for _, db := range dbs {
		tables, err := f.catalog.GetTableNames(db, req.TablePattern, user)
		if err != nil {
			continue
		}
		for _, tblName := range tables {
			tbl, err := f.catalog.GetTable(db, tblName, user, authorization.ViewMetadata)
			if err != nil {
				continue
			}
			for _, col := range tbl.Columns.Columns() {
				if !store.MatchesPattern(col.Name, req.ColumnPattern) {
					continue
				}
				rows = append(rows, []string{db, tblName, col.Name, col.Type})
			}
		}
	}
	return MetadataOpResponse{Rows: rows}, nil
}

// metadataGetTypes enumerates the supported column type names. This is a
// static list, not a catalog lookup.
func metadataGetTypes() MetadataOpResponse {
	names := []string{
		"BOOLEAN", "TINYINT", "SMALLINT", "INT", "BIGINT", "FLOAT", "DOUBLE",
		"STRING", "VARCHAR", "CHAR", "TIMESTAMP", "DECIMAL", "BINARY",
	}
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{n}
	}
	return MetadataOpResponse{Rows: rows}
}
