// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// TablePath resolves the HDFS path the metastore would use for a table: the
// table's own storage location if set, otherwise the parent database's
// location joined with the lowercased table name. Mirrors the metastore
// folder convention <warehouse dir>/<db>.db/<table>, and for the default
// database, <warehouse dir>/<table>.
func (f *Facade) TablePath(ctx context.Context, dbName, tableName string) (string, error) {
	client, err := f.pool.Get(ctx)
	if err != nil {
		return "", errors.Wrap(err, "table path")
	}
	defer client.Release()

	tbl, err := client.GetTable(ctx, dbName, tableName)
	if err != nil {
		return "", err
	}
	if tbl.Storage != nil && tbl.Storage.Location != "" {
		return tbl.Storage.Location, nil
	}
	db, err := client.GetDatabase(ctx, dbName)
	if err != nil {
		return "", err
	}
	return path.Join(db.Location, strings.ToLower(tableName)), nil
}
