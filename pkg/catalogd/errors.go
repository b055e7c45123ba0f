// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalogd

import "github.com/cockroachdb/errors"

// DatabaseNotFoundException is returned when a lookup names a database
// that does not exist in the cache.
type DatabaseNotFoundException struct {
	Db string
}

func (e *DatabaseNotFoundException) Error() string {
	return "Database not found: " + e.Db
}

// TableNotFoundException is returned when a lookup names a table that
// does not exist in a database known to the cache.
type TableNotFoundException struct {
	Db, Table string
}

func (e *TableNotFoundException) Error() string {
	return "Table not found: " + e.Db + "." + e.Table
}

// TableLoadingException wraps the underlying cause of a table metadata
// load failure, re-raised lazily when an INCOMPLETE table is accessed,
// never at cache-population time.
type TableLoadingException struct {
	Db, Table string
	Cause     error
}

func (e *TableLoadingException) Error() string {
	if e.Cause != nil {
		return errors.Wrapf(e.Cause, "missing table metadata: %s.%s", e.Db, e.Table).Error()
	}
	return "missing table metadata: " + e.Db + "." + e.Table
}

func (e *TableLoadingException) Unwrap() error { return e.Cause }

// AlreadyExistsException is returned by a create DDL when the target
// already exists and IF NOT EXISTS was not specified.
type AlreadyExistsException struct {
	Name string
}

func (e *AlreadyExistsException) Error() string {
	return e.Name + " already exists"
}

// InvalidOperationException is returned when a request is well-formed but
// not valid given the current catalog state (e.g. DROP DATABASE or DROP
// TABLE on an object that does not exist, without IF EXISTS).
type InvalidOperationException struct {
	Msg string
}

func (e *InvalidOperationException) Error() string { return e.Msg }

// UnsupportedOperation is returned for an unrecognized alter-table kind or
// table type.
type UnsupportedOperation struct {
	Msg string
}

func (e *UnsupportedOperation) Error() string { return e.Msg }
