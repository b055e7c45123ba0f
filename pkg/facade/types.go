// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package facade is the Request Facade: the surface the query layer
// actually calls, framed as opaque bytes in / opaque bytes (or void) out.
// The physical encoding of those bytes is an external concern; this
// package only fixes the logical record shapes and a pluggable Codec to
// (de)serialize them.
package facade

import "github.com/bravechou2009/impala/pkg/catalog/catalogpb"

// ClientRequest is the top-level envelope a client-protocol caller sends.
type ClientRequest struct {
	SessionID string
	Stmt      string
}

// ExecRequest is the planner's output: a fully resolved, plannable
// statement. Its internal shape belongs to the planner, an external
// collaborator; the facade only forwards it opaquely.
type ExecRequest struct {
	Stmt string
	Plan []byte
}

// CatalogUpdate is one entry of an update batch on the wire, the
// marshalled counterpart of catalogpb.CatalogObject.
type CatalogUpdate struct {
	Kind    catalogpb.ObjectKind
	Db      string
	Name    string
	Version catalogpb.CatalogVersion
	Payload []byte
}

// CatalogUpdateRequest is a full reconciliation batch, matching the
// required TUpdateCatalogCacheRequest fields.
type CatalogUpdateRequest struct {
	UpdatedObjects    []CatalogUpdate
	RemovedObjects    []CatalogUpdate
	CatalogServiceID  catalogpb.ServiceID
}

// CatalogUpdateResponse acknowledges a batch with the service ID the
// cache is now tracking.
type CatalogUpdateResponse struct {
	CatalogServiceID catalogpb.ServiceID
}

// GetDbsParams/GetDbsResult back get_db_names.
type GetDbsParams struct {
	Pattern string
	User    string
}

type GetDbsResult struct {
	Dbs []string
}

// GetTablesParams/GetTablesResult back get_table_names.
type GetTablesParams struct {
	Db      string
	Pattern string
	User    string
}

type GetTablesResult struct {
	Tables []string
}

// DescribeTableParams/DescribeTableResult back describe_table.
type DescribeTableParams struct {
	Db, Table, User string
}

type DescribeTableResult struct {
	Columns []ColumnDesc
}

// ColumnDesc is the wire shape of a store.Column.
type ColumnDesc struct {
	Name, Type, Comment string
}

// MetadataOpRequest/MetadataOpResponse back exec_metadata_op: the
// client-protocol metadata operations (get-schemas, get-tables,
// get-columns, get-types).
type MetadataOpKind int

const (
	MetadataOpGetSchemas MetadataOpKind = iota
	MetadataOpGetTables
	MetadataOpGetColumns
	MetadataOpGetTypes
)

type MetadataOpRequest struct {
	Kind           MetadataOpKind
	User           string
	SchemaPattern  string
	TablePattern   string
	ColumnPattern  string
}

type MetadataOpResponse struct {
	Rows [][]string
}

// AlterTableKind tags the AlterTableParams union.
type AlterTableKind int

const (
	AlterAddReplaceColumns AlterTableKind = iota
	AlterAddPartition
	AlterDropColumn
	AlterChangeColumn
	AlterDropPartition
	AlterRenameTable
	AlterSetFileFormat
	AlterSetLocation
)

// AlterTableParams is a tagged union over per-kind sub-params, mirroring
// the source's TAlterTableParams.
type AlterTableParams struct {
	Kind  AlterTableKind
	Db    string
	Table string

	AddReplaceColumns *AddReplaceColumnsParams
	AddPartition      *AddPartitionParams
	DropColumn        *DropColumnParams
	ChangeColumn      *ChangeColumnParams
	DropPartition     *DropPartitionParams
	RenameTable       *RenameTableParams
	SetFileFormat     *SetFileFormatParams
	SetLocation       *SetLocationParams
}

type AddReplaceColumnsParams struct {
	Columns []ColumnDesc
	Replace bool
}

type AddPartitionParams struct {
	Values   []string
	Location string
}

type DropColumnParams struct {
	ColumnName string
}

type ChangeColumnParams struct {
	OldName string
	NewCol  ColumnDesc
}

type DropPartitionParams struct {
	Values []string
}

type RenameTableParams struct {
	NewDb, NewTable string
}

type SetFileFormatParams struct {
	Format string
}

type SetLocationParams struct {
	Location string
}

// CreateDbParams/CreateTableParams/CreateTableLikeParams/DropDbParams/
// DropTableParams back their respective facade operations.
type CreateDbParams struct {
	Db, Owner, Comment, Location string
	IfNotExists                 bool
}

type CreateTableParams struct {
	Db, Table, Owner string
	Columns          []ColumnDesc
	NumClusteringCols int
	FileFormat       string
	Location         string
	IfNotExists      bool
}

type CreateTableLikeParams struct {
	SrcDb, SrcTable string
	Db, Table       string
	IfNotExists     bool
}

type DropDbParams struct {
	Db       string
	IfExists bool
}

type DropTableParams struct {
	Db, Table string
	IfExists  bool
}
