// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package authorization

// RequestBuilder is a small fluent builder for PrivilegeRequest, mirroring
// the source's PrivilegeRequestBuilder (pb.any().onAnyTable(db).toRequest()
// style call chains at every catalog read site).
type RequestBuilder struct {
	privilege Privilege
	allOf     []Privilege
}

// NewRequestBuilder starts a fresh builder.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{}
}

// Any sets the privilege to ANY: satisfied by any privilege the user
// holds on the target.
func (b *RequestBuilder) Any() *RequestBuilder {
	b.privilege = Any
	return b
}

// AllOf sets the single privilege this request checks.
func (b *RequestBuilder) AllOf(p Privilege) *RequestBuilder {
	b.privilege = p
	return b
}

// OnServer targets the whole server.
func (b *RequestBuilder) OnServer() PrivilegeRequest {
	return PrivilegeRequest{Privilege: b.privilege, Scope: Scope{Kind: ScopeServer}}
}

// OnDb targets a database.
func (b *RequestBuilder) OnDb(db string) PrivilegeRequest {
	return PrivilegeRequest{Privilege: b.privilege, Scope: Scope{Kind: ScopeDatabase, Db: db}}
}

// OnTable targets a single table.
func (b *RequestBuilder) OnTable(db, table string) PrivilegeRequest {
	return PrivilegeRequest{Privilege: b.privilege, Scope: Scope{Kind: ScopeTable, Db: db, Table: table}}
}

// OnColumn targets a single column.
func (b *RequestBuilder) OnColumn(db, table, column string) PrivilegeRequest {
	return PrivilegeRequest{Privilege: b.privilege, Scope: Scope{Kind: ScopeColumn, Db: db, Table: table, Column: column}}
}

// OnURI targets an HDFS-style location URI.
func (b *RequestBuilder) OnURI(uri string) PrivilegeRequest {
	return PrivilegeRequest{Privilege: b.privilege, Scope: Scope{Kind: ScopeURI, URI: uri}}
}

// OnAnyTable targets "any table in db", used by listing operations that
// want to know if the database should be visible at all.
func (b *RequestBuilder) OnAnyTable(db string) PrivilegeRequest {
	return PrivilegeRequest{Privilege: b.privilege, Scope: Scope{Kind: ScopeAnyTable, Db: db}}
}

// AllOfRequests builds a compound request satisfied only if every one of
// reqs is satisfied.
func AllOfRequests(reqs ...PrivilegeRequest) PrivilegeRequest {
	return PrivilegeRequest{Scope: Scope{Kind: ScopeAllOf, AllOf: reqs}}
}
