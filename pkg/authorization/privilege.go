// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package authorization implements the privilege lattice, scope builder,
// and authorization checker consulted by every catalog read, plus the
// policy hot-reloader in the policyreload subpackage.
package authorization

import "fmt"

// Privilege is one entry in the privilege lattice. ALL subsumes every
// other privilege; ANY is satisfied by any privilege the user holds on
// the target.
type Privilege int

const (
	All Privilege = iota
	Insert
	Select
	Create
	Drop
	ViewMetadata
	Any
)

func (p Privilege) String() string {
	switch p {
	case All:
		return "ALL"
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	case Create:
		return "CREATE"
	case Drop:
		return "DROP"
	case ViewMetadata:
		return "VIEW_METADATA"
	case Any:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// isAccessCheck reports whether a denial of p should be phrased as "does
// not have privileges to access X" (ANY/ALL/VIEW_METADATA) rather than
// "does not have privileges to execute P on X" (every other, action,
// privilege).
func (p Privilege) isAccessCheck() bool {
	switch p {
	case Any, All, ViewMetadata:
		return true
	default:
		return false
	}
}

// ScopeKind tags the Scope union.
type ScopeKind int

const (
	ScopeServer ScopeKind = iota
	ScopeDatabase
	ScopeTable
	ScopeColumn
	ScopeURI
	ScopeAnyTable
	ScopeAllOf
)

// Scope is the target of a PrivilegeRequest: a tagged union over server,
// database, table, column, URI, "any table in db", and a conjunction of
// sub-requests.
type Scope struct {
	Kind   ScopeKind
	Db     string
	Table  string
	Column string
	URI    string

	// Populated only for ScopeAllOf: every sub-request must be satisfied.
	AllOf []PrivilegeRequest
}

// Name renders the scope for use in user-facing error messages, matching
// the style of the source's PrivilegeRequest.getName().
func (s Scope) Name() string {
	switch s.Kind {
	case ScopeServer:
		return "server"
	case ScopeDatabase:
		return s.Db
	case ScopeTable:
		return fmt.Sprintf("%s.%s", s.Db, s.Table)
	case ScopeColumn:
		return fmt.Sprintf("%s.%s.%s", s.Db, s.Table, s.Column)
	case ScopeURI:
		return s.URI
	case ScopeAnyTable:
		return s.Db
	case ScopeAllOf:
		return "<compound scope>"
	default:
		return "<unknown scope>"
	}
}

// PrivilegeRequest pairs a privilege with the scope it applies to.
type PrivilegeRequest struct {
	Privilege Privilege
	Scope     Scope
}

// Name renders the request's target for error messages.
func (r PrivilegeRequest) Name() string {
	return r.Scope.Name()
}
