// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package catalogd wires the catalog cache's pieces into a single
// thread-safe Catalog: the reconciler (Object Store, Delta Log, service-ID
// and watermark tracking) and the authorization policy reloader. This is
// the Go counterpart of Impala's ImpaladCatalog.
package catalogd

import (
	"context"

	"github.com/bravechou2009/impala/pkg/authorization"
	"github.com/bravechou2009/impala/pkg/authorization/policyreload"
	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/bravechou2009/impala/pkg/catalog/reconciler"
	"github.com/bravechou2009/impala/pkg/catalog/store"
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog is the per-Impalad catalog cache: the public surface query
// planning consults to resolve names, enforce privileges, and read
// table descriptors.
type Catalog struct {
	reconciler *reconciler.Reconciler
	authz      *policyreload.Reloader
}

// New constructs a Catalog. The returned Catalog is not ready until the
// first successful ApplyBatch (see IsReady); callers that pass
// reloadConfig.Enabled must call Start before serving requests so the
// policy hot-reloader is running. reg may be nil to use the default
// Prometheus registerer.
func New(reloadConfig policyreload.Config, reg prometheus.Registerer) (*Catalog, error) {
	authz, err := policyreload.New(reloadConfig, reg)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		reconciler: reconciler.New(reg),
		authz:      authz,
	}, nil
}

// Start launches the authorization policy reloader's background task.
func (c *Catalog) Start(ctx context.Context) {
	c.authz.Start(ctx)
}

// Stop halts the authorization policy reloader's background task.
func (c *Catalog) Stop() {
	c.authz.Stop()
}

// IsReady reports whether the cache has applied at least one update
// batch from the catalog service.
func (c *Catalog) IsReady() bool {
	return c.reconciler.IsReady()
}

// LastSyncedVersion returns the watermark: the highest catalog version
// guaranteed absorbed from broadcasts.
func (c *Catalog) LastSyncedVersion() catalogpb.CatalogVersion {
	return c.reconciler.LastSyncedVersion()
}

// ApplyBatch merges one reconciliation batch (broadcast or direct update)
// into the cache. See reconciler.Reconciler.ApplyBatch.
func (c *Catalog) ApplyBatch(
	ctx context.Context,
	updated, removed []catalogpb.CatalogObject,
	serviceID catalogpb.ServiceID,
) (catalogpb.ServiceID, error) {
	return c.reconciler.ApplyBatch(ctx, updated, removed, serviceID)
}

// CheckAccess returns an AuthorizationException-compatible error if user
// lacks req's privilege, nil otherwise.
func (c *Catalog) CheckAccess(user authorization.User, req authorization.PrivilegeRequest) error {
	return c.authz.Checker().CheckAccess(user, req)
}

// CheckCreateDropFunctionAccess enforces ALL on the server scope, the
// privilege required to create or drop a UDF.
func (c *Catalog) CheckCreateDropFunctionAccess(user authorization.User) error {
	req := authorization.NewRequestBuilder().AllOf(authorization.All).OnServer()
	if err := c.authz.Checker().CheckAccess(user, req); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) hasAccess(user authorization.User, req authorization.PrivilegeRequest) bool {
	return c.authz.Checker().HasAccess(user, req)
}

// GetDb returns the database record for dbName, enforcing privilege first.
// If privilege is Any, the check is "any privilege on any table in db";
// otherwise it's "privilege on db" directly, matching the source's getDb.
func (c *Catalog) GetDb(dbName string, user authorization.User, privilege authorization.Privilege) (*store.DatabaseDesc, error) {
	pb := authorization.NewRequestBuilder()
	var req authorization.PrivilegeRequest
	if privilege == authorization.Any {
		req = pb.Any().OnAnyTable(dbName)
	} else {
		req = pb.AllOf(privilege).OnDb(dbName)
	}
	if err := c.authz.Checker().CheckAccess(user, req); err != nil {
		return nil, err
	}
	var db *store.DatabaseDesc
	c.reconciler.View(func(s *store.ObjectStore) {
		db = s.GetDb(dbName)
	})
	return db, nil
}

// GetDbNames returns every database matching pattern that user has any
// privilege to see, when authorization is enabled; unfiltered otherwise.
func (c *Catalog) GetDbNames(pattern string, user authorization.User) []string {
	var names []string
	c.reconciler.View(func(s *store.ObjectStore) {
		names = s.ListDbNames(pattern)
	})
	filtered := names[:0:0]
	for _, name := range names {
		req := authorization.NewRequestBuilder().Any().OnAnyTable(name)
		if c.hasAccess(user, req) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// DbExists reports whether dbName is present in the cache, without
// enforcing privilege. Used internally by the Request Facade's DDL
// orchestration to implement IF [NOT] EXISTS semantics before driving the
// metastore, not as a query-planning read path.
func (c *Catalog) DbExists(dbName string) bool {
	var exists bool
	c.reconciler.View(func(s *store.ObjectStore) {
		exists = s.GetDb(dbName) != nil
	})
	return exists
}

// TableExists reports whether dbName.tableName is present in the cache,
// without enforcing privilege. Used internally by DDL orchestration for
// IF [NOT] EXISTS handling.
func (c *Catalog) TableExists(dbName, tableName string) bool {
	var exists bool
	c.reconciler.View(func(s *store.ObjectStore) {
		exists = s.ContainsTable(dbName, tableName)
	})
	return exists
}

// DbContainsTable reports whether tableName exists in dbName, enforcing
// privilege and raising DatabaseNotFoundException if dbName is unknown.
func (c *Catalog) DbContainsTable(dbName, tableName string, user authorization.User, privilege authorization.Privilege) (bool, error) {
	req := authorization.NewRequestBuilder().AllOf(privilege).OnTable(dbName, tableName)
	if err := c.authz.Checker().CheckAccess(user, req); err != nil {
		return false, err
	}
	var found bool
	var contains bool
	c.reconciler.View(func(s *store.ObjectStore) {
		db := s.GetDb(dbName)
		found = db != nil
		if found {
			contains = db.ContainsTable(tableName)
		}
	})
	if !found {
		return false, &DatabaseNotFoundException{Db: dbName}
	}
	return contains, nil
}

// GetTable returns the table descriptor for dbName.tableName, enforcing
// privilege and surfacing TableLoadingException lazily if the table's
// metadata previously failed to load.
func (c *Catalog) GetTable(dbName, tableName string, user authorization.User, privilege authorization.Privilege) (*store.TableDesc, error) {
	req := authorization.NewRequestBuilder().AllOf(privilege).OnTable(dbName, tableName)
	if err := c.authz.Checker().CheckAccess(user, req); err != nil {
		return nil, err
	}
	var tbl *store.TableDesc
	var dbExists bool
	c.reconciler.View(func(s *store.ObjectStore) {
		dbExists = s.GetDb(dbName) != nil
		tbl = s.GetTable(dbName, tableName)
	})
	if !dbExists {
		return nil, &DatabaseNotFoundException{Db: dbName}
	}
	if tbl == nil {
		return nil, &TableNotFoundException{Db: dbName, Table: tableName}
	}
	if tbl.Kind == store.Incomplete {
		return nil, &TableLoadingException{Db: dbName, Table: tableName, Cause: tbl.LoadErr}
	}
	return tbl, nil
}

// ContainsTable reports whether dbName.tableName exists, without
// distinguishing a missing database from a missing table (matching the
// source's containsTable, which simply returns false for either).
func (c *Catalog) ContainsTable(dbName, tableName string, user authorization.User, privilege authorization.Privilege) (bool, error) {
	req := authorization.NewRequestBuilder().AllOf(privilege).OnTable(dbName, tableName)
	if err := c.authz.Checker().CheckAccess(user, req); err != nil {
		return false, err
	}
	var exists bool
	c.reconciler.View(func(s *store.ObjectStore) {
		exists = s.ContainsTable(dbName, tableName)
	})
	return exists, nil
}

// GetTableNames returns every table name in dbName matching pattern that
// user has any privilege to see, raising DatabaseNotFoundException if
// dbName is unknown.
func (c *Catalog) GetTableNames(dbName, pattern string, user authorization.User) ([]string, error) {
	var dbExists bool
	var names []string
	c.reconciler.View(func(s *store.ObjectStore) {
		dbExists = s.GetDb(dbName) != nil
		names = s.ListTableNames(dbName, pattern)
	})
	if !dbExists {
		return nil, &DatabaseNotFoundException{Db: dbName}
	}
	filtered := names[:0:0]
	for _, name := range names {
		req := authorization.NewRequestBuilder().AllOf(authorization.Any).OnTable(dbName, name)
		if c.hasAccess(user, req) {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}
