// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package reconciler

import (
	"context"
	"testing"

	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/bravechou2009/impala/pkg/catalog/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func dbObj(name string, version catalogpb.CatalogVersion) catalogpb.CatalogObject {
	return catalogpb.CatalogObject{
		Kind:    catalogpb.Database,
		Key:     catalogpb.NewDbKey(name),
		Version: version,
		Payload: store.NewDatabaseDesc(name, "", "", "", 0),
	}
}

func tblObj(db, name string, version catalogpb.CatalogVersion) catalogpb.CatalogObject {
	return catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey(db, name),
		Version: version,
		Payload: &store.TableDesc{DbName: db, Name: name},
	}
}

func markerObj(version catalogpb.CatalogVersion) catalogpb.CatalogObject {
	return catalogpb.CatalogObject{Kind: catalogpb.CatalogMarker, Version: version}
}

func TestApplyBatchFirstBoot(t *testing.T) {
	r := New(nil)
	require.False(t, r.IsReady())

	sid := catalogpb.ServiceID{Hi: 1, Lo: 2}
	updated := []catalogpb.CatalogObject{
		markerObj(10),
		dbObj("sales", 8),
		tblObj("sales", "orders", 9),
	}
	got, err := r.ApplyBatch(context.Background(), updated, nil, sid)
	require.NoError(t, err)
	require.Equal(t, sid, got)
	require.True(t, r.IsReady())
	require.Equal(t, catalogpb.CatalogVersion(10), r.LastSyncedVersion())

	var found *store.DatabaseDesc
	r.View(func(s *store.ObjectStore) { found = s.GetDb("Sales") })
	require.NotNil(t, found)
	require.Equal(t, "sales", found.Name)
}

func TestApplyBatchStaleAddAfterDrop(t *testing.T) {
	r := New(nil)
	sid := catalogpb.ServiceID{Hi: 1, Lo: 2}
	_, err := r.ApplyBatch(context.Background(),
		[]catalogpb.CatalogObject{markerObj(10), dbObj("sales", 8), tblObj("sales", "orders", 9)},
		nil, sid)
	require.NoError(t, err)

	// Direct-DDL drop of sales.orders at v=12.
	dropped := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey("sales", "orders"),
		Version: 12,
	}
	_, err = r.ApplyBatch(context.Background(), nil, []catalogpb.CatalogObject{dropped}, sid)
	require.NoError(t, err)

	var tbl *store.TableDesc
	r.View(func(s *store.ObjectStore) { tbl = s.GetTable("sales", "orders") })
	require.Nil(t, tbl)

	// Stale broadcast add of sales.orders at v=11 must not resurrect it.
	_, err = r.ApplyBatch(context.Background(),
		[]catalogpb.CatalogObject{tblObj("sales", "orders", 11)}, nil, sid)
	require.NoError(t, err)

	r.View(func(s *store.ObjectStore) { tbl = s.GetTable("sales", "orders") })
	require.Nil(t, tbl)
	require.True(t, r.mu.deltaLog.WasRemovedAfter(catalogpb.NewTableKey("sales", "orders"), 11))
}

func TestApplyBatchDeltaLogGC(t *testing.T) {
	r := New(nil)
	sid := catalogpb.ServiceID{Hi: 1, Lo: 2}
	_, err := r.ApplyBatch(context.Background(),
		[]catalogpb.CatalogObject{markerObj(10), dbObj("sales", 8), tblObj("sales", "orders", 9)},
		nil, sid)
	require.NoError(t, err)

	dropped := catalogpb.CatalogObject{Kind: catalogpb.Table, Key: catalogpb.NewTableKey("sales", "orders"), Version: 12}
	_, err = r.ApplyBatch(context.Background(), nil, []catalogpb.CatalogObject{dropped}, sid)
	require.NoError(t, err)
	require.Equal(t, 1, r.mu.deltaLog.Len())

	_, err = r.ApplyBatch(context.Background(), []catalogpb.CatalogObject{markerObj(15)}, nil, sid)
	require.NoError(t, err)
	require.Equal(t, 0, r.mu.deltaLog.Len())
	require.Equal(t, catalogpb.CatalogVersion(15), r.LastSyncedVersion())
}

func TestApplyBatchServiceIDChange(t *testing.T) {
	r := New(nil)
	first := catalogpb.ServiceID{Hi: 1, Lo: 2}
	_, err := r.ApplyBatch(context.Background(),
		[]catalogpb.CatalogObject{markerObj(5), dbObj("sales", 3)}, nil, first)
	require.NoError(t, err)
	require.True(t, r.IsReady())

	require.Equal(t, float64(1), testutil.ToFloat64(r.metrics.ready))

	second := catalogpb.ServiceID{Hi: 3, Lo: 4}
	_, err = r.ApplyBatch(context.Background(), nil, nil, second)
	require.ErrorIs(t, err, ErrServiceIDChanged)
	require.False(t, r.IsReady())
	require.Equal(t, catalogpb.CatalogVersion(0), r.LastSyncedVersion())
	require.Equal(t, float64(0), testutil.ToFloat64(r.metrics.ready))

	var found *store.DatabaseDesc
	r.View(func(s *store.ObjectStore) { found = s.GetDb("sales") })
	require.Nil(t, found)
}

func TestApplyBatchIncompleteTable(t *testing.T) {
	r := New(nil)
	sid := catalogpb.ServiceID{Hi: 1, Lo: 1}
	incomplete := catalogpb.CatalogObject{
		Kind:    catalogpb.Table,
		Key:     catalogpb.NewTableKey("sales", "bad"),
		Version: 1,
		Payload: &store.TableDesc{DbName: "sales", Name: "bad", Kind: store.Incomplete, LoadErr: errTestLoad},
	}
	_, err := r.ApplyBatch(context.Background(),
		[]catalogpb.CatalogObject{markerObj(2), dbObj("sales", 1), incomplete}, nil, sid)
	require.NoError(t, err)

	var names []string
	var tbl *store.TableDesc
	r.View(func(s *store.ObjectStore) {
		names = s.ListTableNames("sales", "")
		tbl = s.GetTable("sales", "bad")
	})
	require.Contains(t, names, "bad")
	require.NotNil(t, tbl)
	require.ErrorIs(t, tbl.CheckLoaded(), errTestLoad)
}

var errTestLoad = testLoadErr{}

type testLoadErr struct{}

func (testLoadErr) Error() string { return "load failed" }
