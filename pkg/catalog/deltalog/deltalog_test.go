// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package deltalog

import (
	"testing"

	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/stretchr/testify/require"
)

func TestWasRemovedAfterUnknownKey(t *testing.T) {
	l := New()
	require.False(t, l.WasRemovedAfter(catalogpb.NewTableKey("sales", "orders"), 5))
}

func TestRecordDropAndWasRemovedAfter(t *testing.T) {
	l := New()
	key := catalogpb.NewTableKey("sales", "orders")
	l.RecordDrop(key, catalogpb.Table, 12)

	require.True(t, l.WasRemovedAfter(key, 11))
	require.False(t, l.WasRemovedAfter(key, 12))
	require.False(t, l.WasRemovedAfter(key, 13))
}

func TestRecordDropReplacesEarlierTombstone(t *testing.T) {
	l := New()
	key := catalogpb.NewTableKey("sales", "orders")
	l.RecordDrop(key, catalogpb.Table, 5)
	l.RecordDrop(key, catalogpb.Table, 20)

	require.Equal(t, 1, l.Len())
	require.True(t, l.WasRemovedAfter(key, 19))
	require.False(t, l.WasRemovedAfter(key, 20))
}

func TestGarbageCollectIsTotal(t *testing.T) {
	l := New()
	l.RecordDrop(catalogpb.NewTableKey("sales", "orders"), catalogpb.Table, 5)
	l.RecordDrop(catalogpb.NewTableKey("sales", "customers"), catalogpb.Table, 15)
	l.RecordDrop(catalogpb.NewDbKey("archive"), catalogpb.Database, 25)

	l.GarbageCollect(15)
	require.Equal(t, 1, l.Len())
	require.False(t, l.WasRemovedAfter(catalogpb.NewTableKey("sales", "orders"), 0))
	require.False(t, l.WasRemovedAfter(catalogpb.NewTableKey("sales", "customers"), 0))
	require.True(t, l.WasRemovedAfter(catalogpb.NewDbKey("archive"), 24))

	// GarbageCollect accepts every watermark in the uint64 range, including
	// one below any tombstone currently held: it is a no-op, not an error.
	l.GarbageCollect(0)
	require.Equal(t, 1, l.Len())
}

func TestGarbageCollectEmptyLog(t *testing.T) {
	l := New()
	l.GarbageCollect(1000)
	require.Equal(t, 0, l.Len())
}
