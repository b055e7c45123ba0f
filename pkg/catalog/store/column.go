// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package store holds the catalog cache proper: the typed, in-memory
// mapping from database name to database record, and from there to tables
// and functions. It is not itself synchronized — callers (the reconciler
// and its readers) share a single reader/writer lock around it, the
// Catalog lock.
package store

import (
	"encoding/json"
	"strings"
)

// Column describes one column of a table, in declared order.
type Column struct {
	Name    string
	Type    string
	Comment string
}

// ColumnList supports ordered, case-insensitive column lookup while
// preserving declaration order: clustering columns occupy positions
// [0, NumClusteringCols) and GetColumn is case-insensitive and consistent
// with positional order.
type ColumnList struct {
	columns   []Column
	byLower   map[string]int
}

// NewColumnList builds a ColumnList from an ordered slice of columns.
func NewColumnList(columns []Column) ColumnList {
	cl := ColumnList{
		columns: columns,
		byLower: make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		cl.byLower[strings.ToLower(c.Name)] = i
	}
	return cl
}

// Columns returns the full, ordered column slice.
func (cl ColumnList) Columns() []Column {
	return cl.columns
}

// Len returns the number of columns.
func (cl ColumnList) Len() int {
	return len(cl.columns)
}

// GetColumn returns the column with the given name (case-insensitive) and
// whether it was found.
func (cl ColumnList) GetColumn(name string) (Column, bool) {
	idx, ok := cl.byLower[strings.ToLower(name)]
	if !ok {
		return Column{}, false
	}
	return cl.columns[idx], true
}

// MarshalJSON encodes the ordered column slice; byLower is rebuilt by
// UnmarshalJSON rather than carried on the wire, since it is derived
// entirely from Name.
func (cl ColumnList) MarshalJSON() ([]byte, error) {
	return json.Marshal(cl.columns)
}

// UnmarshalJSON decodes an ordered column slice and rebuilds the
// case-insensitive lookup index, so a ColumnList round-tripped through
// JSONCodec keeps GetColumn working.
func (cl *ColumnList) UnmarshalJSON(data []byte) error {
	var columns []Column
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}
	*cl = NewColumnList(columns)
	return nil
}
