// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import (
	"context"

	"github.com/bravechou2009/impala/pkg/catalog/catalogpb"
	"github.com/bravechou2009/impala/pkg/catalog/store"
	"github.com/cockroachdb/errors"
)

// The HandleXxx methods below are the actual (opaque bytes in) -> (opaque
// bytes out) surface the facade exposes; every typed method elsewhere in
// this package is the thing they marshal to and from. A caller that only
// has a byte-oriented transport (the query layer's RPC boundary) drives the
// cache exclusively through these.

// HandleUpdateCatalogCache implements the wire entry point for a
// reconciliation batch (broadcast or direct update).
func (f *Facade) HandleUpdateCatalogCache(ctx context.Context, reqBytes []byte) ([]byte, error) {
	var req CatalogUpdateRequest
	if err := f.codec.Decode(reqBytes, &req); err != nil {
		return nil, errors.Wrap(err, "decoding catalog update request")
	}
	updated, err := decodeCatalogObjects(f.codec, req.UpdatedObjects)
	if err != nil {
		return nil, err
	}
	removed, err := decodeCatalogObjects(f.codec, req.RemovedObjects)
	if err != nil {
		return nil, err
	}
	serviceID, err := f.catalog.ApplyBatch(ctx, updated, removed, req.CatalogServiceID)
	if err != nil {
		return nil, err
	}
	return f.codec.Encode(CatalogUpdateResponse{CatalogServiceID: serviceID})
}

func decodeCatalogObjects(codec Codec, wire []CatalogUpdate) ([]catalogpb.CatalogObject, error) {
	out := make([]catalogpb.CatalogObject, len(wire))
	for i, u := range wire {
		obj := catalogpb.CatalogObject{
			Kind:    u.Kind,
			Key:     catalogpb.ObjectKey{Db: u.Db, Name: u.Name},
			Version: u.Version,
		}
		if len(u.Payload) > 0 {
			payload, err := decodePayload(codec, u.Kind, u.Payload)
			if err != nil {
				return nil, errors.Wrapf(err, "decoding payload for %s", u.Name)
			}
			obj.Payload = payload
		}
		out[i] = obj
	}
	return out, nil
}

func decodePayload(codec Codec, kind catalogpb.ObjectKind, data []byte) (interface{}, error) {
	switch kind {
	case catalogpb.Database:
		var v store.DatabaseDesc
		if err := codec.Decode(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case catalogpb.Table, catalogpb.View:
		var v store.TableDesc
		if err := codec.Decode(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	case catalogpb.Function:
		var v store.FunctionDesc
		if err := codec.Decode(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, nil
	}
}

// HandleGetDbNames implements the wire entry point for get_db_names.
func (f *Facade) HandleGetDbNames(reqBytes []byte) ([]byte, error) {
	var params GetDbsParams
	if err := f.codec.Decode(reqBytes, &params); err != nil {
		return nil, errors.Wrap(err, "decoding get_db_names request")
	}
	return f.codec.Encode(f.GetDbNames(params))
}

// HandleGetTableNames implements the wire entry point for get_table_names.
func (f *Facade) HandleGetTableNames(reqBytes []byte) ([]byte, error) {
	var params GetTablesParams
	if err := f.codec.Decode(reqBytes, &params); err != nil {
		return nil, errors.Wrap(err, "decoding get_table_names request")
	}
	result, err := f.GetTableNames(params)
	if err != nil {
		return nil, err
	}
	return f.codec.Encode(result)
}

// HandleDescribeTable implements the wire entry point for describe_table.
func (f *Facade) HandleDescribeTable(reqBytes []byte) ([]byte, error) {
	var params DescribeTableParams
	if err := f.codec.Decode(reqBytes, &params); err != nil {
		return nil, errors.Wrap(err, "decoding describe_table request")
	}
	result, err := f.DescribeTable(params)
	if err != nil {
		return nil, err
	}
	return f.codec.Encode(result)
}

// HandleExecMetadataOp implements the wire entry point for exec_metadata_op.
func (f *Facade) HandleExecMetadataOp(reqBytes []byte) ([]byte, error) {
	var req MetadataOpRequest
	if err := f.codec.Decode(reqBytes, &req); err != nil {
		return nil, errors.Wrap(err, "decoding exec_metadata_op request")
	}
	result, err := f.ExecMetadataOp(req)
	if err != nil {
		return nil, err
	}
	return f.codec.Encode(result)
}
