// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package facade

import "encoding/json"

// Codec (de)serializes facade request/response records to and from
// opaque byte blobs. The physical wire format is explicitly out of scope
// for this cache; JSONCodec is a stand-in default, not a claim about the
// real wire encoding, which in production would be a tagged, field-ID'd
// schema format.
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// JSONCodec is the default Codec.
type JSONCodec struct{}

func (JSONCodec) Encode(v interface{}) ([]byte, error) { return json.Marshal(v) }
func (JSONCodec) Decode(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
