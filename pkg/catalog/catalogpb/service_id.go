// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalogpb

import (
	"fmt"

	"github.com/google/uuid"
)

// ServiceID identifies the authoritative catalog service instance a
// broadcast originated from. It is a 128-bit value, represented as two
// 64-bit words matching the on-the-wire shape, but rendered as a UUID for
// logging and error messages.
type ServiceID struct {
	Hi uint64
	Lo uint64
}

// SentinelServiceID is the distinguished "no service observed yet" value
// every ImpaladCatalog starts with.
var SentinelServiceID = ServiceID{}

// IsSentinel reports whether id is the "no service observed yet" value.
func (id ServiceID) IsSentinel() bool {
	return id == SentinelServiceID
}

// String renders id as a UUID-formatted string for diagnostics.
func (id ServiceID) String() string {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(id.Hi >> uint(56-8*i))
		b[8+i] = byte(id.Lo >> uint(56-8*i))
	}
	u, err := uuid.FromBytes(b[:])
	if err != nil {
		return fmt.Sprintf("%016x%016x", id.Hi, id.Lo)
	}
	return u.String()
}
