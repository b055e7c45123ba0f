// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package reconciler

import "github.com/cockroachdb/errors"

// ErrServiceIDChanged is returned from ApplyBatch when the incoming
// batch's catalog_service_id differs from the one this cache has been
// tracking, and this isn't the first batch ever applied. The caller MUST
// discard the batch it was about to process and request a full resync; by
// the time this error is returned, ApplyBatch has already flushed the
// store and reset to the sentinel identity, so the resync starts clean.
var ErrServiceIDChanged = errors.New("detected catalog service ID change, full resync required")
