//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

// Package store is the sorted key-value substrate of the graph engine:
// ordered prefix iteration plus asynchronous, per-partition atomic batch
// commits. The production implementation is pebble-backed.
package store

import (
	"github.com/weaviate/graphkv/entities/graphmodel"
	"github.com/weaviate/graphkv/entities/resultcode"
)

// Cursor iterates the rows of one prefix scan in key order. The returned
// key and value slices are only valid until the next call; callers that
// retain them must copy. A nil key signals exhaustion.
type Cursor interface {
	First() ([]byte, []byte)
	Next() ([]byte, []byte)
	Close() error
}

// Store is the narrow interface the mutation path consumes. Submission is
// non-blocking: completion of a commit is delivered on a store goroutine via
// onComplete, exactly once.
type Store interface {
	// PrefixScan returns a forward cursor over all rows of the partition
	// whose keys begin with prefix.
	PrefixScan(space graphmodel.SpaceID, part graphmodel.PartitionID, prefix []byte) (Cursor, error)

	// AsyncAppendBatch atomically applies the batch to the partition in
	// staged order.
	AsyncAppendBatch(space graphmodel.SpaceID, part graphmodel.PartitionID,
		batch *MutationBatch, onComplete func(resultcode.Code))

	// AsyncMultiRemove drops every row under each of the given key
	// prefixes in one atomic commit.
	AsyncMultiRemove(space graphmodel.SpaceID, part graphmodel.PartitionID,
		prefixes [][]byte, onComplete func(resultcode.Code))
}
