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

package graphmodel

// SpaceID identifies one logical graph space (tenant). Each space carries its
// own schema, index catalog and vertex-id byte length.
type SpaceID uint32

// PartitionID identifies one shard of a space's key range. Partitions are
// independent units of atomicity: a mutation batch never spans two of them.
type PartitionID uint32

// EdgeType identifies an edge schema within a space. Negative values denote
// the reverse direction of the corresponding positive type.
type EdgeType int32

// IndexID identifies one secondary index definition within a space.
type IndexID uint32

// VertexID is an opaque vertex identifier. Its byte length must equal the
// owning space's configured vertex-id length.
type VertexID []byte

// EdgeIdentity identifies one logical edge within a space and partition. The
// space and partition are carried by the surrounding request grouping; the
// full identity tuple is (space, partition, Src, EdgeType, Rank, Dst).
type EdgeIdentity struct {
	Src      VertexID
	EdgeType EdgeType
	Rank     int64
	Dst      VertexID
}

// IndexDefinition describes one secondary edge index: which edge type it
// covers and which property fields, in order, make up the index key. It is
// read-only for the duration of one request.
type IndexDefinition struct {
	ID       IndexID
	Name     string
	EdgeType EdgeType
	Fields   []string
}
