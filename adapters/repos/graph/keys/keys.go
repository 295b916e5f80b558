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

// Package keys builds and classifies the physical keys of the graph engine.
// All layouts are big-endian and order-preserving so that a prefix scan over
// an edge prefix yields, in order: lock markers, the current edge record,
// then any trailing obsolete versions. The layouts are shared with readers
// elsewhere in the engine and must stay byte-compatible.
package keys

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/weaviate/graphkv/entities/graphmodel"
)

const (
	kindEdge      byte = 0x01
	kindIndex     byte = 0x02
	kindOperation byte = 0x03

	// suffix discriminants of physical edge rows; lock markers must sort
	// before the edge record under the same prefix
	markerLock   byte = 0x00
	markerRecord byte = 0x01

	opDelete byte = 0x01

	headerLen    = 4
	edgeTypeLen  = 4
	rankLen      = 8
	indexIDLen   = 4
	qualifierLen = 8
	suffixLen    = 1 + qualifierLen

	valueLenPrefix = 4
)

// opSeq makes rebuild-log operation keys unique process-wide, so staging two
// deletions into one batch never produces colliding keys.
var opSeq uint64

// IsValidVidLen reports whether both vertex ids match the space's configured
// vertex-id byte length. A mismatch is a validation error, not a storage
// error.
func IsValidVidLen(vidLen int, src, dst graphmodel.VertexID) bool {
	return len(src) == vidLen && len(dst) == vidLen
}

func putHeader(buf []byte, part graphmodel.PartitionID, kind byte) {
	binary.BigEndian.PutUint32(buf, uint32(part)<<8|uint32(kind))
}

// encodeInt32 flips the sign bit so negative edge types (reverse direction)
// sort before positive ones in unsigned byte order.
func encodeInt32(buf []byte, v int32) {
	binary.BigEndian.PutUint32(buf, uint32(v)^(1<<31))
}

// EncodeInt64 returns the order-preserving big-endian encoding of v, used
// for ranks and integer index values.
func EncodeInt64(v int64) []byte {
	buf := make([]byte, rankLen)
	binary.BigEndian.PutUint64(buf, uint64(v)^(1<<63))
	return buf
}

func edgePrefixLen(vidLen int) int {
	return headerLen + vidLen + edgeTypeLen + rankLen + vidLen
}

// EdgePrefix returns the byte prefix shared by every physical row of one
// logical edge. EdgeRecordKey and LockMarkerKey always begin with it.
func EdgePrefix(vidLen int, part graphmodel.PartitionID, edge graphmodel.EdgeIdentity) []byte {
	buf := make([]byte, edgePrefixLen(vidLen))
	putHeader(buf, part, kindEdge)
	off := headerLen
	off += copy(buf[off:], edge.Src)
	encodeInt32(buf[off:], int32(edge.EdgeType))
	off += edgeTypeLen
	binary.BigEndian.PutUint64(buf[off:], uint64(edge.Rank)^(1<<63))
	off += rankLen
	copy(buf[off:], edge.Dst)
	return buf
}

// EdgeRecordKey returns the key of one version of the edge record. The
// version qualifier is stored inverted so the newest version sorts first
// and everything after it is trailing-obsolete.
func EdgeRecordKey(vidLen int, part graphmodel.PartitionID, edge graphmodel.EdgeIdentity, version uint64) []byte {
	return appendSuffix(EdgePrefix(vidLen, part, edge), markerRecord, ^version)
}

// LockMarkerKey returns the key of a write-intent placeholder for the edge.
// Lock markers sort before every record version under the same prefix.
func LockMarkerKey(vidLen int, part graphmodel.PartitionID, edge graphmodel.EdgeIdentity, token uint64) []byte {
	return appendSuffix(EdgePrefix(vidLen, part, edge), markerLock, token)
}

func appendSuffix(prefix []byte, discriminant byte, qualifier uint64) []byte {
	buf := make([]byte, len(prefix)+suffixLen)
	off := copy(buf, prefix)
	buf[off] = discriminant
	binary.BigEndian.PutUint64(buf[off+1:], qualifier)
	return buf
}

func isEdgeRow(vidLen int, key []byte, discriminant byte) bool {
	if len(key) != edgePrefixLen(vidLen)+suffixLen {
		return false
	}
	if key[headerLen-1] != kindEdge {
		return false
	}
	return key[edgePrefixLen(vidLen)] == discriminant
}

// IsLockMarker reports whether key is a write-intent placeholder row.
func IsLockMarker(vidLen int, key []byte) bool {
	return isEdgeRow(vidLen, key, markerLock)
}

// IsEdgeRecord reports whether key is a versioned edge record row.
func IsEdgeRecord(vidLen int, key []byte) bool {
	return isEdgeRow(vidLen, key, markerRecord)
}

// IndexKey returns the secondary index entry key for one edge under one
// index definition. values are the encoded field values in definition
// order; each is length-prefixed so distinct value lists never collide,
// regardless of the bytes they contain.
func IndexKey(vidLen int, part graphmodel.PartitionID, indexID graphmodel.IndexID,
	src graphmodel.VertexID, rank int64, dst graphmodel.VertexID, values [][]byte,
) []byte {
	size := headerLen + indexIDLen + vidLen + rankLen + vidLen
	for _, v := range values {
		size += valueLenPrefix + len(v)
	}
	buf := make([]byte, size)
	putHeader(buf, part, kindIndex)
	off := headerLen
	binary.BigEndian.PutUint32(buf[off:], uint32(indexID))
	off += indexIDLen
	for _, v := range values {
		binary.BigEndian.PutUint32(buf[off:], uint32(len(v)))
		off += valueLenPrefix
		off += copy(buf[off:], v)
	}
	off += copy(buf[off:], src)
	binary.BigEndian.PutUint64(buf[off:], uint64(rank)^(1<<63))
	off += rankLen
	copy(buf[off:], dst)
	return buf
}

// DeleteOperationKey returns a fresh rebuild-log key for the partition. Its
// value is expected to hold the index key the rebuild process must drop.
func DeleteOperationKey(part graphmodel.PartitionID) []byte {
	buf := make([]byte, headerLen+1+qualifierLen)
	putHeader(buf, part, kindOperation)
	buf[headerLen] = opDelete
	binary.BigEndian.PutUint64(buf[headerLen+1:], atomic.AddUint64(&opSeq, 1))
	return buf
}
