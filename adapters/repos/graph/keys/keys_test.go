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

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaviate/graphkv/entities/graphmodel"
)

const vidLen = 8

func edge(src, dst string, edgeType graphmodel.EdgeType, rank int64) graphmodel.EdgeIdentity {
	return graphmodel.EdgeIdentity{
		Src:      graphmodel.VertexID(src),
		EdgeType: edgeType,
		Rank:     rank,
		Dst:      graphmodel.VertexID(dst),
	}
}

func TestVidLenValidation(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
		expected bool
	}{
		{"both valid", "src-0001", "dst-0001", true},
		{"src too short", "src", "dst-0001", false},
		{"dst too long", "src-0001", "dst-00001", false},
		{"both empty", "", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ok := IsValidVidLen(vidLen,
				graphmodel.VertexID(test.src), graphmodel.VertexID(test.dst))
			assert.Equal(t, test.expected, ok)
		})
	}
}

func TestEdgeKeysSharePrefix(t *testing.T) {
	e := edge("src-0001", "dst-0001", 3, 42)
	prefix := EdgePrefix(vidLen, 1, e)

	record := EdgeRecordKey(vidLen, 1, e, 100)
	lock := LockMarkerKey(vidLen, 1, e, 7)

	assert.True(t, bytes.HasPrefix(record, prefix))
	assert.True(t, bytes.HasPrefix(lock, prefix))
}

func TestRowOrderUnderOnePrefix(t *testing.T) {
	// scan order must be: lock markers, current record, obsolete versions
	e := edge("src-0001", "dst-0001", 3, 42)

	lock := LockMarkerKey(vidLen, 1, e, 7)
	current := EdgeRecordKey(vidLen, 1, e, 200)
	obsolete := EdgeRecordKey(vidLen, 1, e, 100)

	assert.Negative(t, bytes.Compare(lock, current))
	assert.Negative(t, bytes.Compare(current, obsolete),
		"newer version must sort before older version")
}

func TestRowClassification(t *testing.T) {
	e := edge("src-0001", "dst-0001", 3, 42)

	lock := LockMarkerKey(vidLen, 1, e, 7)
	record := EdgeRecordKey(vidLen, 1, e, 100)

	assert.True(t, IsLockMarker(vidLen, lock))
	assert.False(t, IsLockMarker(vidLen, record))
	assert.True(t, IsEdgeRecord(vidLen, record))
	assert.False(t, IsEdgeRecord(vidLen, lock))

	assert.False(t, IsLockMarker(vidLen, EdgePrefix(vidLen, 1, e)))
	assert.False(t, IsEdgeRecord(vidLen, IndexKey(vidLen, 1, 9,
		e.Src, e.Rank, e.Dst, [][]byte{[]byte("v")})))
}

func TestDistinctIdentitiesDistinctPrefixes(t *testing.T) {
	base := edge("src-0001", "dst-0001", 3, 42)
	variants := []graphmodel.EdgeIdentity{
		edge("src-0002", "dst-0001", 3, 42),
		edge("src-0001", "dst-0002", 3, 42),
		edge("src-0001", "dst-0001", 4, 42),
		edge("src-0001", "dst-0001", 3, 43),
	}

	basePrefix := EdgePrefix(vidLen, 1, base)
	for _, v := range variants {
		assert.NotEqual(t, basePrefix, EdgePrefix(vidLen, 1, v))
	}
	assert.NotEqual(t, basePrefix, EdgePrefix(vidLen, 2, base),
		"partition is part of the identity")
}

func TestRankOrderingPreserved(t *testing.T) {
	lower := EdgePrefix(vidLen, 1, edge("src-0001", "dst-0001", 3, -5))
	zero := EdgePrefix(vidLen, 1, edge("src-0001", "dst-0001", 3, 0))
	higher := EdgePrefix(vidLen, 1, edge("src-0001", "dst-0001", 3, 5))

	assert.Negative(t, bytes.Compare(lower, zero))
	assert.Negative(t, bytes.Compare(zero, higher))
}

func TestEncodeInt64Ordering(t *testing.T) {
	values := []int64{-1 << 62, -17, -1, 0, 1, 17, 1 << 62}
	for i := 1; i < len(values); i++ {
		prev := EncodeInt64(values[i-1])
		cur := EncodeInt64(values[i])
		assert.Negative(t, bytes.Compare(prev, cur),
			"%d must sort before %d", values[i-1], values[i])
	}
}

func TestIndexKeyDependsOnValues(t *testing.T) {
	e := edge("src-0001", "dst-0001", 3, 42)

	a := IndexKey(vidLen, 1, 9, e.Src, e.Rank, e.Dst, [][]byte{[]byte("2020")})
	b := IndexKey(vidLen, 1, 9, e.Src, e.Rank, e.Dst, [][]byte{[]byte("2021")})
	c := IndexKey(vidLen, 1, 10, e.Src, e.Rank, e.Dst, [][]byte{[]byte("2020")})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)

	// value list boundaries must not be ambiguous
	d := IndexKey(vidLen, 1, 9, e.Src, e.Rank, e.Dst, [][]byte{[]byte("20"), []byte("20")})
	assert.NotEqual(t, a, d)
}

func TestIndexKeyValueBoundariesUnambiguous(t *testing.T) {
	// values may contain any byte, boundaries must still be unambiguous
	e := edge("src-0001", "dst-0001", 3, 42)

	a := IndexKey(vidLen, 1, 9, e.Src, e.Rank, e.Dst,
		[][]byte{[]byte("a\x00"), []byte("b")})
	b := IndexKey(vidLen, 1, 9, e.Src, e.Rank, e.Dst,
		[][]byte{[]byte("a"), []byte("\x00b")})
	c := IndexKey(vidLen, 1, 9, e.Src, e.Rank, e.Dst,
		[][]byte{[]byte("a\x00b")})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestDeleteOperationKeysUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		key := DeleteOperationKey(1)
		_, dup := seen[string(key)]
		require.False(t, dup)
		seen[string(key)] = struct{}{}
	}
}
