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

package store

// Op is one staged mutation. Put distinguishes puts from removes.
type Op struct {
	Put   bool
	Key   []byte
	Value []byte
}

// MutationBatch is an ordered sequence of mutations scoped to one partition.
// It is built in memory by the planner and committed atomically in staged
// order, so lock-marker removal always lands before the edge-record removal
// that follows it.
type MutationBatch struct {
	ops []Op
}

func NewBatch() *MutationBatch {
	return &MutationBatch{}
}

func (b *MutationBatch) Put(key, value []byte) {
	b.ops = append(b.ops, Op{Put: true, Key: key, Value: value})
}

func (b *MutationBatch) Remove(key []byte) {
	b.ops = append(b.ops, Op{Key: key})
}

func (b *MutationBatch) Ops() []Op {
	return b.ops
}

func (b *MutationBatch) Len() int {
	return len(b.ops)
}

func (b *MutationBatch) Empty() bool {
	return len(b.ops) == 0
}
